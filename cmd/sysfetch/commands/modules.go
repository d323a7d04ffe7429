package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func installModulesCmd(app *App) {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the available modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listModules()
		},
	}
	app.cmd.AddCommand(cmd)
}

// listModules prints the name and the description of every module, sorted by name.
func (a App) listModules() error {
	w := tabwriter.NewWriter(a.cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for i, m := range a.registry.Modules() {
		if _, err := fmt.Fprintf(w, "%d)\t%s\t%s\n", i+1, m.Name(), m.Description()); err != nil {
			return err
		}
	}
	return w.Flush()
}
