// Package cmdutils runs the external tools sysfetch reads system facts from.
package cmdutils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/ubuntu/decorate"
)

// Output is what a command printed.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Run runs name with args under the C locale, so that its output can be parsed.
//
// The command is killed when ctx is done or, for a positive timeout, once timeout elapsed.
// The error of a failing command carries what it printed to stderr.
func Run(ctx context.Context, timeout time.Duration, name string, args ...string) (out Output, err error) {
	defer decorate.OnError(&err, "%s failed", name)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Later values win over the inherited ones.
	cmd.Env = append(os.Environ(), "LANG=C", "LC_ALL=C")

	err = cmd.Run()
	out = Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out, nil
	}
	if msg := bytes.TrimSpace(out.Stderr); len(msg) > 0 {
		return out, fmt.Errorf("%w: %s", err, msg)
	}
	return out, err
}
