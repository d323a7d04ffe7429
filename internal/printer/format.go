package printer

import (
	"fmt"
	"strconv"
	"strings"
)

// Arg is a value available to format templates, by position or by name.
type Arg struct {
	Name  string
	Value any
}

// Render replaces the placeholders of a format template.
//
// "{N}" is replaced by the Nth argument (1-based) and "{name}" by the argument with that name,
// compared case-insensitively. "{{" is a literal "{". Unknown placeholders are kept verbatim.
func Render(format string, args []Arg) string {
	var b strings.Builder

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '{' {
			b.WriteByte(c)
			continue
		}

		if i+1 < len(format) && format[i+1] == '{' {
			b.WriteByte('{')
			i++
			continue
		}

		end := strings.IndexByte(format[i+1:], '}')
		if end < 0 {
			b.WriteString(format[i:])
			break
		}

		placeholder := format[i+1 : i+1+end]
		if v, ok := lookup(placeholder, args); ok {
			b.WriteString(v)
		} else {
			b.WriteString(format[i : i+2+end])
		}
		i += end + 1
	}

	return b.String()
}

func lookup(placeholder string, args []Arg) (string, bool) {
	if n, err := strconv.Atoi(placeholder); err == nil {
		if n < 1 || n > len(args) {
			return "", false
		}
		return fmt.Sprint(args[n-1].Value), true
	}

	for _, a := range args {
		if a.Name != "" && strings.EqualFold(a.Name, placeholder) {
			return fmt.Sprint(a.Value), true
		}
	}
	return "", false
}
