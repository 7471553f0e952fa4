package export

import (
	"strings"

	"github.com/packsmith/packsmith/internal/core"
	"github.com/packsmith/packsmith/internal/flatname"
	"github.com/packsmith/packsmith/internal/mccmd"
)

// renderUnit produces the text of one .mcfunction file: the description
// as a comment header, every command on its own line and, when the unit
// continues into another one, a trailing call to wherever the
// continuation link points now.
func renderUnit(unit *core.MCFunction, r flatname.Resolver) (string, error) {
	var b strings.Builder

	if desc := unit.Description(); desc != "" {
		for _, line := range strings.Split(desc, "\n") {
			b.WriteString("# ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	for _, cmd := range unit.Commands() {
		line, err := cmd.Resolve(r)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if next := unit.Continuation(); next != nil {
		line, err := mccmd.Call(next).Resolve(r)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String(), nil
}
