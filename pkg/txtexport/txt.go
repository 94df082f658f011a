// Package txtexport writes a paths.Paths as a plain semicolon-separated
// coordinate text format: one line per path, "x,y,z" vertices joined by
// ";". This is the simplest interchange format the renderer supports and
// has no natural ecosystem library to delegate to — see DESIGN.md.
package txtexport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/larnt/pkg/paths"
)

// Write emits one line per path in ps: semicolon-separated "x,y,z" vertex
// triples.
func Write(w io.Writer, ps paths.Paths) error {
	var b strings.Builder
	for _, p := range ps.P {
		b.Reset()
		for i, v := range p {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(strconv.FormatFloat(v.X, 'g', -1, 64))
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(v.Y, 'g', -1, 64))
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(v.Z, 'g', -1, 64))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
