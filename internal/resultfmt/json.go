package resultfmt

import (
	"encoding/json"
	"io"
)

// JSON writes out as indented JSON followed by a newline.
func JSON(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
