package resultfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack writes out as a msgpack map keyed like the JSON form, for hosts
// that embed the scanner and want a compact payload.
func Msgpack(w io.Writer, out Output) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(out)
}

// DecodeMsgpack reads an Output written by Msgpack.
func DecodeMsgpack(r io.Reader) (Output, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	var out Output
	err := dec.Decode(&out)
	return out, err
}
