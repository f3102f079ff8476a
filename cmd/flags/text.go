// Package flags contains pflag values for txfactory types.
package flags

import (
	"encoding"

	"github.com/spf13/pflag"
)

type textVar interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// TextValue is a pflag.Value for types with text encoding.
type TextValue struct {
	value textVar
	typ   string
}

var _ pflag.Value = (*TextValue)(nil)

// NewTextValue returns a flag value that writes into value.
// typ is displayed in the usage message.
func NewTextValue(value textVar, typ string) *TextValue {
	return &TextValue{value: value, typ: typ}
}

// String implements pflag.Value.
func (v *TextValue) String() string {
	text, err := v.value.MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}

// Set implements pflag.Value.
func (v *TextValue) Set(s string) error {
	return v.value.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (v *TextValue) Type() string {
	return v.typ
}
