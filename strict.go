package xlstyle

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrMalformedKey is returned by DecodeStrict when a key was not produced
	// by Encode.
	ErrMalformedKey = errors.New("malformed style key")

	// ErrReservedDelimiter is returned when a style field contains one of the
	// key grammar delimiters and therefore cannot be keyed losslessly.
	ErrReservedDelimiter = errors.New("style value contains a reserved delimiter")
)

// KeyError describes the first problem DecodeStrict found in a key.
type KeyError struct {
	Component string // component tag, empty when the fragment had none
	Field     string
	Value     string
	Reason    string
}

func (e *KeyError) Error() string {
	switch {
	case e.Component == "":
		return fmt.Sprintf("%s: %s %q", ErrMalformedKey, e.Reason, e.Value)
	case e.Field == "":
		return fmt.Sprintf("%s: component %q: %s %q", ErrMalformedKey, e.Component, e.Reason, e.Value)
	default:
		return fmt.Sprintf("%s: component %q field %s: %s %q", ErrMalformedKey, e.Component, e.Field, e.Reason, e.Value)
	}
}

// Unwrap makes errors.Is(err, ErrMalformedKey) hold.
func (e *KeyError) Unwrap() error { return ErrMalformedKey }

// DecodeStrict decodes key like Decode but reports unknown component tags,
// unknown fill variants, unparseable values and wrong sub-field counts.
// The returned Style is the best-effort decoding even when err is non-nil.
func DecodeStrict(key string) (Style, error) {
	d := decoder{strict: true}
	s := d.style(key)
	return s, d.err
}

// EncodeStrict encodes s after checking that no field value contains a
// Reserved character.
func EncodeStrict(s Style) (string, error) {
	for _, issue := range Validate(s) {
		if issue.Severity == SeverityError {
			return "", errors.Wrapf(ErrReservedDelimiter, "%s", issue.Field)
		}
	}
	return Encode(s), nil
}
