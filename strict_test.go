package xlstyle

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStrict_AcceptsEncodedKeys(t *testing.T) {
	styles := []Style{
		{},
		{Font: &Font{Name: "Arial", Size: Float(12), Underline: UnderlineStyle("single")}},
		{Border: &Border{Diagonal: &Diagonal{Up: Bool(true)}}},
		{Alignment: &Alignment{TextRotation: VerticalText()}},
		{Fill: &GradientPathFill{Center: Center{Left: 0.5, Top: 0.5}, Stops: []Stop{{Position: 0, Color: Theme(1)}}}},
		{Fill: &GradientAngleFill{Degree: 90}},
		{Fill: &PatternFill{Pattern: "solid"}},
		{Protection: &Protection{}, NumFmt: "0%"},
	}
	for _, s := range styles {
		key := Encode(s)
		_, err := DecodeStrict(key)
		assert.NoError(t, err, "key %q", key)
	}
}

func TestDecodeStrict_Errors(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		component string
		field     string
	}{
		{"unknown tag", "zz>1", "", ""},
		{"missing tag separator", "p>1<0|garbage", "", ""},
		{"short font", "f>Arial<12", "f", ""},
		{"bad boolean", "p>yes<0", "p", "locked"},
		{"bad size", "f>Arial<big<<<<<<<<<<", "f", "size"},
		{"bad theme", "f><<<<<FF000000^x<<<<<<", "f", "color.theme"},
		{"unknown fill variant", "fi>zz<1", "fi", "variant"},
		{"pattern without colours", "fi>p<solid", "fi", "pattern"},
		{"stop without position separator", "fi>ga<90:0", "fi", "stops"},
		{"centre without separator", "fi>gp<0.5:", "fi", "center"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStrict(tt.key)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedKey))

			var kerr *KeyError
			require.True(t, errors.As(err, &kerr))
			if tt.component != "" {
				assert.Equal(t, tt.component, kerr.Component)
			}
			assert.Equal(t, tt.field, kerr.Field)
		})
	}
}

func TestDecodeStrict_ReturnsBestEffortStyle(t *testing.T) {
	s, err := DecodeStrict("zz>1|p>1<0")
	require.Error(t, err)
	require.NotNil(t, s.Protection)
	assert.True(t, *s.Protection.Locked)
}

func TestDecodeStrict_KeepsFirstError(t *testing.T) {
	_, err := DecodeStrict("p>x<0|zz>1")
	var kerr *KeyError
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, "locked", kerr.Field)
	assert.Contains(t, err.Error(), `component "p" field locked: invalid boolean "x"`)
}

func TestEncodeStrict(t *testing.T) {
	key, err := EncodeStrict(Style{NumFmt: "0.00"})
	require.NoError(t, err)
	assert.Equal(t, "n>0.00", key)

	_, err = EncodeStrict(Style{NumFmt: "0|0"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReservedDelimiter))
	assert.Contains(t, err.Error(), "numFmt")

	_, err = EncodeStrict(Style{Font: &Font{Name: "A<B"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font.name")
}

func TestEncodeStrict_IgnoresWarnings(t *testing.T) {
	s := Style{Font: &Font{Family: Int(2), Scheme: "minor"}}
	require.NotEmpty(t, Validate(s))

	key, err := EncodeStrict(s)
	require.NoError(t, err)
	assert.Equal(t, Encode(s), key)
}
