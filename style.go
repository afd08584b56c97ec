// Package xlstyle turns cell styles into compact cache keys and back, and
// writes styled xlsx workbooks through excelize with one shared record per
// distinct style.
package xlstyle

import "strconv"

// Style describes the visual formatting of a cell. Every component is
// optional: a nil pointer (or empty NumFmt) means the component is absent.
type Style struct {
	Font       *Font
	Border     *Border
	Alignment  *Alignment
	Fill       Fill
	Protection *Protection
	NumFmt     string // number format code, e.g. "0.00%"
}

// IsEmpty reports whether no component is present.
func (s Style) IsEmpty() bool {
	return s.Font == nil && s.Border == nil && s.Alignment == nil &&
		s.Fill == nil && s.Protection == nil && s.NumFmt == ""
}

// Merge returns a copy of s with every component present in overlay
// replacing the corresponding component of s.
func (s Style) Merge(overlay Style) Style {
	out := s
	if overlay.Font != nil {
		out.Font = overlay.Font
	}
	if overlay.Border != nil {
		out.Border = overlay.Border
	}
	if overlay.Alignment != nil {
		out.Alignment = overlay.Alignment
	}
	if overlay.Fill != nil {
		out.Fill = overlay.Fill
	}
	if overlay.Protection != nil {
		out.Protection = overlay.Protection
	}
	if overlay.NumFmt != "" {
		out.NumFmt = overlay.NumFmt
	}
	return out
}

// Color is an ARGB colour, a theme colour index, or both.
type Color struct {
	ARGB  string // e.g. "FFFF0000"
	Theme *int   // theme index; 0 is a valid theme
}

// IsEmpty reports whether neither ARGB nor Theme is set.
func (c *Color) IsEmpty() bool {
	return c == nil || (c.ARGB == "" && c.Theme == nil)
}

// ARGB returns a colour with only the ARGB value set.
func ARGB(argb string) *Color {
	return &Color{ARGB: argb}
}

// Theme returns a colour with only the theme index set.
func Theme(idx int) *Color {
	return &Color{Theme: Int(idx)}
}

// Font holds font attributes.
type Font struct {
	Name      string
	Size      *float64
	Family    *int
	Scheme    string // "minor", "major", "none"
	Charset   *int
	Color     *Color
	Bold      *bool
	Italic    *bool
	Underline *Underline
	VertAlign string // "superscript", "subscript"
	Strike    *bool
	Outline   *bool
}

// Underline is either a plain on/off flag or a named underline style
// such as "single" or "doubleAccounting". When Style is set, On is ignored.
type Underline struct {
	Style string
	On    bool
}

// UnderlineStyle returns a named underline.
func UnderlineStyle(name string) *Underline {
	return &Underline{Style: name}
}

// UnderlineFlag returns a flag-form underline.
func UnderlineFlag(on bool) *Underline {
	return &Underline{On: on}
}

func (u *Underline) String() string {
	if u.Style != "" {
		return u.Style
	}
	return strconv.FormatBool(u.On)
}

// Edge is one side of a cell border.
type Edge struct {
	Style string // "thin", "medium", "dashed", ...
	Color *Color
}

// IsEmpty reports whether the edge carries neither a style nor a colour.
func (e *Edge) IsEmpty() bool {
	return e == nil || (e.Style == "" && e.Color.IsEmpty())
}

// Diagonal is the diagonal border line. Up and Down are the direction
// flags; they are independent of whether the line itself has a style.
type Diagonal struct {
	Edge
	Up   *bool
	Down *bool
}

// Border holds the four cell edges and the optional diagonal.
type Border struct {
	Top      *Edge
	Left     *Edge
	Bottom   *Edge
	Right    *Edge
	Diagonal *Diagonal
}

// TextRotation is an angle in degrees, or vertical (stacked) text.
type TextRotation struct {
	Angle    float64
	Vertical bool
}

// Rotate returns a rotation by the given angle.
func Rotate(angle float64) *TextRotation {
	return &TextRotation{Angle: angle}
}

// VerticalText returns the stacked-text sentinel rotation.
func VerticalText() *TextRotation {
	return &TextRotation{Vertical: true}
}

func (r *TextRotation) String() string {
	if r.Vertical {
		return rotationVertical
	}
	return formatFloat(r.Angle)
}

// Alignment holds cell alignment attributes.
type Alignment struct {
	Horizontal   string
	Vertical     string
	WrapText     *bool
	ShrinkToFit  *bool
	Indent       *float64
	ReadingOrder string // "ltr", "rtl"
	TextRotation *TextRotation
}

// Protection holds cell protection flags.
type Protection struct {
	Locked *bool
	Hidden *bool
}

// FillKind identifies a Fill variant.
type FillKind int

const (
	FillPattern FillKind = iota
	FillGradientAngle
	FillGradientPath
)

// String returns a human-readable name for the FillKind.
func (k FillKind) String() string {
	switch k {
	case FillPattern:
		return "pattern"
	case FillGradientAngle:
		return "gradient-angle"
	case FillGradientPath:
		return "gradient-path"
	default:
		return "unknown"
	}
}

// Fill is a cell background. It is one of *PatternFill,
// *GradientAngleFill or *GradientPathFill.
type Fill interface {
	Kind() FillKind
	isFill()
}

// PatternFill is a pattern (or solid) fill.
type PatternFill struct {
	Pattern string // "solid", "darkGray", ...
	FgColor *Color
	BgColor *Color
}

// GradientAngleFill is a linear gradient at the given angle.
type GradientAngleFill struct {
	Degree float64
	Stops  []Stop
}

// GradientPathFill is a gradient radiating from Center.
type GradientPathFill struct {
	Center Center
	Stops  []Stop
}

// Center is the focus point of a path gradient, as fractions of the cell.
type Center struct {
	Left float64
	Top  float64
}

// Stop is one colour checkpoint of a gradient.
type Stop struct {
	Position float64
	Color    *Color
}

func (*PatternFill) Kind() FillKind       { return FillPattern }
func (*GradientAngleFill) Kind() FillKind { return FillGradientAngle }
func (*GradientPathFill) Kind() FillKind  { return FillGradientPath }

func (*PatternFill) isFill()       {}
func (*GradientAngleFill) isFill() {}
func (*GradientPathFill) isFill()  {}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
