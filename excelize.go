package xlstyle

import (
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
)

// borderStyles lists border style names by excelize border style index.
var borderStyles = []string{
	"none", "thin", "medium", "dashed", "dotted", "thick", "double", "hair",
	"mediumDashed", "dashDot", "mediumDashDot", "dashDotDot", "mediumDashDotDot", "slantDashDot",
}

// patternNames lists pattern fill names by excelize pattern index.
var patternNames = []string{
	"none", "solid", "mediumGray", "darkGray", "lightGray", "darkHorizontal", "darkVertical",
	"darkDown", "darkUp", "darkGrid", "darkTrellis", "lightHorizontal", "lightVertical",
	"lightDown", "lightUp", "lightGrid", "lightTrellis", "gray125", "gray0625",
}

// excelize gradient shading variants.
const (
	shadingHorizontal = iota
	shadingVertical
	shadingDiagonalUp
	shadingDiagonalDown
	shadingFromCorner
	shadingFromCenter
)

const (
	excelizeVerticalText = 255
	defaultGradientColor = "FFFFFF"
)

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// ToExcelize converts s into the style definition excelize registers with
// File.NewStyle. Attributes excelize cannot express are dropped: theme
// colours outside fonts, font family numbers, schemes and outline, and
// gradient stops between the first and last. Validate reports them as
// warnings.
func ToExcelize(s Style) *excelize.Style {
	out := &excelize.Style{}

	if f := s.Font; f != nil {
		xf := &excelize.Font{
			Family:    f.Name,
			Color:     rgb(f.Color),
			VertAlign: f.VertAlign,
		}
		if f.Size != nil {
			xf.Size = *f.Size
		}
		if f.Charset != nil {
			xf.Charset = Int(*f.Charset)
		}
		if f.Color != nil && f.Color.Theme != nil {
			xf.ColorTheme = Int(*f.Color.Theme)
		}
		xf.Bold = isTrue(f.Bold)
		xf.Italic = isTrue(f.Italic)
		xf.Strike = isTrue(f.Strike)
		if u := f.Underline; u != nil {
			switch {
			case u.Style != "":
				xf.Underline = u.Style
			case u.On:
				xf.Underline = "single"
			}
		}
		out.Font = xf
	}

	if b := s.Border; b != nil {
		out.Border = appendEdge(out.Border, "top", b.Top)
		out.Border = appendEdge(out.Border, "left", b.Left)
		out.Border = appendEdge(out.Border, "bottom", b.Bottom)
		out.Border = appendEdge(out.Border, "right", b.Right)
		if d := b.Diagonal; d != nil {
			if isTrue(d.Up) {
				out.Border = appendEdge(out.Border, "diagonalUp", &d.Edge)
			}
			if isTrue(d.Down) {
				out.Border = appendEdge(out.Border, "diagonalDown", &d.Edge)
			}
		}
	}

	if a := s.Alignment; a != nil {
		xa := &excelize.Alignment{
			Horizontal:  a.Horizontal,
			Vertical:    a.Vertical,
			WrapText:    isTrue(a.WrapText),
			ShrinkToFit: isTrue(a.ShrinkToFit),
		}
		if a.Indent != nil {
			xa.Indent = int(*a.Indent)
		}
		switch a.ReadingOrder {
		case "ltr":
			xa.ReadingOrder = 1
		case "rtl":
			xa.ReadingOrder = 2
		}
		if r := a.TextRotation; r != nil {
			xa.TextRotation = excelizeRotation(r)
		}
		out.Alignment = xa
	}

	switch f := s.Fill.(type) {
	case *PatternFill:
		if f != nil {
			if idx := indexOf(patternNames, f.Pattern); idx > 0 {
				out.Fill = excelize.Fill{Type: "pattern", Pattern: idx}
				if c := rgb(f.FgColor); c != "" {
					out.Fill.Color = []string{c}
				}
			}
		}
	case *GradientAngleFill:
		if f != nil {
			out.Fill = excelize.Fill{Type: "gradient", Color: gradientColors(f.Stops), Shading: angleShading(f.Degree)}
		}
	case *GradientPathFill:
		if f != nil {
			shading := shadingFromCenter
			if f.Center.Left == 0 && f.Center.Top == 0 {
				shading = shadingFromCorner
			}
			out.Fill = excelize.Fill{Type: "gradient", Color: gradientColors(f.Stops), Shading: shading}
		}
	}

	if p := s.Protection; p != nil {
		out.Protection = &excelize.Protection{Locked: isTrue(p.Locked), Hidden: isTrue(p.Hidden)}
	}

	if s.NumFmt != "" {
		numFmt := s.NumFmt
		out.CustomNumFmt = &numFmt
	}
	return out
}

// FromExcelize converts an excelize style definition, such as one returned by
// File.GetStyle, into a Style. Zero-valued excelize fields are treated as
// absent.
func FromExcelize(xs *excelize.Style) Style {
	var s Style
	if xs == nil {
		return s
	}

	if xf := xs.Font; xf != nil {
		f := &Font{Name: xf.Family, VertAlign: xf.VertAlign}
		if xf.Size > 0 {
			f.Size = Float(xf.Size)
		}
		if xf.Charset != nil {
			f.Charset = Int(*xf.Charset)
		}
		if xf.Color != "" || xf.ColorTheme != nil {
			f.Color = &Color{ARGB: argb(xf.Color)}
			if xf.ColorTheme != nil {
				f.Color.Theme = Int(*xf.ColorTheme)
			}
		}
		if xf.Bold {
			f.Bold = Bool(true)
		}
		if xf.Italic {
			f.Italic = Bool(true)
		}
		if xf.Strike {
			f.Strike = Bool(true)
		}
		if xf.Underline != "" && xf.Underline != "none" {
			f.Underline = UnderlineStyle(xf.Underline)
		}
		s.Font = f
	}

	if len(xs.Border) > 0 {
		b := &Border{}
		for _, xb := range xs.Border {
			ed := &Edge{Color: colorOf(xb.Color)}
			if xb.Style > 0 && xb.Style < len(borderStyles) {
				ed.Style = borderStyles[xb.Style]
			}
			if ed.IsEmpty() {
				continue
			}
			switch xb.Type {
			case "top":
				b.Top = ed
			case "left":
				b.Left = ed
			case "bottom":
				b.Bottom = ed
			case "right":
				b.Right = ed
			case "diagonalUp", "diagonalDown":
				if b.Diagonal == nil {
					b.Diagonal = &Diagonal{Edge: *ed}
				}
				if xb.Type == "diagonalUp" {
					b.Diagonal.Up = Bool(true)
				} else {
					b.Diagonal.Down = Bool(true)
				}
			}
		}
		s.Border = b
	}

	if xa := xs.Alignment; xa != nil {
		a := &Alignment{Horizontal: xa.Horizontal, Vertical: xa.Vertical}
		if xa.WrapText {
			a.WrapText = Bool(true)
		}
		if xa.ShrinkToFit {
			a.ShrinkToFit = Bool(true)
		}
		if xa.Indent > 0 {
			a.Indent = Float(float64(xa.Indent))
		}
		switch xa.ReadingOrder {
		case 1:
			a.ReadingOrder = "ltr"
		case 2:
			a.ReadingOrder = "rtl"
		}
		switch {
		case xa.TextRotation == excelizeVerticalText:
			a.TextRotation = VerticalText()
		case xa.TextRotation > 90 && xa.TextRotation <= 180:
			a.TextRotation = Rotate(float64(90 - xa.TextRotation))
		case xa.TextRotation != 0:
			a.TextRotation = Rotate(float64(xa.TextRotation))
		}
		s.Alignment = a
	}

	switch xs.Fill.Type {
	case "pattern":
		if xs.Fill.Pattern > 0 && xs.Fill.Pattern < len(patternNames) {
			f := &PatternFill{Pattern: patternNames[xs.Fill.Pattern]}
			if len(xs.Fill.Color) > 0 {
				f.FgColor = colorOf(xs.Fill.Color[0])
			}
			s.Fill = f
		}
	case "gradient":
		stops := make([]Stop, 0, len(xs.Fill.Color))
		for i, c := range xs.Fill.Color {
			pos := 0.0
			if len(xs.Fill.Color) > 1 {
				pos = float64(i) / float64(len(xs.Fill.Color)-1)
			}
			stops = append(stops, Stop{Position: pos, Color: colorOf(c)})
		}
		switch xs.Fill.Shading {
		case shadingFromCorner:
			s.Fill = &GradientPathFill{Stops: stops}
		case shadingFromCenter:
			s.Fill = &GradientPathFill{Center: Center{Left: 0.5, Top: 0.5}, Stops: stops}
		default:
			s.Fill = &GradientAngleFill{Degree: shadingAngle(xs.Fill.Shading), Stops: stops}
		}
	}

	if xp := xs.Protection; xp != nil {
		s.Protection = &Protection{Locked: Bool(xp.Locked), Hidden: Bool(xp.Hidden)}
	}

	if xs.CustomNumFmt != nil {
		s.NumFmt = *xs.CustomNumFmt
	}
	return s
}

func isTrue(v *bool) bool { return v != nil && *v }

func appendEdge(borders []excelize.Border, side string, e *Edge) []excelize.Border {
	if e.IsEmpty() {
		return borders
	}
	style := indexOf(borderStyles, e.Style)
	if style < 0 {
		style = 1
	}
	return append(borders, excelize.Border{Type: side, Color: rgb(e.Color), Style: style})
}

// rgb converts an ARGB colour to the RRGGBB form excelize expects.
func rgb(c *Color) string {
	if c == nil || c.ARGB == "" {
		return ""
	}
	v := strings.TrimPrefix(c.ARGB, "#")
	if len(v) == 8 {
		v = v[2:]
	}
	return strings.ToUpper(v)
}

// argb converts an excelize RRGGBB colour to opaque ARGB.
func argb(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 6 {
		return "FF" + c
	}
	return c
}

func colorOf(c string) *Color {
	if c == "" {
		return nil
	}
	return ARGB(argb(c))
}

func gradientColors(stops []Stop) []string {
	colors := []string{defaultGradientColor, defaultGradientColor}
	if len(stops) == 0 {
		return colors
	}
	if c := rgb(stops[0].Color); c != "" {
		colors[0] = c
	}
	if c := rgb(stops[len(stops)-1].Color); c != "" {
		colors[1] = c
	}
	return colors
}

func angleShading(degree float64) int {
	switch d := math.Mod(math.Mod(degree, 360)+360, 180); {
	case d < 22.5 || d >= 157.5:
		return shadingVertical
	case d < 67.5:
		return shadingDiagonalUp
	case d < 112.5:
		return shadingHorizontal
	default:
		return shadingDiagonalDown
	}
}

func shadingAngle(shading int) float64 {
	switch shading {
	case shadingVertical:
		return 0
	case shadingDiagonalUp:
		return 45
	case shadingDiagonalDown:
		return 135
	default:
		return 90
	}
}

func excelizeRotation(r *TextRotation) int {
	if r.Vertical {
		return excelizeVerticalText
	}
	angle := int(math.Round(r.Angle))
	if angle < 0 {
		return 90 - angle
	}
	return angle
}

// conversionIssues lists the parts of s that ToExcelize cannot carry.
func conversionIssues(s Style) []ValidationIssue {
	var issues []ValidationIssue
	warn := func(field, format string, args ...any) {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		})
	}
	themeOnly := func(field string, c *Color) {
		if c != nil && c.Theme != nil {
			warn(field+".theme", "theme colours are only applied to fonts")
		}
	}
	edge := func(field string, e *Edge) {
		if e == nil {
			return
		}
		if e.Style != "" && indexOf(borderStyles, e.Style) < 0 {
			warn(field+".style", "unknown border style %q, thin is used", e.Style)
		}
		themeOnly(field+".color", e.Color)
	}

	if f := s.Font; f != nil {
		if f.Family != nil {
			warn("font.family", "font family numbers are not applied")
		}
		if f.Scheme != "" {
			warn("font.scheme", "font schemes are not applied")
		}
		if f.Outline != nil {
			warn("font.outline", "outline fonts are not applied")
		}
	}
	if b := s.Border; b != nil {
		edge("border.top", b.Top)
		edge("border.left", b.Left)
		edge("border.bottom", b.Bottom)
		edge("border.right", b.Right)
		if d := b.Diagonal; d != nil {
			edge("border.diagonal", &d.Edge)
			if !isTrue(d.Up) && !isTrue(d.Down) && !d.Edge.IsEmpty() {
				warn("border.diagonal", "diagonal line without up or down direction is not drawn")
			}
		}
	}
	if a := s.Alignment; a != nil {
		if a.ReadingOrder != "" && a.ReadingOrder != "ltr" && a.ReadingOrder != "rtl" {
			warn("alignment.readingOrder", "unknown reading order %q", a.ReadingOrder)
		}
		if a.Indent != nil && *a.Indent != math.Trunc(*a.Indent) {
			warn("alignment.indent", "fractional indent %v is truncated", *a.Indent)
		}
	}
	switch f := s.Fill.(type) {
	case *PatternFill:
		if f != nil {
			if indexOf(patternNames, f.Pattern) < 0 {
				warn("fill.pattern", "unknown pattern %q, no fill is applied", f.Pattern)
			}
			if f.BgColor != nil {
				warn("fill.bgColor", "pattern background colours are not applied")
			}
			themeOnly("fill.fgColor", f.FgColor)
		}
	case *GradientAngleFill:
		if f != nil && len(f.Stops) > 2 {
			warn("fill.stops", "only the first and last of %d stops are applied", len(f.Stops))
		}
	case *GradientPathFill:
		if f != nil {
			if len(f.Stops) > 2 {
				warn("fill.stops", "only the first and last of %d stops are applied", len(f.Stops))
			}
			if c := f.Center; !(c.Left == 0 && c.Top == 0) && !(c.Left == 0.5 && c.Top == 0.5) {
				warn("fill.center", "path gradients are centred on the cell or its corner")
			}
		}
	}
	return issues
}
