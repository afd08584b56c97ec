package xlstyle

import (
	"fmt"
	"strings"
)

// Describe decodes key and returns a human-readable tree of the style it
// holds. Useful for debugging cache keys.
func Describe(key string) string {
	s, err := DecodeStrict(key)

	var b strings.Builder
	b.WriteString("Key: ")
	if key == "" {
		b.WriteString("<empty>")
	} else {
		b.WriteString(key)
	}
	b.WriteByte('\n')

	if s.Font != nil {
		describeFont(&b, s.Font)
	}
	if s.Border != nil {
		describeBorder(&b, s.Border)
	}
	if s.Alignment != nil {
		describeAlignment(&b, s.Alignment)
	}
	if s.Fill != nil {
		describeFill(&b, s.Fill)
	}
	if p := s.Protection; p != nil {
		b.WriteString("protection\n")
		line(&b, 1, "locked", boolText(p.Locked))
		line(&b, 1, "hidden", boolText(p.Hidden))
	}
	if s.NumFmt != "" {
		fmt.Fprintf(&b, "numFmt %q\n", s.NumFmt)
	}
	if err != nil {
		fmt.Fprintf(&b, "warning: %v\n", err)
	}
	return b.String()
}

// line writes "  name: value" at the given depth, skipping empty values.
func line(b *strings.Builder, depth int, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s%s: %s\n", strings.Repeat("  ", depth), name, value)
}

func boolText(v *bool) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func floatText(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func colorText(c *Color) string {
	if c.IsEmpty() {
		return ""
	}
	var parts []string
	if c.ARGB != "" {
		parts = append(parts, "argb="+c.ARGB)
	}
	if c.Theme != nil {
		parts = append(parts, fmt.Sprintf("theme=%d", *c.Theme))
	}
	return strings.Join(parts, " ")
}

func edgeText(e *Edge) string {
	if e.IsEmpty() {
		return ""
	}
	if c := colorText(e.Color); c != "" {
		return strings.TrimSpace(e.Style + " " + c)
	}
	return e.Style
}

func describeFont(b *strings.Builder, f *Font) {
	b.WriteString("font\n")
	line(b, 1, "name", f.Name)
	line(b, 1, "size", floatText(f.Size))
	line(b, 1, "family", intText(f.Family))
	line(b, 1, "scheme", f.Scheme)
	line(b, 1, "charset", intText(f.Charset))
	line(b, 1, "color", colorText(f.Color))
	line(b, 1, "bold", boolText(f.Bold))
	line(b, 1, "italic", boolText(f.Italic))
	if f.Underline != nil {
		line(b, 1, "underline", f.Underline.String())
	}
	line(b, 1, "vertAlign", f.VertAlign)
	line(b, 1, "strike", boolText(f.Strike))
	line(b, 1, "outline", boolText(f.Outline))
}

func describeBorder(b *strings.Builder, br *Border) {
	b.WriteString("border\n")
	line(b, 1, "top", edgeText(br.Top))
	line(b, 1, "left", edgeText(br.Left))
	line(b, 1, "bottom", edgeText(br.Bottom))
	line(b, 1, "right", edgeText(br.Right))
	if d := br.Diagonal; d != nil {
		b.WriteString("  diagonal\n")
		line(b, 2, "edge", edgeText(&d.Edge))
		line(b, 2, "up", boolText(d.Up))
		line(b, 2, "down", boolText(d.Down))
	}
}

func describeAlignment(b *strings.Builder, a *Alignment) {
	b.WriteString("alignment\n")
	line(b, 1, "horizontal", a.Horizontal)
	line(b, 1, "vertical", a.Vertical)
	line(b, 1, "wrapText", boolText(a.WrapText))
	line(b, 1, "shrinkToFit", boolText(a.ShrinkToFit))
	line(b, 1, "indent", floatText(a.Indent))
	line(b, 1, "readingOrder", a.ReadingOrder)
	if a.TextRotation != nil {
		line(b, 1, "textRotation", a.TextRotation.String())
	}
}

func describeFill(b *strings.Builder, f Fill) {
	fmt.Fprintf(b, "fill (%s)\n", f.Kind())
	switch v := f.(type) {
	case *PatternFill:
		line(b, 1, "pattern", v.Pattern)
		line(b, 1, "fgColor", colorText(v.FgColor))
		line(b, 1, "bgColor", colorText(v.BgColor))
	case *GradientAngleFill:
		line(b, 1, "degree", formatFloat(v.Degree))
		describeStops(b, v.Stops)
	case *GradientPathFill:
		line(b, 1, "center", formatFloat(v.Center.Left)+", "+formatFloat(v.Center.Top))
		describeStops(b, v.Stops)
	}
}

func describeStops(b *strings.Builder, stops []Stop) {
	for i, st := range stops {
		line(b, 1, fmt.Sprintf("stop[%d]", i), strings.TrimSpace(formatFloat(st.Position)+" "+colorText(st.Color)))
	}
}
