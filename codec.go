package xlstyle

import (
	"strconv"
	"strings"
)

// Delimiters of the key grammar, outermost first. None of them may appear
// inside a field value; see Validate.
const (
	Sep1 = "|" // component fragments
	Sep2 = ">" // component tag / payload
	Sep3 = "<" // fixed-position sub-fields, fill variant / body
	Sep4 = ":" // edge style / colour, fill parts
	Sep5 = ";" // path gradient centre coordinates
	Sep6 = "!" // gradient stops
	Sep7 = "~" // stop position / colour
	Sep8 = "^" // colour ARGB / theme

	// Reserved holds every delimiter character.
	Reserved = Sep1 + Sep2 + Sep3 + Sep4 + Sep5 + Sep6 + Sep7 + Sep8
)

// Component tags.
const (
	tagFont       = "f"
	tagBorder     = "b"
	tagAlignment  = "a"
	tagFill       = "fi"
	tagProtection = "p"
	tagNumFmt     = "n"
)

// Fill variant tags.
const (
	variantPattern       = "p"
	variantGradientAngle = "ga"
	variantGradientPath  = "gp"
)

// Number of fixed-position sub-fields per component payload.
const (
	fontFields       = 12
	borderFields     = 7
	alignmentFields  = 7
	protectionFields = 2
)

const rotationVertical = "vertical"

// Encode returns the cache key of s. Equal styles always produce identical
// keys and Decode(Encode(s)) reproduces s as long as no text field contains
// a Reserved character.
func Encode(s Style) string {
	var e encoder
	e.b.Grow(64)

	if s.Font != nil {
		e.begin(tagFont)
		e.font(s.Font)
	}
	if s.Border != nil {
		e.begin(tagBorder)
		e.border(s.Border)
	}
	if s.Alignment != nil {
		e.begin(tagAlignment)
		e.alignment(s.Alignment)
	}
	if validFill(s.Fill) {
		e.begin(tagFill)
		e.fill(s.Fill)
	}
	if s.Protection != nil {
		e.begin(tagProtection)
		e.bool(s.Protection.Locked)
		e.next()
		e.bool(s.Protection.Hidden)
	}
	if s.NumFmt != "" {
		e.begin(tagNumFmt)
		e.b.WriteString(s.NumFmt)
	}
	return e.b.String()
}

type encoder struct {
	b     strings.Builder
	parts int
}

func (e *encoder) begin(tag string) {
	if e.parts > 0 {
		e.b.WriteString(Sep1)
	}
	e.parts++
	e.b.WriteString(tag)
	e.b.WriteString(Sep2)
}

func (e *encoder) next() { e.b.WriteString(Sep3) }

func (e *encoder) bool(v *bool) {
	if v == nil {
		return
	}
	if *v {
		e.b.WriteByte('1')
	} else {
		e.b.WriteByte('0')
	}
}

func (e *encoder) float(v *float64) {
	if v != nil {
		e.b.WriteString(formatFloat(*v))
	}
}

func (e *encoder) int(v *int) {
	if v != nil {
		e.b.WriteString(strconv.Itoa(*v))
	}
}

func (e *encoder) color(c *Color) {
	if c.IsEmpty() {
		return
	}
	e.b.WriteString(c.ARGB)
	e.b.WriteString(Sep8)
	e.int(c.Theme)
}

func (e *encoder) edge(ed *Edge) {
	if ed.IsEmpty() {
		return
	}
	e.b.WriteString(ed.Style)
	e.b.WriteString(Sep4)
	e.color(ed.Color)
}

func (e *encoder) font(f *Font) {
	e.b.WriteString(f.Name)
	e.next()
	e.float(f.Size)
	e.next()
	e.int(f.Family)
	e.next()
	e.b.WriteString(f.Scheme)
	e.next()
	e.int(f.Charset)
	e.next()
	e.color(f.Color)
	e.next()
	e.bool(f.Bold)
	e.next()
	e.bool(f.Italic)
	e.next()
	if f.Underline != nil {
		e.b.WriteString(f.Underline.String())
	}
	e.next()
	e.b.WriteString(f.VertAlign)
	e.next()
	e.bool(f.Strike)
	e.next()
	e.bool(f.Outline)
}

func (e *encoder) border(b *Border) {
	e.edge(b.Top)
	e.next()
	e.edge(b.Left)
	e.next()
	e.edge(b.Bottom)
	e.next()
	e.edge(b.Right)
	e.next()
	var up, down *bool
	if d := b.Diagonal; d != nil {
		e.edge(&d.Edge)
		up, down = d.Up, d.Down
	}
	e.next()
	e.bool(up)
	e.next()
	e.bool(down)
}

func (e *encoder) alignment(a *Alignment) {
	e.b.WriteString(a.Horizontal)
	e.next()
	e.b.WriteString(a.Vertical)
	e.next()
	e.bool(a.WrapText)
	e.next()
	e.bool(a.ShrinkToFit)
	e.next()
	e.float(a.Indent)
	e.next()
	e.b.WriteString(a.ReadingOrder)
	e.next()
	if a.TextRotation != nil {
		e.b.WriteString(a.TextRotation.String())
	}
}

func validFill(f Fill) bool {
	switch v := f.(type) {
	case *PatternFill:
		return v != nil
	case *GradientAngleFill:
		return v != nil
	case *GradientPathFill:
		return v != nil
	default:
		return false
	}
}

func (e *encoder) fill(f Fill) {
	switch v := f.(type) {
	case *PatternFill:
		e.b.WriteString(variantPattern)
		e.next()
		e.b.WriteString(v.Pattern)
		e.b.WriteString(Sep4)
		e.color(v.FgColor)
		e.b.WriteString(Sep4)
		e.color(v.BgColor)
	case *GradientAngleFill:
		e.b.WriteString(variantGradientAngle)
		e.next()
		e.b.WriteString(formatFloat(v.Degree))
		e.b.WriteString(Sep4)
		e.stops(v.Stops)
	case *GradientPathFill:
		e.b.WriteString(variantGradientPath)
		e.next()
		e.b.WriteString(formatFloat(v.Center.Left))
		e.b.WriteString(Sep5)
		e.b.WriteString(formatFloat(v.Center.Top))
		e.b.WriteString(Sep4)
		e.stops(v.Stops)
	}
}

func (e *encoder) stops(stops []Stop) {
	for i, st := range stops {
		if i > 0 {
			e.b.WriteString(Sep6)
		}
		e.b.WriteString(formatFloat(st.Position))
		e.b.WriteString(Sep7)
		e.color(st.Color)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Decode rebuilds the Style a key was produced from. It never fails:
// unknown component tags are skipped and malformed sub-fields are left
// unset. Use DecodeStrict to detect foreign or corrupted keys.
func Decode(key string) Style {
	var d decoder
	return d.style(key)
}

// decoder reconstructs styles. In strict mode the first problem found is
// kept in err; decoding itself always runs to completion.
type decoder struct {
	strict    bool
	err       error
	component string
}

func (d *decoder) fail(field, value, reason string) {
	if !d.strict || d.err != nil {
		return
	}
	d.err = &KeyError{Component: d.component, Field: field, Value: value, Reason: reason}
}

func (d *decoder) style(key string) Style {
	var s Style
	if key == "" {
		return s
	}
	for _, frag := range strings.Split(key, Sep1) {
		tag, payload, ok := strings.Cut(frag, Sep2)
		if !ok {
			d.component = ""
			d.fail("", frag, "missing component tag")
			continue
		}
		d.component = tag
		switch tag {
		case tagFont:
			s.Font = d.font(d.fields(payload, fontFields))
		case tagBorder:
			s.Border = d.border(d.fields(payload, borderFields))
		case tagAlignment:
			s.Alignment = d.alignment(d.fields(payload, alignmentFields))
		case tagFill:
			s.Fill = d.fill(payload)
		case tagProtection:
			p := d.fields(payload, protectionFields)
			s.Protection = &Protection{
				Locked: d.bool("locked", field(p, 0)),
				Hidden: d.bool("hidden", field(p, 1)),
			}
		case tagNumFmt:
			s.NumFmt = payload
		default:
			d.fail("", frag, "unknown component tag")
		}
	}
	return s
}

// fields splits a fixed-position payload. Short payloads are tolerated;
// field returns "" for missing trailing slots.
func (d *decoder) fields(payload string, want int) []string {
	parts := strings.Split(payload, Sep3)
	if len(parts) != want {
		d.fail("", payload, "expected "+strconv.Itoa(want)+" sub-fields, got "+strconv.Itoa(len(parts)))
	}
	return parts
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func (d *decoder) bool(name, v string) *bool {
	switch v {
	case "1":
		return Bool(true)
	case "0":
		return Bool(false)
	case "":
	default:
		d.fail(name, v, "invalid boolean")
	}
	return nil
}

func (d *decoder) float(name, v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		d.fail(name, v, "invalid number")
		return nil
	}
	return &f
}

func (d *decoder) int(name, v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		d.fail(name, v, "invalid integer")
		return nil
	}
	return &n
}

func (d *decoder) color(name, v string) *Color {
	if v == "" {
		return nil
	}
	argb, theme, ok := strings.Cut(v, Sep8)
	if !ok {
		d.fail(name, v, "missing theme separator")
	}
	c := &Color{ARGB: argb}
	// theme is parsed whenever the slot is non-empty so that 0 survives.
	c.Theme = d.int(name+".theme", theme)
	if c.IsEmpty() {
		return nil
	}
	return c
}

func (d *decoder) edge(name, v string) *Edge {
	if v == "" {
		return nil
	}
	style, color, ok := strings.Cut(v, Sep4)
	if !ok {
		d.fail(name, v, "missing colour separator")
	}
	ed := &Edge{Style: style, Color: d.color(name+".color", color)}
	if ed.IsEmpty() {
		return nil
	}
	return ed
}

func (d *decoder) font(p []string) *Font {
	f := &Font{
		Name:      field(p, 0),
		Size:      d.float("size", field(p, 1)),
		Family:    d.int("family", field(p, 2)),
		Scheme:    field(p, 3),
		Charset:   d.int("charset", field(p, 4)),
		Color:     d.color("color", field(p, 5)),
		Bold:      d.bool("bold", field(p, 6)),
		Italic:    d.bool("italic", field(p, 7)),
		VertAlign: field(p, 9),
		Strike:    d.bool("strike", field(p, 10)),
		Outline:   d.bool("outline", field(p, 11)),
	}
	switch u := field(p, 8); u {
	case "":
	case "true":
		f.Underline = UnderlineFlag(true)
	case "false":
		f.Underline = UnderlineFlag(false)
	default:
		f.Underline = UnderlineStyle(u)
	}
	return f
}

func (d *decoder) border(p []string) *Border {
	b := &Border{
		Top:    d.edge("top", field(p, 0)),
		Left:   d.edge("left", field(p, 1)),
		Bottom: d.edge("bottom", field(p, 2)),
		Right:  d.edge("right", field(p, 3)),
	}
	diag := d.edge("diagonal", field(p, 4))
	up := d.bool("diagonal.up", field(p, 5))
	down := d.bool("diagonal.down", field(p, 6))
	if diag != nil || up != nil || down != nil {
		b.Diagonal = &Diagonal{Up: up, Down: down}
		if diag != nil {
			b.Diagonal.Edge = *diag
		}
	}
	return b
}

func (d *decoder) alignment(p []string) *Alignment {
	a := &Alignment{
		Horizontal:   field(p, 0),
		Vertical:     field(p, 1),
		WrapText:     d.bool("wrapText", field(p, 2)),
		ShrinkToFit:  d.bool("shrinkToFit", field(p, 3)),
		Indent:       d.float("indent", field(p, 4)),
		ReadingOrder: field(p, 5),
	}
	switch r := field(p, 6); r {
	case "":
	case rotationVertical:
		a.TextRotation = VerticalText()
	default:
		if angle := d.float("textRotation", r); angle != nil {
			a.TextRotation = Rotate(*angle)
		}
	}
	return a
}

func (d *decoder) fill(payload string) Fill {
	variant, body, _ := strings.Cut(payload, Sep3)
	switch variant {
	case variantPattern:
		p := strings.Split(body, Sep4)
		if len(p) != 3 {
			d.fail("pattern", body, "expected pattern, fgColor and bgColor")
		}
		return &PatternFill{
			Pattern: field(p, 0),
			FgColor: d.color("fgColor", field(p, 1)),
			BgColor: d.color("bgColor", field(p, 2)),
		}
	case variantGradientAngle:
		degree, stops, _ := strings.Cut(body, Sep4)
		f := &GradientAngleFill{Stops: d.stops(stops)}
		if v := d.float("degree", degree); v != nil {
			f.Degree = *v
		}
		return f
	case variantGradientPath:
		center, stops, _ := strings.Cut(body, Sep4)
		left, top, ok := strings.Cut(center, Sep5)
		if !ok {
			d.fail("center", center, "missing coordinate separator")
		}
		f := &GradientPathFill{Stops: d.stops(stops)}
		if v := d.float("center.left", left); v != nil {
			f.Center.Left = *v
		}
		if v := d.float("center.top", top); v != nil {
			f.Center.Top = *v
		}
		return f
	default:
		d.fail("variant", variant, "unknown fill variant")
		return nil
	}
}

func (d *decoder) stops(v string) []Stop {
	if v == "" {
		return nil
	}
	raw := strings.Split(v, Sep6)
	stops := make([]Stop, 0, len(raw))
	for _, r := range raw {
		pos, color, ok := strings.Cut(r, Sep7)
		if !ok {
			d.fail("stops", r, "missing position separator")
		}
		st := Stop{Color: d.color("stops.color", color)}
		if p := d.float("stops.position", pos); p != nil {
			st.Position = *p
		}
		stops = append(stops, st)
	}
	return stops
}
