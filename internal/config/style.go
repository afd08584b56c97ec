package config

import (
	"github.com/cockroachdb/errors"

	"github.com/javajack/xlstyle"
)

// Style converts the YAML style into an xlstyle.Style.
func (s *StyleSpec) Style() (xlstyle.Style, error) {
	var out xlstyle.Style
	if s == nil {
		return out, nil
	}
	out.NumFmt = s.NumFmt

	if f := s.Font; f != nil {
		font := &xlstyle.Font{
			Name:      f.Name,
			Size:      f.Size,
			Family:    f.Family,
			Scheme:    f.Scheme,
			Charset:   f.Charset,
			Color:     f.Color.color(),
			Bold:      f.Bold,
			Italic:    f.Italic,
			VertAlign: f.VertAlign,
			Strike:    f.Strike,
			Outline:   f.Outline,
		}
		switch u := f.Underline.(type) {
		case nil:
		case bool:
			font.Underline = xlstyle.UnderlineFlag(u)
		case string:
			font.Underline = xlstyle.UnderlineStyle(u)
		default:
			return out, errors.Newf("font.underline: expected bool or style name, got %T", u)
		}
		out.Font = font
	}

	if b := s.Border; b != nil {
		border := &xlstyle.Border{
			Top:    b.Top.edge(),
			Left:   b.Left.edge(),
			Bottom: b.Bottom.edge(),
			Right:  b.Right.edge(),
		}
		if d := b.Diagonal; d != nil {
			border.Diagonal = &xlstyle.Diagonal{Up: d.Up, Down: d.Down}
			if e := d.edge(); e != nil {
				border.Diagonal.Edge = *e
			}
		}
		out.Border = border
	}

	if a := s.Alignment; a != nil {
		align := &xlstyle.Alignment{
			Horizontal:   a.Horizontal,
			Vertical:     a.Vertical,
			WrapText:     a.WrapText,
			ShrinkToFit:  a.ShrinkToFit,
			Indent:       a.Indent,
			ReadingOrder: a.ReadingOrder,
		}
		switch r := a.TextRotation.(type) {
		case nil:
		case int:
			align.TextRotation = xlstyle.Rotate(float64(r))
		case float64:
			align.TextRotation = xlstyle.Rotate(r)
		case string:
			if r != "vertical" {
				return out, errors.Newf("alignment.textRotation: expected a number or \"vertical\", got %q", r)
			}
			align.TextRotation = xlstyle.VerticalText()
		default:
			return out, errors.Newf("alignment.textRotation: expected a number or \"vertical\", got %T", r)
		}
		out.Alignment = align
	}

	if f := s.Fill; f != nil {
		fill, err := f.fill()
		if err != nil {
			return out, err
		}
		out.Fill = fill
	}

	if p := s.Protection; p != nil {
		out.Protection = &xlstyle.Protection{Locked: p.Locked, Hidden: p.Hidden}
	}
	return out, nil
}

func (f *FillSpec) fill() (xlstyle.Fill, error) {
	switch f.Type {
	case "pattern":
		return &xlstyle.PatternFill{Pattern: f.Pattern, FgColor: f.FgColor.color(), BgColor: f.BgColor.color()}, nil
	case "gradient":
		stops := make([]xlstyle.Stop, 0, len(f.Stops))
		for _, st := range f.Stops {
			stops = append(stops, xlstyle.Stop{Position: st.Position, Color: st.Color.color()})
		}
		switch f.Gradient {
		case "angle", "":
			return &xlstyle.GradientAngleFill{Degree: f.Degree, Stops: stops}, nil
		case "path":
			fill := &xlstyle.GradientPathFill{Stops: stops}
			if f.Center != nil {
				fill.Center = xlstyle.Center{Left: f.Center.Left, Top: f.Center.Top}
			}
			return fill, nil
		default:
			return nil, errors.Newf("fill.gradient: expected angle or path, got %q", f.Gradient)
		}
	default:
		return nil, errors.Newf("fill.type: expected pattern or gradient, got %q", f.Type)
	}
}

func (c *ColorSpec) color() *xlstyle.Color {
	if c == nil || (c.ARGB == "" && c.Theme == nil) {
		return nil
	}
	return &xlstyle.Color{ARGB: c.ARGB, Theme: c.Theme}
}

func (e *EdgeSpec) edge() *xlstyle.Edge {
	if e == nil || (e.Style == "" && e.Color.color() == nil) {
		return nil
	}
	return &xlstyle.Edge{Style: e.Style, Color: e.Color.color()}
}

// FromStyle converts a style into its YAML spec.
func FromStyle(s xlstyle.Style) StyleSpec {
	spec := StyleSpec{NumFmt: s.NumFmt}

	if f := s.Font; f != nil {
		font := &FontSpec{
			Name:      f.Name,
			Size:      f.Size,
			Family:    f.Family,
			Scheme:    f.Scheme,
			Charset:   f.Charset,
			Color:     colorSpec(f.Color),
			Bold:      f.Bold,
			Italic:    f.Italic,
			VertAlign: f.VertAlign,
			Strike:    f.Strike,
			Outline:   f.Outline,
		}
		if u := f.Underline; u != nil {
			if u.Style != "" {
				font.Underline = u.Style
			} else {
				font.Underline = u.On
			}
		}
		spec.Font = font
	}

	if b := s.Border; b != nil {
		border := &BorderSpec{
			Top:    edgeSpec(b.Top),
			Left:   edgeSpec(b.Left),
			Bottom: edgeSpec(b.Bottom),
			Right:  edgeSpec(b.Right),
		}
		if d := b.Diagonal; d != nil {
			border.Diagonal = &EdgeSpec{Style: d.Style, Color: colorSpec(d.Color), Up: d.Up, Down: d.Down}
		}
		spec.Border = border
	}

	if a := s.Alignment; a != nil {
		align := &AlignmentSpec{
			Horizontal:   a.Horizontal,
			Vertical:     a.Vertical,
			WrapText:     a.WrapText,
			ShrinkToFit:  a.ShrinkToFit,
			Indent:       a.Indent,
			ReadingOrder: a.ReadingOrder,
		}
		if r := a.TextRotation; r != nil {
			if r.Vertical {
				align.TextRotation = "vertical"
			} else {
				align.TextRotation = r.Angle
			}
		}
		spec.Alignment = align
	}

	switch f := s.Fill.(type) {
	case *xlstyle.PatternFill:
		if f == nil {
			break
		}
		spec.Fill = &FillSpec{Type: "pattern", Pattern: f.Pattern, FgColor: colorSpec(f.FgColor), BgColor: colorSpec(f.BgColor)}
	case *xlstyle.GradientAngleFill:
		if f == nil {
			break
		}
		spec.Fill = &FillSpec{Type: "gradient", Gradient: "angle", Degree: f.Degree, Stops: stopSpecs(f.Stops)}
	case *xlstyle.GradientPathFill:
		if f == nil {
			break
		}
		spec.Fill = &FillSpec{
			Type:     "gradient",
			Gradient: "path",
			Center:   &CenterSpec{Left: f.Center.Left, Top: f.Center.Top},
			Stops:    stopSpecs(f.Stops),
		}
	}

	if p := s.Protection; p != nil {
		spec.Protection = &ProtectionSpec{Locked: p.Locked, Hidden: p.Hidden}
	}
	return spec
}

func colorSpec(c *xlstyle.Color) *ColorSpec {
	if c.IsEmpty() {
		return nil
	}
	return &ColorSpec{ARGB: c.ARGB, Theme: c.Theme}
}

func edgeSpec(e *xlstyle.Edge) *EdgeSpec {
	if e.IsEmpty() {
		return nil
	}
	return &EdgeSpec{Style: e.Style, Color: colorSpec(e.Color)}
}

func stopSpecs(stops []xlstyle.Stop) []StopSpec {
	out := make([]StopSpec, 0, len(stops))
	for _, st := range stops {
		out = append(out, StopSpec{Position: st.Position, Color: colorSpec(st.Color)})
	}
	return out
}

// Options returns the writer options the job configures.
func (c *Config) Options() ([]xlstyle.Option, error) {
	mode, err := xlstyle.ParseCacheMode(c.CacheMode)
	if err != nil {
		return nil, err
	}
	opts := []xlstyle.Option{
		xlstyle.WithCacheMode(mode),
		xlstyle.WithUseStyles(c.UseStyles),
		xlstyle.WithDefaultColumnWidth(c.DefaultColumnWidth),
	}
	for i, rule := range c.Rules {
		style, err := rule.Style.Style()
		if err != nil {
			return nil, errors.Wrapf(err, "rules[%d]", i)
		}
		opts = append(opts, xlstyle.WithStyleRule(rule.When, style))
	}
	return opts, nil
}

// WriterColumns converts the sheet's columns.
func (s *SheetConfig) WriterColumns() ([]xlstyle.Column, error) {
	cols := make([]xlstyle.Column, 0, len(s.Columns))
	for i, col := range s.Columns {
		style, err := col.Style.Style()
		if err != nil {
			return nil, errors.Wrapf(err, "columns[%d]", i)
		}
		cols = append(cols, xlstyle.Column{Header: col.Header, Key: col.Key, Width: col.Width, Style: style})
	}
	return cols, nil
}
