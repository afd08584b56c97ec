package xlstyle

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// styleGen builds random styles whose text values never contain a
// Reserved character.
type styleGen struct {
	r *rand.Rand
}

const genAlphabet = "abcdefXYZ0189 .-_#%/()"

func (g styleGen) text(max int) string {
	b := make([]byte, g.r.IntN(max+1))
	for i := range b {
		b[i] = genAlphabet[g.r.IntN(len(genAlphabet))]
	}
	return string(b)
}

func (g styleGen) hex() string {
	const digits = "0123456789ABCDEF"
	b := make([]byte, 8)
	for i := range b {
		b[i] = digits[g.r.IntN(len(digits))]
	}
	return string(b)
}

func (g styleGen) float() float64 {
	return float64(g.r.IntN(4001)-2000) / 8
}

func (g styleGen) floatPtr() *float64 {
	if g.r.IntN(2) == 0 {
		return nil
	}
	return Float(g.float())
}

func (g styleGen) intPtr() *int {
	if g.r.IntN(2) == 0 {
		return nil
	}
	return Int(g.r.IntN(300))
}

func (g styleGen) boolPtr() *bool {
	switch g.r.IntN(3) {
	case 0:
		return nil
	case 1:
		return Bool(true)
	default:
		return Bool(false)
	}
}

func (g styleGen) color() *Color {
	switch g.r.IntN(4) {
	case 0:
		return nil
	case 1:
		return ARGB(g.hex())
	case 2:
		return Theme(g.r.IntN(12))
	default:
		return &Color{ARGB: g.hex(), Theme: Int(g.r.IntN(12))}
	}
}

func (g styleGen) edge() *Edge {
	if g.r.IntN(3) == 0 {
		return nil
	}
	e := &Edge{Style: g.text(8), Color: g.color()}
	if e.IsEmpty() {
		return nil
	}
	return e
}

func (g styleGen) font() *Font {
	f := &Font{
		Name:      g.text(12),
		Size:      g.floatPtr(),
		Family:    g.intPtr(),
		Scheme:    g.text(5),
		Charset:   g.intPtr(),
		Color:     g.color(),
		Bold:      g.boolPtr(),
		Italic:    g.boolPtr(),
		VertAlign: g.text(6),
		Strike:    g.boolPtr(),
		Outline:   g.boolPtr(),
	}
	switch g.r.IntN(4) {
	case 1:
		f.Underline = UnderlineFlag(g.r.IntN(2) == 0)
	case 2, 3:
		names := []string{"single", "double", "singleAccounting", "doubleAccounting"}
		f.Underline = UnderlineStyle(names[g.r.IntN(len(names))])
	}
	return f
}

func (g styleGen) border() *Border {
	b := &Border{Top: g.edge(), Left: g.edge(), Bottom: g.edge(), Right: g.edge()}
	d := &Diagonal{Up: g.boolPtr(), Down: g.boolPtr()}
	if e := g.edge(); e != nil {
		d.Edge = *e
	}
	if !d.Edge.IsEmpty() || d.Up != nil || d.Down != nil {
		b.Diagonal = d
	}
	return b
}

func (g styleGen) alignment() *Alignment {
	a := &Alignment{
		Horizontal:   g.text(8),
		Vertical:     g.text(8),
		WrapText:     g.boolPtr(),
		ShrinkToFit:  g.boolPtr(),
		Indent:       g.floatPtr(),
		ReadingOrder: g.text(3),
	}
	switch g.r.IntN(3) {
	case 1:
		a.TextRotation = VerticalText()
	case 2:
		a.TextRotation = Rotate(g.float())
	}
	return a
}

func (g styleGen) stops() []Stop {
	n := g.r.IntN(4)
	if n == 0 {
		return nil
	}
	stops := make([]Stop, n)
	for i := range stops {
		stops[i] = Stop{Position: g.float(), Color: g.color()}
	}
	return stops
}

func (g styleGen) fill() Fill {
	switch g.r.IntN(4) {
	case 1:
		return &PatternFill{Pattern: g.text(8), FgColor: g.color(), BgColor: g.color()}
	case 2:
		return &GradientAngleFill{Degree: g.float(), Stops: g.stops()}
	case 3:
		return &GradientPathFill{Center: Center{Left: g.float(), Top: g.float()}, Stops: g.stops()}
	default:
		return nil
	}
}

func (g styleGen) style() Style {
	var s Style
	if g.r.IntN(2) == 0 {
		s.Font = g.font()
	}
	if g.r.IntN(2) == 0 {
		s.Border = g.border()
	}
	if g.r.IntN(2) == 0 {
		s.Alignment = g.alignment()
	}
	s.Fill = g.fill()
	if g.r.IntN(2) == 0 {
		s.Protection = &Protection{Locked: g.boolPtr(), Hidden: g.boolPtr()}
	}
	if g.r.IntN(2) == 0 {
		s.NumFmt = g.text(10)
	}
	return s
}

func TestCodec_GeneratedStylesRoundTrip(t *testing.T) {
	g := styleGen{r: rand.New(rand.NewPCG(1, 2))}
	for i := 0; i < 5000; i++ {
		s := g.style()
		key := Encode(s)

		got, err := DecodeStrict(key)
		require.NoError(t, err, "key %q", key)
		if diff := cmp.Diff(s, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("case %d: Decode(%q) mismatch (-want +got):\n%s", i, key, diff)
		}
		require.Equal(t, key, Encode(got))

		for _, issue := range Validate(s) {
			require.NotEqual(t, SeverityError, issue.Severity, "case %d: %s", i, issue)
		}
	}
}

// FuzzDecode checks that any key decodes without panicking and that the
// re-encoded key is a fixed point.
func FuzzDecode(f *testing.F) {
	for _, seed := range []string{
		"",
		"f>Arial<12<<<<<1<<single<<<",
		"fi>p<solid:FFFF0000^:",
		"fi>ga<90:0~FFFF0000^!1~^4",
		"fi>gp<0.5;0.5:0~FFFFFFFF^!1~FF000000^",
		"b><<<<<1<0",
		"p>1<0",
		"n>0.00%",
		"a>center<<1<<<rtl<vertical",
		"zz>1|f>x<y|fi>q<",
		"b>thin:AA:B^1<<<<<x<y",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, key string) {
		canonical := Encode(Decode(key))
		if again := Encode(Decode(canonical)); again != canonical {
			t.Fatalf("Encode(Decode(%q)) = %q, want %q", canonical, again, canonical)
		}
	})
}
