package xlstyle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestToExcelize_Font(t *testing.T) {
	xs := ToExcelize(Style{Font: &Font{
		Name:      "Arial",
		Size:      Float(12),
		Charset:   Int(1),
		Color:     &Color{ARGB: "FFFF0000", Theme: Int(2)},
		Bold:      Bool(true),
		Italic:    Bool(false),
		Underline: UnderlineFlag(true),
		VertAlign: "subscript",
	}})
	require.NotNil(t, xs.Font)
	assert.Equal(t, "Arial", xs.Font.Family)
	assert.Equal(t, 12.0, xs.Font.Size)
	assert.Equal(t, "FF0000", xs.Font.Color)
	assert.Equal(t, 2, *xs.Font.ColorTheme)
	assert.Equal(t, 1, *xs.Font.Charset)
	assert.True(t, xs.Font.Bold)
	assert.False(t, xs.Font.Italic)
	assert.Equal(t, "single", xs.Font.Underline)
	assert.Equal(t, "subscript", xs.Font.VertAlign)
}

func TestToExcelize_Border(t *testing.T) {
	xs := ToExcelize(Style{Border: &Border{
		Top:      &Edge{Style: "thin"},
		Right:    &Edge{Style: "mediumDashDot", Color: ARGB("FF00FF00")},
		Bottom:   &Edge{Style: "unknown"},
		Diagonal: &Diagonal{Edge: Edge{Style: "double"}, Up: Bool(true), Down: Bool(true)},
	}})
	assert.Equal(t, []excelize.Border{
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
		{Type: "right", Color: "00FF00", Style: 10},
		{Type: "diagonalUp", Style: 6},
		{Type: "diagonalDown", Style: 6},
	}, xs.Border)
}

func TestToExcelize_Alignment(t *testing.T) {
	tests := []struct {
		name     string
		rotation *TextRotation
		want     int
	}{
		{"positive", Rotate(45), 45},
		{"negative", Rotate(-30), 120},
		{"vertical", VerticalText(), 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := ToExcelize(Style{Alignment: &Alignment{
				Horizontal:   "right",
				Indent:       Float(3),
				ReadingOrder: "rtl",
				TextRotation: tt.rotation,
			}})
			require.NotNil(t, xs.Alignment)
			assert.Equal(t, tt.want, xs.Alignment.TextRotation)
			assert.Equal(t, "right", xs.Alignment.Horizontal)
			assert.Equal(t, 3, xs.Alignment.Indent)
			assert.Equal(t, uint64(2), xs.Alignment.ReadingOrder)
		})
	}
}

func TestToExcelize_Fills(t *testing.T) {
	xs := ToExcelize(Style{Fill: &PatternFill{Pattern: "solid", FgColor: ARGB("FFFFFF00")}})
	assert.Equal(t, excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}}, xs.Fill)

	xs = ToExcelize(Style{Fill: &PatternFill{Pattern: "none"}})
	assert.Equal(t, excelize.Fill{}, xs.Fill)

	xs = ToExcelize(Style{Fill: &GradientAngleFill{Degree: 90, Stops: []Stop{
		{Position: 0, Color: ARGB("FFFF0000")},
		{Position: 0.5, Color: ARGB("FF00FF00")},
		{Position: 1, Color: ARGB("FF0000FF")},
	}}})
	assert.Equal(t, excelize.Fill{Type: "gradient", Color: []string{"FF0000", "0000FF"}, Shading: shadingHorizontal}, xs.Fill)

	xs = ToExcelize(Style{Fill: &GradientPathFill{Center: Center{Left: 0.5, Top: 0.5}}})
	assert.Equal(t, excelize.Fill{Type: "gradient", Color: []string{"FFFFFF", "FFFFFF"}, Shading: shadingFromCenter}, xs.Fill)
}

func TestToExcelize_ProtectionAndNumFmt(t *testing.T) {
	xs := ToExcelize(Style{Protection: &Protection{Locked: Bool(true)}, NumFmt: "0.000"})
	assert.Equal(t, &excelize.Protection{Locked: true}, xs.Protection)
	require.NotNil(t, xs.CustomNumFmt)
	assert.Equal(t, "0.000", *xs.CustomNumFmt)
}

func TestAngleShading(t *testing.T) {
	assert.Equal(t, shadingVertical, angleShading(0))
	assert.Equal(t, shadingVertical, angleShading(180))
	assert.Equal(t, shadingDiagonalUp, angleShading(45))
	assert.Equal(t, shadingHorizontal, angleShading(90))
	assert.Equal(t, shadingHorizontal, angleShading(-90))
	assert.Equal(t, shadingDiagonalDown, angleShading(135))
}

func TestExcelize_RegisterAndReadBack(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	s := Style{
		Font:       &Font{Name: "Times New Roman", Size: Float(10), Bold: Bool(true), Color: ARGB("FF1F4E79")},
		Border:     &Border{Top: &Edge{Style: "thin"}, Bottom: &Edge{Style: "double"}},
		Alignment:  &Alignment{Horizontal: "center", WrapText: Bool(true), TextRotation: Rotate(30)},
		Fill:       &PatternFill{Pattern: "solid", FgColor: ARGB("FFFFFF00")},
		Protection: &Protection{Locked: Bool(true), Hidden: Bool(false)},
		NumFmt:     `0.000 "kg"`,
	}
	id, err := f.NewStyle(ToExcelize(s))
	require.NoError(t, err)

	xs, err := f.GetStyle(id)
	require.NoError(t, err)
	got := FromExcelize(xs)

	require.NotNil(t, got.Font)
	assert.Equal(t, "Times New Roman", got.Font.Name)
	assert.Equal(t, 10.0, *got.Font.Size)
	assert.True(t, *got.Font.Bold)
	assert.Equal(t, "FF1F4E79", got.Font.Color.ARGB)

	require.NotNil(t, got.Border)
	assert.Equal(t, "thin", got.Border.Top.Style)
	assert.Equal(t, "double", got.Border.Bottom.Style)
	assert.Nil(t, got.Border.Left)

	require.NotNil(t, got.Alignment)
	assert.Equal(t, "center", got.Alignment.Horizontal)
	assert.True(t, *got.Alignment.WrapText)
	assert.Equal(t, Rotate(30), got.Alignment.TextRotation)

	fill, ok := got.Fill.(*PatternFill)
	require.True(t, ok)
	assert.Equal(t, "solid", fill.Pattern)
	assert.Equal(t, "FFFFFF00", fill.FgColor.ARGB)

	assert.Equal(t, `0.000 "kg"`, got.NumFmt)
}

func TestFromExcelize_Nil(t *testing.T) {
	assert.True(t, FromExcelize(nil).IsEmpty())
}

func TestFromExcelize_Rotation(t *testing.T) {
	got := FromExcelize(&excelize.Style{Alignment: &excelize.Alignment{TextRotation: 120}})
	assert.Equal(t, Rotate(-30), got.Alignment.TextRotation)

	got = FromExcelize(&excelize.Style{Alignment: &excelize.Alignment{TextRotation: 255}})
	assert.Equal(t, VerticalText(), got.Alignment.TextRotation)
}

func TestFromExcelize_Diagonal(t *testing.T) {
	got := FromExcelize(&excelize.Style{Border: []excelize.Border{
		{Type: "diagonalDown", Style: 2, Color: "FF0000"},
	}})
	require.NotNil(t, got.Border.Diagonal)
	assert.Equal(t, "medium", got.Border.Diagonal.Style)
	assert.Equal(t, "FFFF0000", got.Border.Diagonal.Color.ARGB)
	assert.Nil(t, got.Border.Diagonal.Up)
	assert.True(t, *got.Border.Diagonal.Down)
}
