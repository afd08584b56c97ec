package xlstyle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cellStyle(t *testing.T, f *excelize.File, sheet, cell string) int {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	return id
}

var testColumns = []Column{
	{Header: "ID", Key: "id", Width: 10},
	{Header: "Name", Key: "name"},
	{Header: "Amount", Key: "amount", Width: 15, Style: Style{NumFmt: "0.00"}},
}

func TestWriter_WritesRowsAndDeduplicatesStyles(t *testing.T) {
	w := NewWriter(WithDefaultColumnWidth(20))
	defer w.Close()

	sw, err := w.AddSheet("Data", testColumns)
	require.NoError(t, err)
	assert.Equal(t, "Data", sw.Name())

	for i := 0; i < 50; i++ {
		require.NoError(t, sw.AddRow(map[string]any{"id": i, "name": "row", "amount": 1.5}, nil))
	}
	assert.Equal(t, 51, sw.Rows())

	data, err := w.Bytes()
	require.NoError(t, err)
	f := openWorkbook(t, data)

	assert.Equal(t, []string{"Data"}, f.GetSheetList())
	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 51)
	assert.Equal(t, []string{"ID", "Name", "Amount"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "1.50", rows[1][2])

	amountStyle := cellStyle(t, f, "Data", "C2")
	assert.NotZero(t, amountStyle)
	assert.Equal(t, amountStyle, cellStyle(t, f, "Data", "C51"))
	assert.Zero(t, cellStyle(t, f, "Data", "A2"))

	width, err := f.GetColWidth("Data", "B")
	require.NoError(t, err)
	assert.Equal(t, 20.0, width)

	stats := w.CacheStats()
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Registered)
	assert.Equal(t, 50, stats.Hits)
	assert.Equal(t, 1, w.Cache().Len())
}

func TestWriter_CellStyleReplacesColumnStyle(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	sw, err := w.AddSheet("Sheet1", testColumns)
	require.NoError(t, err)
	cell := Style{Font: &Font{Name: "Times New Roman", Size: Float(10)}}
	require.NoError(t, sw.AddRow(map[string]any{"id": 1, "name": "a", "amount": 2}, &cell))
	require.NoError(t, sw.AddRow(map[string]any{"id": 2, "name": "b", "amount": 3}, nil))

	data, err := w.Bytes()
	require.NoError(t, err)
	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())

	replaced := cellStyle(t, f, "Sheet1", "C2")
	assert.Equal(t, replaced, cellStyle(t, f, "Sheet1", "A2"))
	assert.NotEqual(t, replaced, cellStyle(t, f, "Sheet1", "C3"))

	xs, err := f.GetStyle(replaced)
	require.NoError(t, err)
	assert.Equal(t, "Times New Roman", xs.Font.Family)
	assert.Nil(t, xs.CustomNumFmt)
}

func TestWriter_StyleRules(t *testing.T) {
	highlight := Style{Fill: &PatternFill{Pattern: "solid", FgColor: ARGB("FFFFC7CE")}}
	w := NewWriter(WithStyleRule(`column == "amount" && value > 100`, highlight))
	defer w.Close()

	sw, err := w.AddSheet("Data", testColumns)
	require.NoError(t, err)
	require.NoError(t, sw.AddRow(map[string]any{"id": 1, "amount": 50}, nil))
	require.NoError(t, sw.AddRow(map[string]any{"id": 2, "amount": 500}, nil))

	data, err := w.Bytes()
	require.NoError(t, err)
	f := openWorkbook(t, data)

	xs, err := f.GetStyle(cellStyle(t, f, "Data", "C3"))
	require.NoError(t, err)
	assert.Equal(t, 1, xs.Fill.Pattern)
	require.NotNil(t, xs.CustomNumFmt)
	assert.Equal(t, "0.00", *xs.CustomNumFmt)

	xs, err = f.GetStyle(cellStyle(t, f, "Data", "C2"))
	require.NoError(t, err)
	assert.Zero(t, xs.Fill.Pattern)
}

func TestWriter_InvalidRule(t *testing.T) {
	w := NewWriter(WithStyleRule("value >", Style{NumFmt: "0"}))
	defer w.Close()
	_, err := w.AddSheet("Data", testColumns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 0")
}

func TestWriter_WithoutStyles(t *testing.T) {
	w := NewWriter(WithUseStyles(false))
	defer w.Close()

	sw, err := w.AddSheet("Data", testColumns)
	require.NoError(t, err)
	require.NoError(t, sw.AddRow(map[string]any{"id": 1, "name": "a", "amount": 2.5}, &Style{NumFmt: "0.0"}))

	data, err := w.Bytes()
	require.NoError(t, err)
	f := openWorkbook(t, data)
	assert.Zero(t, cellStyle(t, f, "Data", "C2"))
	assert.Equal(t, CacheStats{}, w.CacheStats())
}

func TestWriter_MultipleSheets(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	a, err := w.AddSheet("A", testColumns)
	require.NoError(t, err)
	b, err := w.AddSheet("B", []Column{{Key: "x"}})
	require.NoError(t, err)

	require.NoError(t, a.AddRow(map[string]any{"id": 1}, nil))
	require.NoError(t, a.Commit())
	require.NoError(t, a.Commit())
	require.Error(t, a.AddRow(map[string]any{"id": 2}, nil))

	require.NoError(t, b.AddRow(map[string]any{"x": "no header"}, nil))
	assert.Equal(t, 1, b.Rows())

	data, err := w.Bytes()
	require.NoError(t, err)
	f := openWorkbook(t, data)
	assert.Equal(t, []string{"A", "B"}, f.GetSheetList())

	rows, err := f.GetRows("B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"no header"}}, rows)
}

func TestWriter_AddSheetErrors(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	_, err := w.AddSheet("Empty", nil)
	require.Error(t, err)

	_, err = w.AddSheet("Data", testColumns)
	require.NoError(t, err)
	_, err = w.AddSheet("Data", testColumns)
	require.Error(t, err)

	_, err = w.AddSheet("Bad", []Column{{Key: "a", Style: Style{NumFmt: "a|b"}}})
	require.ErrorIs(t, err, ErrReservedDelimiter)

	_, err = w.Bytes()
	require.NoError(t, err)
	_, err = w.AddSheet("Late", testColumns)
	require.Error(t, err)
}

func TestWriter_SheetNamesIgnoreCase(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	a, err := w.AddSheet("A", testColumns)
	require.NoError(t, err)
	upper, err := w.AddSheet("SHEET1", testColumns)
	require.NoError(t, err)
	require.NoError(t, a.AddRow(map[string]any{"id": 1}, nil))
	require.NoError(t, upper.AddRow(map[string]any{"id": 2}, nil))

	_, err = w.AddSheet("a", testColumns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already added")

	data, err := w.Bytes()
	require.NoError(t, err)
	f := openWorkbook(t, data)
	assert.ElementsMatch(t, []string{"A", "SHEET1"}, f.GetSheetList())

	rows, err := f.GetRows("SHEET1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[1][0])
}

func TestWriter_WeakCacheKeysByPointer(t *testing.T) {
	w := NewWriter(WithCacheMode(CacheWeak))
	defer w.Close()

	sw, err := w.AddSheet("Data", testColumns)
	require.NoError(t, err)
	cell := Style{Font: &Font{Name: "Times New Roman", Size: Float(10)}}
	for i := 0; i < 10; i++ {
		require.NoError(t, sw.AddRow(map[string]any{"id": i}, &cell))
	}

	// one header style, then one miss for the shared cell style
	assert.Equal(t, CacheStats{Hits: 29, Misses: 2, Registered: 2}, w.CacheStats())

	data, err := w.Bytes()
	require.NoError(t, err)
	f := openWorkbook(t, data)
	assert.Equal(t, cellStyle(t, f, "Data", "A2"), cellStyle(t, f, "Data", "C11"))
}

func TestWriter_SaveAsRemovesFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewWriter(WithPreWrite(func(*excelize.File) error { return os.ErrPermission }))
	defer w.Close()

	_, err := w.AddSheet("Data", testColumns)
	require.NoError(t, err)
	err = w.SaveAs(path)
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_SaveAs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	var hookCalled bool
	w := NewWriter(WithPreWrite(func(f *excelize.File) error {
		hookCalled = true
		return f.SetDocProps(&excelize.DocProperties{Title: "styles"})
	}))
	defer w.Close()

	sw, err := w.AddSheet("Data", testColumns)
	require.NoError(t, err)
	require.NoError(t, sw.AddRow(map[string]any{"id": 1}, nil))
	require.NoError(t, w.SaveAs(path))
	assert.True(t, hookCalled)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "styles", props.Title)

	_, err = os.Stat(path)
	require.NoError(t, err)
}
