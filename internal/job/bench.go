package job

import (
	"github.com/javajack/xlstyle/internal/config"
)

// NoStyles is the bench mode that writes cells without any style.
const NoStyles = "NO_STYLES"

// BenchModes lists the modes the bench command compares, baseline first.
var BenchModes = []string{NoStyles, "WEAK_MAP", "JSON_MAP", "FAST_MAP", "NO_CACHE"}

// BenchConfig returns the benchmark workload: one sheet of identical
// records whose every cell carries the same bordered font style, so a
// working cache ends up with a handful of registered styles.
func BenchConfig(rows int, mode string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Output = "benchmark-styles-" + mode + ".xlsx"
	if mode == NoStyles {
		cfg.UseStyles = false
	} else {
		cfg.CacheMode = mode
	}

	thin := func() *config.EdgeSpec { return &config.EdgeSpec{Style: "thin"} }
	size := 10.0
	dateFmt := &config.StyleSpec{NumFmt: "yyyy-mm-dd"}

	cfg.Sheets = []config.SheetConfig{{
		Name: "Sheet1",
		Columns: []config.ColumnConfig{
			{Header: "ID", Key: "id", Width: 22},
			{Header: "My String 1", Key: "myString1", Width: 22},
			{Header: "My Numeric String", Key: "myNumericString", Width: 22},
			{Header: "My String 2", Key: "myString2", Width: 22},
			{Header: "Amount", Key: "amount", Width: 15, Style: &config.StyleSpec{NumFmt: "0.0"}},
			{Header: "My Date 1", Key: "myDate1", Width: 15, Style: dateFmt},
			{Header: "My Date 2", Key: "myDate2", Width: 15, Style: dateFmt},
		},
		CellStyle: &config.StyleSpec{
			Border: &config.BorderSpec{Top: thin(), Left: thin(), Bottom: thin(), Right: thin()},
			Font:   &config.FontSpec{Name: "Times New Roman", Size: &size},
		},
		Rows: []map[string]any{{
			"id":              "12313",
			"myString1":       "asdasdas",
			"myString2":       "asdasdasasdasdasdasdasdadsad",
			"myNumericString": "234234",
			"amount":          3425.34,
			"myDate1":         "2004-01-01",
			"myDate2":         "2005-01-01",
		}},
		Repeat: rows,
	}}
	return cfg
}
