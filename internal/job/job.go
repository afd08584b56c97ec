// Package job runs workbook jobs described by internal/config through the
// streaming writer.
package job

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/javajack/xlstyle"
	"github.com/javajack/xlstyle/internal/config"
)

// Result summarises one run.
type Result struct {
	Mode     string             `json:"mode"`
	Rows     int                `json:"rows"`
	Styles   int                `json:"styles"`
	Cache    xlstyle.CacheStats `json:"cache"`
	Duration time.Duration      `json:"duration"`
}

// Run writes the workbook cfg describes to out. The context is checked
// between rows.
func Run(ctx context.Context, cfg config.Config, out io.Writer, logger *slog.Logger) (Result, error) {
	res := Result{Mode: cfg.CacheMode}
	if !cfg.UseStyles {
		res.Mode = "NO_STYLES"
	}
	start := time.Now()

	opts, err := cfg.Options()
	if err != nil {
		return res, err
	}
	opts = append(opts, xlstyle.WithLogger(logger))

	w := xlstyle.NewWriter(opts...)
	defer w.Close()

	for i := range cfg.Sheets {
		sheet := &cfg.Sheets[i]
		n, err := writeSheet(ctx, w, sheet)
		res.Rows += n
		if err != nil {
			return res, err
		}
	}

	if err := w.Write(out); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	res.Cache = w.CacheStats()
	res.Styles = w.Cache().Len()
	logger.Info("workbook written", "mode", res.Mode, "rows", res.Rows, "styles", res.Styles, "duration", res.Duration)
	return res, nil
}

func writeSheet(ctx context.Context, w *xlstyle.Writer, sheet *config.SheetConfig) (int, error) {
	cols, err := sheet.WriterColumns()
	if err != nil {
		return 0, errors.Wrapf(err, "sheet %q", sheet.Name)
	}
	var cellStyle *xlstyle.Style
	if sheet.CellStyle != nil {
		s, err := sheet.CellStyle.Style()
		if err != nil {
			return 0, errors.Wrapf(err, "sheet %q cell_style", sheet.Name)
		}
		cellStyle = &s
	}

	sw, err := w.AddSheet(sheet.Name, cols)
	if err != nil {
		return 0, err
	}

	repeat := max(sheet.Repeat, 1)
	written := 0
	for i := 0; i < repeat; i++ {
		for _, record := range sheet.Rows {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			if err := sw.AddRow(record, cellStyle); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, sw.Commit()
}
