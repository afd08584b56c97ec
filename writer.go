package xlstyle

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Column describes one worksheet column.
type Column struct {
	Header string
	Key    string  // record key the column reads
	Width  float64 // 0 uses the writer default, if any
	Style  Style   // style of the column's cells
}

// Writer streams rows into an xlsx workbook, deduplicating cell styles
// through a StyleCache.
type Writer struct {
	opts   *Options
	file   *excelize.File
	cache  *StyleCache
	rules  *ruleEvaluator
	sheets []*SheetWriter
	done   bool
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts ...Option) *Writer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	f := excelize.NewFile()
	return &Writer{
		opts:  o,
		file:  f,
		cache: NewStyleCache(f, o.cacheMode),
		rules: newRuleEvaluator(o.rules),
	}
}

// SheetWriter streams rows into one worksheet. Rows must be added in order;
// nothing can be added after Commit.
type SheetWriter struct {
	w         *Writer
	name      string
	cols      []Column
	stream    *excelize.StreamWriter
	next      int // next 1-based row number
	committed bool
}

// AddSheet creates a worksheet, sets its column widths and writes the
// header row when any column has a header.
func (w *Writer) AddSheet(name string, cols []Column) (*SheetWriter, error) {
	if w.done {
		return nil, errors.New("workbook already written")
	}
	if len(cols) == 0 {
		return nil, errors.Newf("sheet %q has no columns", name)
	}
	for i, r := range w.opts.rules {
		if _, err := w.rules.compile(r.Condition); err != nil {
			return nil, errors.Wrapf(err, "rule %d", i)
		}
	}
	for _, sw := range w.sheets {
		if strings.EqualFold(sw.name, name) {
			return nil, errors.Newf("sheet %q already added", name)
		}
	}
	for _, col := range cols {
		if _, err := EncodeStrict(col.Style); err != nil {
			return nil, errors.Wrapf(err, "style of column %q", col.Key)
		}
	}
	switch {
	case name == defaultSheet:
	case strings.EqualFold(name, defaultSheet):
		// excelize names are case-insensitive; reuse the placeholder sheet.
		if err := w.file.SetSheetName(defaultSheet, name); err != nil {
			return nil, errors.Wrapf(err, "rename sheet %q", defaultSheet)
		}
	default:
		if _, err := w.file.NewSheet(name); err != nil {
			return nil, errors.Wrapf(err, "create sheet %q", name)
		}
	}
	stream, err := w.file.NewStreamWriter(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open stream for sheet %q", name)
	}

	sw := &SheetWriter{w: w, name: name, cols: append([]Column(nil), cols...), stream: stream, next: 1}
	for i, col := range cols {
		width := col.Width
		if width == 0 {
			width = w.opts.defaultColumnWidth
		}
		if width > 0 {
			if err := stream.SetColWidth(i+1, i+1, width); err != nil {
				return nil, errors.Wrapf(err, "set width of column %d in sheet %q", i+1, name)
			}
		}
	}
	if err := sw.writeHeader(); err != nil {
		return nil, err
	}
	w.sheets = append(w.sheets, sw)
	w.opts.logger.Debug("sheet added", "sheet", name, "columns", len(cols))
	return sw, nil
}

func (sw *SheetWriter) writeHeader() error {
	hasHeader := false
	values := make([]any, len(sw.cols))
	for i, col := range sw.cols {
		if col.Header != "" {
			hasHeader = true
		}
		values[i] = col.Header
		if sw.w.opts.useStyles {
			id, err := sw.w.cache.StyleOf(&sw.cols[i].Style)
			if err != nil {
				return errors.Wrapf(err, "style header of column %q", col.Key)
			}
			values[i] = excelize.Cell{StyleID: id, Value: col.Header}
		}
	}
	if !hasHeader {
		return nil
	}
	return sw.setRow(values)
}

// Name returns the worksheet name.
func (sw *SheetWriter) Name() string { return sw.name }

// Rows returns the number of rows written, header included.
func (sw *SheetWriter) Rows() int { return sw.next - 1 }

// AddRow appends one row. Each cell takes cellStyle when it is non-nil and
// the column style otherwise; matching style rules are merged on top.
func (sw *SheetWriter) AddRow(record map[string]any, cellStyle *Style) error {
	if sw.committed {
		return errors.Newf("sheet %q already committed", sw.name)
	}
	values := make([]any, len(sw.cols))
	for i, col := range sw.cols {
		v := record[col.Key]
		if !sw.w.opts.useStyles {
			values[i] = v
			continue
		}
		style := &sw.cols[i].Style
		if cellStyle != nil {
			style = cellStyle
		}
		style, err := sw.w.rules.applyTo(style, v, col.Key, sw.next, record)
		if err != nil {
			return errors.Wrapf(err, "sheet %q row %d column %q", sw.name, sw.next, col.Key)
		}
		id, err := sw.w.cache.StyleOf(style)
		if err != nil {
			return errors.Wrapf(err, "sheet %q row %d column %q", sw.name, sw.next, col.Key)
		}
		values[i] = excelize.Cell{StyleID: id, Value: v}
	}
	return sw.setRow(values)
}

func (sw *SheetWriter) setRow(values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, sw.next)
	if err != nil {
		return err
	}
	if err := sw.stream.SetRow(cell, values); err != nil {
		return errors.Wrapf(err, "write row %d to sheet %q", sw.next, sw.name)
	}
	sw.next++
	return nil
}

// Commit flushes the sheet. It is safe to call more than once.
func (sw *SheetWriter) Commit() error {
	if sw.committed {
		return nil
	}
	if err := sw.stream.Flush(); err != nil {
		return errors.Wrapf(err, "flush sheet %q", sw.name)
	}
	sw.committed = true
	sw.w.opts.logger.Debug("sheet committed", "sheet", sw.name, "rows", sw.Rows(), "styles", sw.w.cache.Len())
	return nil
}

// CacheStats returns the style cache counters.
func (w *Writer) CacheStats() CacheStats { return w.cache.Stats() }

// Cache returns the writer's style cache.
func (w *Writer) Cache() *StyleCache { return w.cache }

// File returns the underlying excelize file for advanced operations.
func (w *Writer) File() *excelize.File { return w.file }

// finish commits every sheet and drops the placeholder sheet excelize
// creates when it was never used.
func (w *Writer) finish() error {
	if w.done {
		return nil
	}
	usedDefault := false
	for _, sw := range w.sheets {
		if err := sw.Commit(); err != nil {
			return err
		}
		if strings.EqualFold(sw.name, defaultSheet) {
			usedDefault = true
		}
	}
	if !usedDefault && len(w.sheets) > 0 {
		if err := w.file.DeleteSheet(defaultSheet); err != nil {
			return errors.Wrap(err, "remove placeholder sheet")
		}
		w.file.SetActiveSheet(0)
	}
	if w.opts.preWrite != nil {
		if err := w.opts.preWrite(w.file); err != nil {
			return errors.Wrap(err, "pre-write callback")
		}
	}
	w.done = true
	return nil
}

// Write commits all sheets and writes the workbook to out.
func (w *Writer) Write(out io.Writer) error {
	if err := w.finish(); err != nil {
		return err
	}
	if err := w.file.Write(out); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

// Bytes commits all sheets and returns the workbook as bytes.
func (w *Writer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAs commits all sheets and writes the workbook to path.
func (w *Writer) SaveAs(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create output file %q", path)
	}
	err = w.Write(out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "close output file %q", path)
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// Close releases the underlying excelize file.
func (w *Writer) Close() error {
	return w.file.Close()
}
