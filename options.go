package xlstyle

import (
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// Options holds configuration for the Writer.
type Options struct {
	cacheMode          CacheMode
	useStyles          bool
	rules              []StyleRule
	defaultColumnWidth float64
	logger             *slog.Logger
	preWrite           func(*excelize.File) error
}

func defaultOptions() *Options {
	return &Options{
		cacheMode: CacheFast,
		useStyles: true,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// Option configures the Writer.
type Option func(*Options)

// WithCacheMode selects how cell styles are deduplicated (default: CacheFast).
func WithCacheMode(mode CacheMode) Option {
	return func(o *Options) { o.cacheMode = mode }
}

// WithUseStyles controls whether cell styles are written at all (default: true).
func WithUseStyles(use bool) Option {
	return func(o *Options) { o.useStyles = use }
}

// WithStyleRule adds a conditional style overlay. Rules apply in the order added.
func WithStyleRule(condition string, style Style) Option {
	return func(o *Options) {
		o.rules = append(o.rules, StyleRule{Condition: condition, Style: style})
	}
}

// WithDefaultColumnWidth sets the width of columns that do not declare one.
func WithDefaultColumnWidth(width float64) Option {
	return func(o *Options) { o.defaultColumnWidth = width }
}

// WithLogger sets the logger used for progress messages (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPreWrite sets a callback executed on the workbook before it is written.
func WithPreWrite(fn func(*excelize.File) error) Option {
	return func(o *Options) { o.preWrite = fn }
}
