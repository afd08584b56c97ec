package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/javajack/xlstyle"
	"github.com/javajack/xlstyle/internal/config"
	"github.com/javajack/xlstyle/internal/job"
)

// NewBenchCommand returns a cli.Command for "xlstyle bench".
func NewBenchCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "bench",
		Usage:     "Time workbook writes under each style cache mode",
		UsageText: `xlstyle bench [-n rows] [-r runs] [--mode MODE]... [--parallel] [--dir DIR]`,
		Description: `The bench command writes the same styled workbook once per mode and run,
after one untimed warmup per mode, and prints one JSON object per run.

Modes are NO_STYLES, WEAK_MAP, JSON_MAP, FAST_MAP and NO_CACHE, in any case. Workbooks are discarded
unless --dir is set.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "rows",
				Aliases: []string{"n"},
				Value:   200000,
				Usage:   "Number of rows per workbook",
			},
			&cli.IntFlag{
				Name:    "runs",
				Aliases: []string{"r"},
				Value:   3,
				Usage:   "Number of timed runs per mode",
			},
			&cli.StringSliceFlag{
				Name:  "mode",
				Value: job.BenchModes,
				Usage: "Modes to run",
			},
			&cli.BoolFlag{
				Name:  "parallel",
				Usage: "Run the modes concurrently",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory the workbooks are written to",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			b := bencher{
				rows:   cmd.Int("rows"),
				runs:   cmd.Int("runs"),
				dir:    cmd.String("dir"),
				logger: logger,
				enc:    json.NewEncoder(output(cmd)),
			}
			if b.rows <= 0 || b.runs <= 0 {
				return errors.New("rows and runs must be positive")
			}
			modes, err := benchModes(cmd.StringSlice("mode"))
			if err != nil {
				return err
			}

			if !cmd.Bool("parallel") {
				for _, m := range modes {
					if err := b.mode(ctx, m); err != nil {
						return err
					}
				}
				return nil
			}

			g, ctx := errgroup.WithContext(ctx)
			for _, m := range modes {
				g.Go(func() error { return b.mode(ctx, m) })
			}
			return g.Wait()
		},
	}
}

// benchModes validates mode names and returns their canonical spelling.
func benchModes(names []string) ([]string, error) {
	modes := make([]string, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), job.NoStyles) {
			modes = append(modes, job.NoStyles)
			continue
		}
		mode, err := xlstyle.ParseCacheMode(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, mode.String())
	}
	return modes, nil
}

type benchLine struct {
	Mode     string             `json:"mode"`
	Run      int                `json:"run"`
	Rows     int                `json:"rows"`
	Styles   int                `json:"styles"`
	Duration string             `json:"duration"`
	Millis   int64              `json:"ms"`
	Cache    xlstyle.CacheStats `json:"cache"`
}

type bencher struct {
	rows, runs int
	dir        string
	logger     *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder
}

// mode runs one warmup and b.runs timed writes for mode.
func (b *bencher) mode(ctx context.Context, mode string) error {
	cfg := job.BenchConfig(b.rows, mode)
	for run := 0; run <= b.runs; run++ {
		res, err := b.once(ctx, cfg)
		if err != nil {
			return errors.Wrapf(err, "bench %s run %d", mode, run)
		}
		if run == 0 {
			b.logger.Debug("warmup done", "mode", mode, "duration", res.Duration)
			continue
		}
		if err := b.print(benchLine{
			Mode:     mode,
			Run:      run,
			Rows:     res.Rows,
			Styles:   res.Styles,
			Duration: res.Duration.Round(time.Millisecond).String(),
			Millis:   res.Duration.Milliseconds(),
			Cache:    res.Cache,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (b *bencher) once(ctx context.Context, cfg config.Config) (job.Result, error) {
	if b.dir == "" {
		return job.Run(ctx, cfg, io.Discard, b.logger)
	}
	path := filepath.Join(b.dir, cfg.Output)
	f, err := os.Create(path)
	if err != nil {
		return job.Result{}, errors.Wrapf(err, "create %q", path)
	}
	defer f.Close()
	return job.Run(ctx, cfg, f, b.logger)
}

func (b *bencher) print(line benchLine) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enc.Encode(line)
}
