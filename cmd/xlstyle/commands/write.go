package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/javajack/xlstyle/internal/config"
	"github.com/javajack/xlstyle/internal/job"
)

// NewWriteCommand returns a cli.Command for "xlstyle write".
func NewWriteCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Write a workbook described by a YAML job",
		UsageText: `xlstyle write -c job.yaml [-o out.xlsx]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path of the YAML job file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output path. Overrides the job's output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if out := cmd.String("out"); out != "" {
				cfg.Output = out
			}

			f, err := os.Create(cfg.Output)
			if err != nil {
				return errors.Wrapf(err, "create output file %q", cfg.Output)
			}
			_, err = job.Run(ctx, cfg, f, logger)
			if cerr := f.Close(); err == nil && cerr != nil {
				err = errors.Wrapf(cerr, "close output file %q", cfg.Output)
			}
			if err != nil {
				os.Remove(cfg.Output)
				return err
			}
			return nil
		},
	}
}
