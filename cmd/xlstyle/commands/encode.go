package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/javajack/xlstyle"
	"github.com/javajack/xlstyle/internal/config"
)

// NewEncodeCommand returns a cli.Command for "xlstyle encode".
func NewEncodeCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Print the cache key of a YAML style",
		UsageText: `xlstyle encode [-f style.yaml]`,
		Description: `The encode command reads a style document (from a file or standard input) and prints its key.

$ echo 'font: {name: Arial, size: 12, bold: true, underline: single}' | xlstyle encode
f>Arial<12<<<<<1<<single<<<

Values that contain a key delimiter are rejected. Parts of the style that
cannot be applied to a workbook are reported as warnings on stderr.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path of the YAML style document. Reads standard input when empty",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var (
				data []byte
				err  error
			)
			if path := cmd.String("file"); path != "" {
				data, err = os.ReadFile(filepath.Clean(path))
			} else {
				data, err = io.ReadAll(input(cmd))
			}
			if err != nil {
				return errors.Wrap(err, "read style")
			}

			spec, err := config.ParseStyle(data)
			if err != nil {
				return err
			}
			style, err := spec.Style()
			if err != nil {
				return err
			}
			for _, issue := range xlstyle.Validate(style) {
				if issue.Severity == xlstyle.SeverityWarning {
					logger.Warn("style not fully representable", "field", issue.Field, "reason", issue.Message)
				}
			}

			key, err := xlstyle.EncodeStrict(style)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(output(cmd), key)
			return err
		},
	}
}
