package commands

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/javajack/xlstyle"
	"github.com/javajack/xlstyle/internal/config"
)

// NewDecodeCommand returns a cli.Command for "xlstyle decode".
func NewDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Show the style a cache key holds",
		UsageText: `xlstyle decode [--strict] [--yaml] KEY`,
		Description: `The decode command prints the style held by a key as a tree.

$ xlstyle decode 'p>1<0'
Key: p>1<0
protection
  locked: true
  hidden: false

With --yaml the style is printed as a YAML document accepted by "xlstyle encode".
With --strict, keys that were not produced by the encoder are rejected.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on unknown tags and malformed fields",
			},
			&cli.BoolFlag{
				Name:  "yaml",
				Usage: "Print the style as YAML",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.Newf("expected exactly one KEY argument, got %d", cmd.Args().Len())
			}
			key := cmd.Args().First()

			style := xlstyle.Decode(key)
			if cmd.Bool("strict") {
				var err error
				if style, err = xlstyle.DecodeStrict(key); err != nil {
					return err
				}
			}

			if !cmd.Bool("yaml") {
				_, err := fmt.Fprint(output(cmd), xlstyle.Describe(key))
				return err
			}
			out, err := config.MarshalStyle(config.FromStyle(style))
			if err != nil {
				return err
			}
			_, err = output(cmd).Write(out)
			return err
		},
	}
}
