package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"augmentor/internal/augmentor"
	"augmentor/internal/observability"
	"augmentor/pkg/options"
)

// newAugmenter builds the augmentor for level from the loaded configuration.
func (a *app) newAugmenter(level string) (augmentor.Augmenter, func(), error) {
	src, cleanup := a.source()
	opts := append(a.cfg.Augment.Options(),
		options.WithSource(src),
		options.WithLogger(observability.GetLogger()))
	aug, err := augmentor.New(augmentor.Level(level), opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return aug, cleanup, nil
}

func newAugmentCmd(a *app) *cobra.Command {
	var level, action string
	cmd := &cobra.Command{
		Use:   "augment [text...]",
		Short: "Augment each argument, or each stdin line when no argument is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			aug, cleanup, err := a.newAugmenter(level)
			if err != nil {
				return err
			}
			defer cleanup()

			texts := args
			if len(texts) == 0 {
				if texts, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, text := range texts {
				res, err := aug.AugmentNamed(text, action)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res)
			}
			observability.GetLogger().Debug("augmented",
				zap.String("level", level), zap.String("action", action), zap.Int("texts", len(texts)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", string(augmentor.LevelChar), "augmentor: char, word or punc")
	cmd.Flags().StringVarP(&action, "action", "a", "", "action name, random when empty")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var level, action, input string
	var rate float64
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Augment a share of the lines of a file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			aug, cleanup, err := a.newAugmenter(level)
			if err != nil {
				return err
			}
			defer cleanup()

			var r io.Reader = cmd.InOrStdin()
			if input != "" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			lines, err := readLines(r)
			if err != nil {
				return err
			}
			res, err := aug.AugmentBatchNamed(lines, rate, action)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range res {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", string(augmentor.LevelChar), "augmentor: char, word or punc")
	cmd.Flags().StringVarP(&action, "action", "a", "", "action name, random per line when empty")
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file, stdin when empty")
	cmd.Flags().Float64VarP(&rate, "rate", "r", 1.0, "share of lines to augment")
	return cmd
}

func newActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "actions [level]",
		Short:     "List the actions of one or every augmentor",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"char", "word", "punc"},
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := augmentor.Levels()
			if len(args) == 1 {
				levels = []augmentor.Level{augmentor.Level(args[0])}
			}
			for _, level := range levels {
				names, err := augmentor.ActionNames(level)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", level, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
