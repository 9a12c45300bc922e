package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"augmentor/internal/observability"
	"augmentor/internal/resources"
	"augmentor/internal/statistics"
)

func newStatsCmd(a *app) *cobra.Command {
	var correct, broken, out string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Build orfo tables from a correct and an erroneous corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := resources.ParseLanguage(a.cfg.Augment.Language)
			if err != nil {
				return err
			}
			platform, err := resources.ParsePlatform(a.cfg.Augment.Platform)
			if err != nil {
				return err
			}
			src, cleanup := a.source()
			defer cleanup()
			bundle, err := resources.Load(src, lang, platform)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()
			b, err := statistics.NewBuilder(correct, broken, lang,
				statistics.WithLogger(logger), statistics.WithVocab(bundle.Vocab))
			if err != nil {
				return err
			}
			written, err := b.Compute().WriteDir(out, lang, platform)
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			logger.Info("statistics written", zap.String("dir", out), zap.Int("pairs", len(b.Pairs())))
			return nil
		},
	}
	cmd.Flags().StringVar(&correct, "correct", "", "corpus of correct lines (.txt)")
	cmd.Flags().StringVar(&broken, "error", "", "corpus of the same lines with errors (.txt)")
	cmd.Flags().StringVarP(&out, "out", "o", "tables", "output resource directory")
	_ = cmd.MarkFlagRequired("correct")
	_ = cmd.MarkFlagRequired("error")
	return cmd
}

func newPublishCmd(a *app) *cobra.Command {
	var dir string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Push every table of a resource directory to the Redis table store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			store, client := a.redisStore()
			defer client.Close()

			count := 0
			err := fs.WalkDir(os.DirFS(dir), ".", func(name string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() || filepath.Ext(name) != ".json" {
					return err
				}
				data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
				if err != nil {
					return err
				}
				if err := store.Put(ctx, name, data); err != nil {
					return fmt.Errorf("publish %s: %w", name, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				count++
				return nil
			})
			if err != nil {
				return err
			}
			observability.GetLogger().Info("tables published", zap.String("dir", dir), zap.Int("count", count))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "tables", "resource directory to publish")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall publish timeout")
	return cmd
}
