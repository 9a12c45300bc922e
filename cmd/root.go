package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"augmentor/internal/config"
	"augmentor/internal/observability"
	"augmentor/internal/resources"
	"augmentor/internal/tablestore"
)

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}
	var cfgFile string

	root := &cobra.Command{
		Use:           "augment",
		Short:         "Corrupt clean text with human-like errors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			observability.InitializeLogger(cfg.Logger)
			return nil
		},
	}
	config.SetDefaults(v)

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./augment.yaml)")
	flags.String("lang", "", "language: rus or eng")
	flags.String("platform", "", "platform: pc or mobile")
	flags.Float64("unit-prob", 0, "share of units to corrupt")
	flags.Int("min-aug", 0, "minimum number of corrupted units")
	flags.Int("max-aug", 0, "maximum number of corrupted units")
	flags.Int("mult-num", 0, "exclusive upper bound of repetitions")
	flags.Int64("seed", -1, "random seed, negative for a clock seed")
	flags.String("resources", "", "directory overriding the embedded tables")
	for key, flag := range map[string]string{
		"augment.language":     "lang",
		"augment.platform":     "platform",
		"augment.unit_prob":    "unit-prob",
		"augment.min_aug":      "min-aug",
		"augment.max_aug":      "max-aug",
		"augment.mult_num":     "mult-num",
		"augment.seed":         "seed",
		"augment.resource_dir": "resources",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newAugmentCmd(a),
		newBatchCmd(a),
		newActionsCmd(),
		newStatsCmd(a),
		newPublishCmd(a),
	)
	return root
}

func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("augment")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("AUGMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// redisStore connects to the configured table store. The caller closes the
// returned client.
func (a *app) redisStore() (*tablestore.Store, *redis.Client) {
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	return tablestore.New(client).WithKey(a.cfg.Redis.Key), client
}

// source layers the table store and the resource directory over the
// embedded tables.
func (a *app) source() (resources.Source, func()) {
	var layers resources.Layered
	cleanup := func() {}
	if a.cfg.Redis.Enabled {
		store, client := a.redisStore()
		layers = append(layers, store)
		cleanup = func() { _ = client.Close() }
	}
	if dir := a.cfg.Augment.ResourceDir; dir != "" {
		layers = append(layers, resources.FromFS(os.DirFS(dir)))
	}
	return append(layers, resources.Embedded()), cleanup
}
