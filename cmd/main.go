package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"augmentor/internal/observability"
)

func main() {
	defer observability.Sync()
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
