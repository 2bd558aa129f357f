package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	storePath string
	verbose   bool
)

var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:     "hattriectl",
	Short:   "Inspect and manipulate hattrie key/value stores",
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		if !verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return err
		}
		logger = l.Sugar()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "hattrie.store", "path to the serialized store file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func execute() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
