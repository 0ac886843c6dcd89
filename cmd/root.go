package cmd

import (
	"fmt"
	"os"

	"object-resolver/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bucketFlag string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "object-resolver",
	Short: "Object Resolver Service",
	Long: `Object Resolver expands wildcard key patterns against an S3-compatible bucket
and moves single objects between the bucket and the local filesystem.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives ISO8601 timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&bucketFlag, "bucket", "", "Bucket to use instead of the configured one")
}
