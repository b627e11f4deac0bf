package cmd

import (
	"fmt"
	"os"

	"structure-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "structure-manager",
	Short: "Tracker Structure Manager",
	Long: `Structure Manager maintains the hierarchical tracking structure
(areas, categories, attribute definitions). It reconciles submitted
snapshots against the database, distinguishing renames from genuinely
new objects, and archives every snapshot before touching a row.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// CLI errors go through the console encoder; debug level picks
		// the development config with readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
