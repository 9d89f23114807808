package cmd

import (
	"github.com/spf13/cobra"

	"portfolio/config"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Search and chat backend for a personal portfolio site",
	Long: `portfolio serves the section search, the chat assistant and the theme
preference API behind a static portfolio page. The same search index and
assistant are available from the terminal and from Discord.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}
