// Package cmd implements the tabshell command line.
package cmd

import (
	"strings"

	"github.com/Iron-Ham/tabshell/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "tabshell [files...]",
	Short: "Docking workspace for text and image documents",
	Long: `tabshell is a terminal workspace of docked tabs. Text and image files
open as document tabs and load in the background; the layout, the open tabs
and preferences are saved on quit and restored on the next start.`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runWorkspace,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tabshell/config.yaml)")
	rootCmd.PersistentFlags().String("state", "", "workspace snapshot file (default is state.json in the config directory)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("state.file", rootCmd.PersistentFlags().Lookup("state"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().Bool("no-restore", false, "start with an empty workspace instead of the saved one")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TABSHELL")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TABSHELL_LOGGING_LEVEL for logging.level
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
