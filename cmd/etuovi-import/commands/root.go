// Package commands implements the CLI commands for etuovi-import.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "etuovi-import",
	Short: "Import property data from Etuovi listings",
	Long: `etuovi-import fetches an Etuovi listing page and recovers a
normalized property record from it: prices, apartment size, periodic
charges, address and building metadata.

The extraction is layered: the page's embedded JSON state is parsed
first, falling back to raw-text pattern matching when the state blob is
missing or no longer parses. This is also the tool to reach for when
checking whether the extraction patterns still match the live site.

Examples:
  # Import a single listing
  etuovi-import fetch -u "https://www.etuovi.com/kohde/12345678"

  # Several listings as JSONL, via a headless browser
  etuovi-import fetch -u URL1 -u URL2 --format jsonl --fetch-mode dynamic

  # Emit the host application's property-creation shape
  etuovi-import fetch -u URL --create-input`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.etuovi-import.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".etuovi-import")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ETUOVI")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
