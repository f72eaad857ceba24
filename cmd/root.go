package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mazadly/boardgen/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "boardgen",
	Short: "Generate 4m x 2m Arabic auction announcement boards as PDF.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./boardgen.yaml or ~/.config/boardgen/boardgen.yaml)")
	rootCmd.AddCommand(serveCmd, renderCmd)
}

func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("boardgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "boardgen"))
		}
	}

	viper.SetEnvPrefix("MAZAD")
	viper.AutomaticEnv()

	// Config file is optional; defaults and env vars cover everything.
	_ = viper.ReadInConfig()
}
