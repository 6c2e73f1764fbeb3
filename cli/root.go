package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nstehr/vanguard/vanguard-core/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vanguard",
	Short: "Vanguard - skill-rotation combat bot for party play",
	Long: `Vanguard drives a character's combat from the game client's world
snapshots: it orders the skillbar, picks targets, checks cast conditions and
issues skill, interact and move commands back to the client.

Example:
  vanguard serve --socket /tmp/vanguard.sock --skills skills.yaml
  vanguard order --skills skills.yaml 281 1950 57`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .vanguard.yaml)")
	rootCmd.PersistentFlags().String("skills", "", "skill catalog file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("skills_file", rootCmd.PersistentFlags().Lookup("skills"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vanguard")
	}

	if err := config.BindEnv(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, "Error binding environment:", err)
		os.Exit(1)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
