package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "catan-spectator",
	Short: "Log Settlers of Catan games as they happen at the table",
	Long: `catan-spectator is a live recorder for Settlers of Catan: an operator
watches a physical game and keys in each action as it happens. Every
action is validated against the rules before it is accepted, mistakes
can be undone and redone, and the finished game is written out as both
a human-readable journal and a replayable record.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.catan-spectator.yaml)")
	rootCmd.PersistentFlags().String("games_dir", "", "directory holding saved games (default is ./games)")
	rootCmd.PersistentFlags().StringSlice("data_dir", nil, "directories searched for board and variant files")

	viper.BindPFlag("games_dir", rootCmd.PersistentFlags().Lookup("games_dir"))
	viper.BindPFlag("data_dirs", rootCmd.PersistentFlags().Lookup("data_dir"))
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".catan-spectator")
	}

	viper.SetEnvPrefix("catan")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// gamesDir resolves the saved-games directory from flags and config.
func gamesDir() string {
	if dir := viper.GetString("games_dir"); dir != "" {
		return dir
	}
	return "./games"
}

// dataDirs resolves the search path for board and variant files. The
// games directory itself is always searched last so per-game overrides
// stay possible.
func dataDirs() []string {
	dirs := viper.GetStringSlice("data_dirs")
	return append(dirs, gamesDir())
}
