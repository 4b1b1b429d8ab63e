package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var env string

var rootCmd = &cobra.Command{
	Use:   "reviewcord",
	Short: "A shared research paper review tracker",
	Long: `Reviewcord keeps a shared collection of research papers. Submitting a
paper by url extracts its metadata from the publisher's page, checks the
collection for duplicates and generates a short summary before saving.
Every paper then moves through a three-state review workflow.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine, the environment may be set
		// some other way.
		godotenv.Load()

		viper.SetEnvPrefix("reviewcord")
		viper.AutomaticEnv()

		viper.SetDefault("addr", ":1705")
		viper.SetDefault("bolt", "data/reviewcord.bolt.db")
		viper.SetDefault("bleve", "data/reviewcord.bleve")
	},
}

// Execute runs the command tree. Called by main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment, prod switches to JSON logs")
}
