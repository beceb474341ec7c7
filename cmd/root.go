package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "avatarlaunch",
	Short: "Launch site backend for the AI avatar showcase",
	Long: `avatarlaunch serves the showcase carousel of avatar clips, the decorative
background marquee and the prompt studio that turns avatar and scene
descriptions into generated images. It also exposes the studio and the
carousel to AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".avatarlaunch.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadDotEnv pulls API keys from .env files in the working directory.
// Variables already set in the environment win over .env, and .env.local
// wins over both.
func loadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
}
