package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/avatar-launch/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize avatarlaunch configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the image provider, port and media locations, and writes the answers to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
