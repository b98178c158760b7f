package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"mediascribe/internal/core/config"
)

var initDefaults bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure mediascribe interactively (or write defaults with --defaults)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if initDefaults {
			if config.Exists() {
				path, _ := config.ConfigPath()
				fmt.Printf("Config already exists at %s\n", path)
				return nil
			}
			if err := config.Init(); err != nil {
				return err
			}
			path, _ := config.ConfigPath()
			fmt.Printf("Created %s\n", path)
			return nil
		}

		cfg, err := config.RunSetupWizard()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		path, _ := config.ConfigPath()
		fmt.Printf("Saved %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "write default settings without the interactive wizard")
}
