package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/datefix-cli/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize the datefix configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if c == nil {
			loaded, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			c = loaded
		}
		b, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(b))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current defaults to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if c == nil {
			loaded, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			c = loaded
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Config written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
