package cmd

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/papertrader/config"
	"github.com/rustyeddy/papertrader/market"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for simulation sessions.

Subcommands:
  init     - Generate a configuration file from a preset
  validate - Validate an existing configuration file

Examples:
  papertrader config init -o us.yaml
  papertrader config init --preset ashare -o ashare.yaml
  papertrader config validate -f ashare.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a configuration file",
	Long: `Create a new configuration file from a preset.

Presets:
  us     - trade from the first bar, all history visible
  ashare - 50 days of history first, 51 bar window, CNY`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configInitPreset   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "papertrader.yaml", "output config file path")
	configInitCmd.Flags().StringVar(&configInitPreset, "preset", "us", "preset ("+strings.Join(config.Presets, ", ")+")")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Preset(configInitPreset)
	if err != nil {
		return err
	}
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created %s configuration: %s\n", configInitPreset, configInitOutput)
	fmt.Fprintln(out, "\nEdit data.file and run with:")
	fmt.Fprintf(out, "  papertrader play --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Account: %s (%s)\n", cfg.Account.ID,
		market.FormatCash(cfg.Account.Capital(), cfg.Account.Currency))
	fmt.Fprintf(out, "  Data: %s from %s\n", cfg.Data.Instrument, cfg.Data.File)
	fmt.Fprintf(out, "  Start offset: %d, window: %d\n", cfg.Simulation.StartOffset, cfg.Simulation.Window)
	fmt.Fprintf(out, "  Journal: %s\n", cfg.Journal.Type)
	return nil
}
