package cmd

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/fxtrigger/config"
	"github.com/rustyeddy/fxtrigger/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate settings files",
	Long: `Manage the settings file read before every trade.

Subcommands:
  init     - Generate a default settings file
  validate - Validate an existing settings file

Examples:
  fxtrigger config init -o settings.yaml
  fxtrigger config validate -f settings.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default settings file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a settings file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "settings.yaml", "output settings file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to settings file (required)")
	configValidateCmd.MarkFlagRequired("file")

	// the settings file being managed may itself be broken
	configCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger = logging.New(logging.DefaultConfig(), cmd.ErrOrStderr())
		return nil
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default settings: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  fxtrigger trade --settings %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	s, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Settings valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Spread guard: %t (max cost %.2f)\n", s.SpreadGuard, s.MaxSpreadCost)
	fmt.Fprintf(out, "  Default risk: %.2f%%  Pips: %s\n", s.DefaultRiskPercent, s.PipConvention)
	fmt.Fprintf(out, "  Fill modes: %s\n", strings.Join(s.FillModes, ", "))
	fmt.Fprintf(out, "  Journal: %s\n", s.Journal.Type)
	return nil
}
