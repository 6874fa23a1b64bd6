package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gofluid/internal/config"
	"github.com/alexiusacademia/gofluid/internal/logging"
	"github.com/alexiusacademia/gofluid/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	envFile  string
	logLevel string

	// cfg is loaded before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gofluid",
	Short: "Fluid Mechanics Calculator Suite",
	Long: `gofluid - Go Fluid Mechanics Calculators

A CLI tool for the everyday calculations of fluid mechanics and
hydraulics, each printed as a worked solution.

This tool helps engineers and students compute:
  - Hydrostatic forces on vertical and inclined walls
  - Capillary rise, manometer and Pitot tube readings
  - Reynolds number, flow regime and Darcy friction factor
  - Head loss through pipe runs with fittings
  - Pump head and power, turbine output and energy
  - Reactions on reducing pipe bends

Results can be exported as PDF reports, recorded to a history
database, evaluated in bulk from Excel workbooks, or served
over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile, envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if err := logging.Setup(os.Stderr, loaded.Log.Level, loaded.Log.Format); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gofluid v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Fluid Mechanics Calculators                          ║")
		fmt.Printf("  ║   %s ©  %-42s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Worked solutions for fluid statics, pipe flow and")
		fmt.Println("  hydraulic machinery.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Hydrostatic forces, capillarity, manometers and Pitot tubes")
		fmt.Println("    • Friction factor (Churchill) and pipe-run head loss")
		fmt.Println("    • Pump sizing and hydro turbine output")
		fmt.Println("    • Momentum balance on reducing bends")
		fmt.Println("    • PDF reports, Excel batches, calculation history, HTTP API")
		fmt.Println()
		fmt.Println("  Use 'gofluid --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// A failed command prints its error and exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file loaded before config overrides (default ./"+config.DefaultEnvFile+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}
