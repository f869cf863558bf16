// Command update-snapshot builds and validates gazetteer datasets.
//
// Usage:
//
//	go run ./cmd/update-snapshot build -o gazetteer.snapshot
//	go run ./cmd/update-snapshot validate --snapshot gazetteer.snapshot
//
// Data files are read from the embedded copy unless --data-dir names a
// directory overriding them. Settings may also come from a TOML file given
// with --config; flags take precedence over the file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andreiashu/gazetteer"
)

var (
	configPath   string
	dataDir      string
	snapshotPath string
	hotCodes     []string
	baseCurrency string
	outputPath   string
)

var rootCmd = &cobra.Command{
	Use:           "update-snapshot",
	Short:         "Build and validate gazetteer datasets",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write a msgpack snapshot of the data files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Building snapshot %s...\n", outputPath)
		if err := gazetteer.SaveSnapshot(outputPath, opts...); err != nil {
			return fmt.Errorf("failed to build snapshot: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Snapshot written successfully.")
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a dataset against its invariants and known entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		g, err := gazetteer.ValidateData(opts...)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "      Countries: %d\n", g.NumCountries())
		fmt.Fprintf(out, "      Currencies: %d\n", g.NumCurrencies())
		fmt.Fprintf(out, "      Cities: %d\n", g.NumCities())
		fmt.Fprintf(out, "      Markets: %d\n", g.NumMarkets())
		fmt.Fprintf(out, "      Locodes: %d\n", g.NumLocodes())
		fmt.Fprintln(out, "Validation passed.")
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML configuration file")
	pf.StringVar(&dataDir, "data-dir", "", "directory overriding the embedded data files")
	pf.StringVar(&snapshotPath, "snapshot", "", "load the dataset from this snapshot")
	pf.StringSliceVar(&hotCodes, "hot", nil, "codes probed first within their bucket")
	pf.StringVar(&baseCurrency, "base-currency", "", "base currency code")

	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "gazetteer.snapshot", "snapshot file to write")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
