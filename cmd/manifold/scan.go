package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"manifold/internal/diagfmt"
	"manifold/internal/driver"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] file.h",
	Short: "Scan a C header into declaration items",
	Long:  `Scan breaks down an annotated C header into its raw declaration items without building a manifest`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runScan(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// Выполняем скан
	result, err := driver.ScanHeader(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		colorChoice, modeErr := parseSwitchMode("color", colorFlag)
		if modeErr != nil {
			return modeErr
		}
		opts := diagfmt.PrettyOpts{
			Color:   colorChoice.enabled(os.Stderr),
			Context: 2,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	// Выводим элементы в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatItemsPretty(os.Stdout, result.Items, result.FileSet)
	case "json":
		return diagfmt.FormatItemsJSON(os.Stdout, result.Items)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
