package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"manifold/internal/diagfmt"
	"manifold/internal/driver"
	"manifold/internal/emit"
	"manifold/internal/source"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] [file.h|directory]",
	Short: "Extract manifests from annotated C headers",
	Long: `Extract scans annotated C headers and writes one normalized manifest
artifact per header. Without an argument the input directory comes from
manifold.toml, falling back to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("out", "", "artifact directory (default \"out\" or [output].dir from manifold.toml)")
	extractCmd.Flags().String("format", "", "artifact format (json|yaml)")
	extractCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	extractCmd.Flags().String("ui", "auto", "progress UI for directory processing (auto|on|off)")
	extractCmd.Flags().Bool("no-cache", false, "bypass the manifest disk cache")
	extractCmd.Flags().Bool("dry-run", false, "extract without writing artifacts")
	extractCmd.Flags().Bool("with-notes", false, "include notes in diagnostics")
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Получаем флаги
	outFlag, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	colorChoice, err := parseSwitchMode("color", colorFlag)
	if err != nil {
		return err
	}

	uiChoice, err := parseSwitchMode("ui", uiFlag)
	if err != nil {
		return err
	}

	ws, _, err := loadWorkspaceManifest(".")
	if err != nil {
		return err
	}

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	target := resolveInputDir(arg, ws)

	format, err := emit.ParseFormat(resolveFormatName(formatFlag, ws))
	if err != nil {
		return err
	}

	// Пустой OutDir означает прогон без записи артефактов
	outDir := ""
	if !dryRun {
		outDir = resolveOutputDir(outFlag, ws)
	}

	var cache *driver.DiskCache
	if !noCache {
		opened, cacheErr := driver.OpenDiskCache("manifold")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "warning: disk cache unavailable: %v\n", cacheErr)
		} else {
			cache = opened
		}
	}

	opts := driver.ExtractOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		OutDir:         outDir,
		Format:         format,
		Cache:          cache,
		Timings:        showTimings,
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	prettyOpts := diagfmt.PrettyOpts{
		Color:     colorChoice.enabled(os.Stderr),
		Context:   2,
		ShowNotes: withNotes,
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)

	if st.IsDir() {
		if shouldUseTUI(uiChoice) && !quiet {
			fileSet, results, err = runExtractWithUI(cmd.Context(), target, opts)
		} else {
			fileSet, results, err = driver.ExtractDir(cmd.Context(), target, opts)
		}
		if err != nil {
			// Частичные результаты показываем перед выходом
			reportResults(fileSet, results, prettyOpts)
			return fmt.Errorf("extraction failed: %w", err)
		}
	} else {
		fs := source.NewFileSetWithBase(filepath.Dir(target))
		fileID, loadErr := fs.Load(target)
		if loadErr != nil {
			return fmt.Errorf("failed to load file: %w", loadErr)
		}
		fileSet = fs
		results = []driver.FileResult{driver.ExtractFile(fs, fileID, opts)}
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(os.Stdout, "no headers found in %s\n", target)
		}
		return nil
	}

	reportResults(fileSet, results, prettyOpts)

	extracted := 0
	cached := 0
	for _, r := range results {
		if r.Manifest != nil {
			extracted++
		}
		if r.CacheHit {
			cached++
		}
	}

	if !quiet {
		dest := outDir
		if dryRun {
			dest = "(dry run)"
		}
		fmt.Fprintf(os.Stdout, "extracted %d of %d headers (%d cached) -> %s\n",
			extracted, len(results), cached, dest)
	}

	if extracted == 0 {
		// Подавляем usage-вывод cobra: диагностика уже напечатана
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// reportResults печатает диагностику каждого заголовка в stderr.
func reportResults(fileSet *source.FileSet, results []driver.FileResult, opts diagfmt.PrettyOpts) {
	for _, r := range results {
		if r.Bag == nil || r.Bag.Len() == 0 {
			continue
		}
		fmt.Fprintf(os.Stderr, "== %s ==\n", r.Path)
		diagfmt.Pretty(os.Stderr, r.Bag, fileSet, opts)
	}
}
