package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"manifold/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove extracted artifacts (and optionally the disk cache)",
	Long:  "Remove the artifact directory produced by extract. With --cache the shared manifest disk cache is dropped as well.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache", false, "also drop the manifest disk cache")
}

func runClean(cmd *cobra.Command, args []string) error {
	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	baseDir := "."
	if len(args) > 0 && args[0] != "" {
		baseDir = args[0]
	}
	root, outDir, err := resolveCleanTarget(baseDir)
	if err != nil {
		return err
	}

	info, err := os.Stat(outDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		_, _ = fmt.Fprintf(os.Stdout, "artifact directory not found\n")
	case err != nil:
		return fmt.Errorf("failed to stat %q: %w", outDir, err)
	case !info.IsDir():
		return fmt.Errorf("%q is not a directory", outDir)
	default:
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("failed to remove %q: %w", outDir, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", formatPathForOutput(root, outDir))
	}

	if dropCache {
		cache, err := driver.OpenDiskCache("manifold")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop disk cache: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "dropped disk cache\n")
	}
	return nil
}

// resolveCleanTarget находит корень воркспейса и каталог артефактов.
func resolveCleanTarget(base string) (string, string, error) {
	info, err := os.Stat(base)
	if err != nil {
		return "", "", fmt.Errorf("failed to stat %q: %w", base, err)
	}
	if !info.IsDir() {
		base = filepath.Dir(base)
	}
	ws, ok, err := loadWorkspaceManifest(base)
	if err != nil {
		return "", "", err
	}
	if ok {
		out := "out"
		if strings.TrimSpace(ws.Config.Output.Dir) != "" {
			out = ws.Config.Output.Dir
		}
		return ws.Root, filepath.Join(ws.Root, out), nil
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		abs = base
	}
	return abs, filepath.Join(abs, "out"), nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
