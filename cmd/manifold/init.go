package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new manifold workspace",
	Long: `Initialize a new manifold workspace by creating a workspace manifest
(manifold.toml) and a sample annotated header. If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("interactive", false, "prompt for workspace settings")
}

type initSettings struct {
	Name      string
	InputDir  string
	OutputDir string
	Format    string
}

// runInit initializes a manifold workspace at the specified target path (or the
// current working directory when no argument or "." is provided) by creating a
// manifold.toml manifest, the header directory and a sample header.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "manifold-project" for invalid names), and refuses to initialize if
// manifold.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return fmt.Errorf("failed to get interactive flag: %w", err)
	}

	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "manifold-project"
	}

	settings := initSettings{
		Name:      name,
		InputDir:  "include",
		OutputDir: "out",
		Format:    "json",
	}
	if interactive {
		if err := runInitForm(&settings); err != nil {
			return err
		}
		settings.normalize()
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "manifold.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("workspace already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildWorkspaceManifest(settings)), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	includeDir := filepath.Join(target, settings.InputDir)
	if err := os.MkdirAll(includeDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", includeDir, err)
	}

	// Create a sample header if not exists
	samplePath := filepath.Join(includeDir, "TWSample.h")
	createdSample := false
	if _, err := os.Stat(samplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(samplePath, []byte(sampleHeader()), 0o600); err != nil {
			return fmt.Errorf("failed to write sample header: %w", err)
		}
		createdSample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized manifold workspace in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - manifold.toml\n")
	if createdSample {
		fmt.Fprintf(os.Stdout, "  - %s\n", filepath.Join(settings.InputDir, "TWSample.h"))
	} else {
		fmt.Fprintf(os.Stdout, "  - %s (existing)\n", filepath.Join(settings.InputDir, "TWSample.h"))
	}
	return nil
}

// normalize откатывает очищенные в форме поля к значениям по умолчанию.
func (s *initSettings) normalize() {
	if strings.TrimSpace(s.Name) == "" {
		s.Name = "manifold-project"
	}
	if strings.TrimSpace(s.InputDir) == "" {
		s.InputDir = "include"
	}
	if strings.TrimSpace(s.OutputDir) == "" {
		s.OutputDir = "out"
	}
	if strings.TrimSpace(s.Format) == "" {
		s.Format = "json"
	}
}

func runInitForm(settings *initSettings) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("project name is required")
					}
					return nil
				}).
				Value(&settings.Name),
			huh.NewInput().
				Title("Header directory").
				Placeholder("include").
				Value(&settings.InputDir),
			huh.NewInput().
				Title("Artifact directory").
				Placeholder("out").
				Value(&settings.OutputDir),
			huh.NewSelect[string]().
				Title("Artifact format").
				Options(
					huh.NewOption("JSON", "json"),
					huh.NewOption("YAML", "yaml"),
				).
				Value(&settings.Format),
		),
	).Run()
}

// buildWorkspaceManifest returns a minimal TOML manifest for a manifold
// workspace using the provided settings.
func buildWorkspaceManifest(s initSettings) string {
	return fmt.Sprintf(`# Manifold workspace manifest
[project]
name = "%s"

[input]
dir = "%s"

[output]
dir = "%s"
format = "%s"
`, s.Name, s.InputDir, s.OutputDir, s.Format)
}

// sampleHeader returns the annotated header created for new workspaces so the
// first "manifold extract" run has something to chew on.
func sampleHeader() string {
	return `#pragma once

#include "TWBase.h"

TW_EXTERN_C_BEGIN

/// A sample value wrapper.
TW_EXPORT_STRUCT
struct TWSample {
    uint64_t value;
    const char *label;
};

/// Returns the wrapped value.
TW_EXPORT_PROPERTY
uint64_t TWSampleValue(struct TWSample *_Nonnull sample);

TW_EXTERN_C_END
`
}
