package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type workspaceManifest struct {
	Path   string
	Root   string
	Config workspaceConfig
}

type workspaceConfig struct {
	Project projectSection `toml:"project"`
	Input   inputSection   `toml:"input"`
	Output  outputSection  `toml:"output"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type inputSection struct {
	Dir string `toml:"dir"`
}

type outputSection struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// findManifoldToml ищет manifold.toml вверх по дереву от startDir.
func findManifoldToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "manifold.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadWorkspaceManifest loads the nearest manifold.toml. A missing file is
// not an error: the second return value reports whether one was found.
func loadWorkspaceManifest(startDir string) (*workspaceManifest, bool, error) {
	manifestPath, ok, err := findManifoldToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadWorkspaceConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &workspaceManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadWorkspaceConfig(path string) (workspaceConfig, error) {
	var cfg workspaceConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return workspaceConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return workspaceConfig{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return workspaceConfig{}, fmt.Errorf("%s: missing [project].name", path)
	}
	return cfg, nil
}

// resolveInputDir выбирает каталог заголовков: аргумент > [input].dir > ".".
func resolveInputDir(arg string, ws *workspaceManifest) string {
	if arg != "" {
		return arg
	}
	if ws != nil && strings.TrimSpace(ws.Config.Input.Dir) != "" {
		return filepath.Join(ws.Root, ws.Config.Input.Dir)
	}
	return "."
}

// resolveOutputDir выбирает каталог артефактов: флаг > [output].dir > "out".
func resolveOutputDir(flag string, ws *workspaceManifest) string {
	if flag != "" {
		return flag
	}
	if ws != nil && strings.TrimSpace(ws.Config.Output.Dir) != "" {
		return filepath.Join(ws.Root, ws.Config.Output.Dir)
	}
	return "out"
}

// resolveFormatName выбирает формат артефактов: флаг > [output].format > "json".
func resolveFormatName(flag string, ws *workspaceManifest) string {
	if flag != "" {
		return flag
	}
	if ws != nil && strings.TrimSpace(ws.Config.Output.Format) != "" {
		return ws.Config.Output.Format
	}
	return "json"
}
