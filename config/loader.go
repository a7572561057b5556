package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "assetcheck.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/assetcheck"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger

	// overridable in tests
	workDir func() (string, error)
	homeDir func() (string, error)
	gitRoot func(dir string) string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  logger,
		workDir: os.Getwd,
		homeDir: os.UserHomeDir,
		gitRoot: detectGitRoot,
	}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/assetcheck/config.yaml)
// 3. Project config (assetcheck.yaml in current or parent directories)
//
// When explicitPath is set it replaces layers 2 and 3.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	config := DefaultConfig()

	if explicitPath != "" {
		fileConfig, err := LoadFromFile(explicitPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", explicitPath))
		config.Merge(fileConfig)
	} else {
		l.loadLayers(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadLayers(config *Config) {
	// Load user config
	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	// Load project config
	projectConfigPath := l.findProjectConfig()
	if projectConfigPath == "" {
		l.logger.Debug("No project config found")
		return
	}
	if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
		l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
		config.Merge(projectConfig)
	} else {
		l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
	}
}

// ResolveRoot picks the project root: an explicit flag value wins, then the
// configured root, then the git top-level, then the working directory.
func (l *Loader) ResolveRoot(flagRoot string, config *Config) (string, error) {
	root := flagRoot
	if root == "" {
		root = config.Root
	}

	if root == "" {
		cwd, err := l.workDir()
		if err != nil {
			return "", err
		}
		if gitRoot := l.gitRoot(cwd); gitRoot != "" {
			l.logger.Debug("Auto-detected git root", slog.String("path", gitRoot))
			root = gitRoot
		} else {
			l.logger.Debug("Using current directory as project root", slog.String("path", cwd))
			root = cwd
		}
	}

	return filepath.Abs(root)
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := l.homeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for assetcheck.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := l.workDir()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}

// detectGitRoot finds the git repository root containing dir
func detectGitRoot(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
