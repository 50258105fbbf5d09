package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskboard/internal/kanban/store"
)

// Config holds the unified application configuration
type Config struct {
	DataDir   string
	Storage   string
	ExportDir string
	SeedDemo  bool
}

// Settings represents the config file structure
type Settings struct {
	DataDir   string `json:"data_dir"`
	Storage   string `json:"storage,omitempty"`
	ExportDir string `json:"export_dir,omitempty"`
	SeedDemo  *bool  `json:"seed_demo,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir string
	Storage string
	NoDemo  bool
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Storage:  store.BackendFile,
		SeedDemo: true,
	}

	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.Storage != "" {
				cfg.Storage = fileConfig.Storage
			}
			if fileConfig.ExportDir != "" {
				cfg.ExportDir = expandPath(fileConfig.ExportDir)
			}
			if fileConfig.SeedDemo != nil {
				cfg.SeedDemo = *fileConfig.SeedDemo
			}
		}
	}

	// Priority 2: Environment variables override config file
	if env := os.Getenv("TASKBOARD_DATA_DIR"); env != "" {
		cfg.DataDir = expandPath(env)
	}
	if env := os.Getenv("TASKBOARD_STORAGE"); env != "" {
		cfg.Storage = env
	}
	if env := os.Getenv("TASKBOARD_EXPORT_DIR"); env != "" {
		cfg.ExportDir = expandPath(env)
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.Storage != "" {
		cfg.Storage = flags.Storage
	}
	if flags.NoDemo {
		cfg.SeedDemo = false
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if cfg.Storage != store.BackendFile && cfg.Storage != store.BackendSQLite {
		return nil, fmt.Errorf("unknown storage backend %q (want %s or %s)", cfg.Storage, store.BackendFile, store.BackendSQLite)
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = cfg.DataDir
	}

	return cfg, nil
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "taskboard"), nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "taskboard", "config.json"), nil
}

func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDirs creates the data and export directories if missing
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.ExportDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	seed := true
	settings := Settings{
		DataDir:  defaultDir,
		Storage:  store.BackendFile,
		SeedDemo: &seed,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
