package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"selex/internal/eventbus"
	"selex/internal/ui/services/selection"
)

// Config represents the application configuration
type Config struct {
	Version    int               `toml:"version"`
	TreeFile   string            `toml:"tree_file"`
	MirrorPath string            `toml:"mirror_path"`
	Selection  SelectionSettings `toml:"selection"`
	UISettings UISettings        `toml:"ui"`
}

// SelectionSettings are the selection options recognized by components
type SelectionSettings struct {
	Selectable    bool   `toml:"selectable"`
	Multiselect   bool   `toml:"multiselect"`
	Autoselect    string `toml:"autoselect"` // "off", "on" or "all"
	CtrlSelect    bool   `toml:"ctrlselect"`
	AllowDeselect bool   `toml:"allowdeselect"`
	Reselectable  bool   `toml:"reselectable"`
	DelayedSelect bool   `toml:"delayedselect"`
	BufferSelect  bool   `toml:"bufferselect"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowStatusBar  bool `toml:"show_status_bar"`
	MirrorOnChange bool `toml:"mirror_on_change"`
}

// Options converts the settings into engine options
func (s SelectionSettings) Options() selection.Options {
	return selection.Options{
		Selectable:    s.Selectable,
		Multiselect:   s.Multiselect,
		Autoselect:    s.Autoselect == "on" || s.Autoselect == "all",
		AutoselectAll: s.Autoselect == "all",
		CtrlSelect:    s.CtrlSelect,
		AllowDeselect: s.AllowDeselect,
		Reselectable:  s.Reselectable,
		DelayedSelect: s.DelayedSelect,
		BufferSelect:  s.BufferSelect,
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	selexDir := filepath.Join(configDir, "selex")
	os.MkdirAll(selexDir, 0755)

	return &configService{
		filePath: filepath.Join(selexDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Return default config if file doesn't exist
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: ""})
		}
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Selection.Autoselect {
	case "", "off", "on", "all":
	default:
		return nil, fmt.Errorf("invalid autoselect mode %q", cfg.Selection.Autoselect)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Selection: SelectionSettings{
			Selectable:    true,
			Multiselect:   true,
			Autoselect:    "on",
			AllowDeselect: true,
			BufferSelect:  true,
		},
		UISettings: UISettings{
			ShowStatusBar:  true,
			MirrorOnChange: true,
		},
	}
}
