package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Monitor configuration
	Monitor MonitorConfig

	// Flag store configuration
	Store StoreConfig

	// Prober configuration
	Prober ProberConfig
}

// MonitorConfig holds polling behavior configuration
type MonitorConfig struct {
	PollInterval    time.Duration // Pause between two visibility samples
	MinPollInterval time.Duration // Minimum allowed poll interval
	MaxPollInterval time.Duration // Maximum allowed poll interval
}

// StoreConfig names the persisted flag
type StoreConfig struct {
	KeyPath      string // Path of the configuration store key, relative to HKEY_LOCAL_MACHINE on Windows
	ValueName    string // Entry holding the 0/1 flag
	DatabasePath string // SQLite file standing in for the registry on other platforms
}

// ProberConfig holds visibility probing configuration
type ProberConfig struct {
	LauncherClasses []string // X11 WM_CLASS names treated as a launcher overlay
}

// Default returns a Config with the values the tool runs with
func Default() *Config {
	return &Config{
		Monitor: MonitorConfig{
			PollInterval:    50 * time.Millisecond,
			MinPollInterval: time.Millisecond,
			MaxPollInterval: time.Second,
		},
		Store: StoreConfig{
			KeyPath:      `SOFTWARE\StartMenuDetection`,
			ValueName:    "Open",
			DatabasePath: "/var/lib/startmenudetection/store.db",
		},
		Prober: ProberConfig{
			LauncherClasses: []string{
				"rofi",
				"ulauncher",
				"albert",
				"krunner",
				"synapse",
				"xfce4-appfinder",
				"wofi",
				"dmenu",
				"plasmashell-launcher",
			},
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Monitor.PollInterval < c.Monitor.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Monitor.PollInterval, c.Monitor.MinPollInterval)
	}

	if c.Monitor.PollInterval > c.Monitor.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Monitor.PollInterval, c.Monitor.MaxPollInterval)
	}

	if c.Store.KeyPath == "" {
		return fmt.Errorf("store key path cannot be empty")
	}

	if c.Store.ValueName == "" {
		return fmt.Errorf("store value name cannot be empty")
	}

	if c.Store.DatabasePath == "" {
		return fmt.Errorf("store database path cannot be empty")
	}

	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Monitor:
    Poll Interval: %v
    Min Interval: %v
    Max Interval: %v
  Store:
    Key Path: %s
    Value Name: %s
    Database Path: %s
  Prober:
    Launcher Classes: %s`,
		c.Monitor.PollInterval,
		c.Monitor.MinPollInterval,
		c.Monitor.MaxPollInterval,
		c.Store.KeyPath,
		c.Store.ValueName,
		c.Store.DatabasePath,
		strings.Join(c.Prober.LauncherClasses, ", "),
	)
}
