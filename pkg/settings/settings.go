// Package settings manages persistent user settings for the netgraphd CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultInventoryPath is the default source-inventory file used when no
// override is configured.
const DefaultInventoryPath = "/etc/netgraph/sources.yaml"

// DefaultPollIntervalSeconds is the default cadence `watch` polls every
// configured source at when no override is configured.
const DefaultPollIntervalSeconds = 30

const (
	// DefaultAuditMaxSizeMB is the default maximum audit log size in megabytes.
	DefaultAuditMaxSizeMB = 10

	// DefaultAuditMaxBackups is the default maximum number of rotated audit log files.
	DefaultAuditMaxBackups = 10
)

// Settings holds persistent user preferences for netgraphd's CLI verbs.
type Settings struct {
	// DefaultInventory overrides the source inventory file `poll`/`watch`
	// read when -i isn't specified.
	DefaultInventory string `json:"default_inventory,omitempty"`

	// DefaultSnapshotPath overrides where `snapshot save`/`snapshot load`
	// and `show` read/write the persisted TopologyStore by default.
	DefaultSnapshotPath string `json:"default_snapshot_path,omitempty"`

	// PollIntervalSeconds overrides `watch`'s poll cadence.
	PollIntervalSeconds int `json:"poll_interval_seconds,omitempty"`

	// OutputFormat overrides `show`/`sources`' default rendering ("table"
	// or "json").
	OutputFormat string `json:"output_format,omitempty"`

	// AuditLogPath overrides the default audit log path.
	AuditLogPath string `json:"audit_log_path,omitempty"`

	// AuditMaxSizeMB is the max audit log size in MB before rotation (default: 10).
	AuditMaxSizeMB int `json:"audit_max_size_mb,omitempty"`

	// AuditMaxBackups is the max number of rotated audit log files (default: 10).
	AuditMaxBackups int `json:"audit_max_backups,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "netgraph_settings.json"
	}
	return filepath.Join(home, ".netgraph", "settings.json")
}

// Load reads settings from the default location.
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist.
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location.
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path.
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetInventoryPath returns the source inventory path (with fallback).
func (s *Settings) GetInventoryPath() string {
	if s.DefaultInventory != "" {
		return s.DefaultInventory
	}
	return DefaultInventoryPath
}

// GetPollInterval returns the poll interval in seconds (with fallback).
func (s *Settings) GetPollInterval() int {
	if s.PollIntervalSeconds > 0 {
		return s.PollIntervalSeconds
	}
	return DefaultPollIntervalSeconds
}

// GetOutputFormat returns the preferred output format (with fallback).
func (s *Settings) GetOutputFormat() string {
	if s.OutputFormat != "" {
		return s.OutputFormat
	}
	return "table"
}

// GetAuditLogPath returns the audit log path with a fallback default.
func (s *Settings) GetAuditLogPath() string {
	if s.AuditLogPath != "" {
		return s.AuditLogPath
	}
	return "/var/log/netgraph/audit.log"
}

// GetAuditMaxSizeMB returns the audit max size in MB with a default of 10.
func (s *Settings) GetAuditMaxSizeMB() int {
	if s.AuditMaxSizeMB > 0 {
		return s.AuditMaxSizeMB
	}
	return DefaultAuditMaxSizeMB
}

// GetAuditMaxBackups returns the audit max backups with a default of 10.
func (s *Settings) GetAuditMaxBackups() int {
	if s.AuditMaxBackups > 0 {
		return s.AuditMaxBackups
	}
	return DefaultAuditMaxBackups
}

// Clear resets all settings to defaults.
func (s *Settings) Clear() {
	*s = Settings{}
}
