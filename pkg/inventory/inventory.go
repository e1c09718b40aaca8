// Package inventory reads the YAML file listing which sources `poll`
// and `watch` should acquire from — one entry per (protocol, device),
// each carrying just enough connection detail to build a
// pkg/source.SnapshotSource.
package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Protocol discriminates the two transport/decode paths a source entry
// can select.
type Protocol string

const (
	ProtocolOspf Protocol = "ospf"
	ProtocolIsIs Protocol = "isis"
)

// Source is one device to poll, as configured in the inventory file.
// Not every field applies to every protocol — Community/Version are
// OSPF-only, Username/Password are IS-IS-only.
type Source struct {
	Name      string   `yaml:"name"`
	Protocol  Protocol `yaml:"protocol"`
	Address   string   `yaml:"address"`
	Port      int      `yaml:"port,omitempty"`
	Community string   `yaml:"community,omitempty"`
	Version   string   `yaml:"version,omitempty"` // "v1" or "v2c" (default)
	Username  string   `yaml:"username,omitempty"`
	Password  string   `yaml:"password,omitempty"`
}

// Inventory is the top-level shape of the sources file.
type Inventory struct {
	Sources []Source `yaml:"sources"`
}

// Load reads and parses an inventory file from path.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory %s: %w", path, err)
	}
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}
	for i, s := range inv.Sources {
		if s.Name == "" {
			return nil, fmt.Errorf("inventory %s: source %d missing name", path, i)
		}
		if s.Protocol != ProtocolOspf && s.Protocol != ProtocolIsIs {
			return nil, fmt.Errorf("inventory %s: source %q has unknown protocol %q", path, s.Name, s.Protocol)
		}
		if s.Address == "" {
			return nil, fmt.Errorf("inventory %s: source %q missing address", path, s.Name)
		}
		if s.Version != "" && s.Version != "v1" && s.Version != "v2c" {
			return nil, fmt.Errorf("inventory %s: source %q has unsupported snmp version %q", path, s.Name, s.Version)
		}
	}
	return &inv, nil
}
