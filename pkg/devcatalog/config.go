// SPDX-License-Identifier: GPL-3.0-or-later

package devcatalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config is the on-disk form of a device catalog.
//
//	families:
//	  - name: gpu
//	    kind: GPU
//	    pattern: GPU_SXM_[1-8]
//	  - name: nvlink
//	    kind: NVLink
//	    pattern: NVSwitch_[0|0-3]/Ports/NVLink_[1|0-17]
type Config struct {
	Families []FamilyConfig `yaml:"families" json:"families"`
}

// FamilyConfig describes one device family.
type FamilyConfig struct {
	Name        string `yaml:"name" json:"name" jsonschema:"minLength=1"`
	Pattern     string `yaml:"pattern" json:"pattern" jsonschema:"minLength=1"`
	Kind        string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Load reads and validates a catalog file.
func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a catalog document.
func Parse(bs []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Families) == 0 {
		return errors.New("no device families defined")
	}

	seen := make(map[string]bool)
	for i, f := range c.Families {
		name := strings.TrimSpace(f.Name)
		switch {
		case name == "":
			return fmt.Errorf("family #%d: empty name", i)
		case f.Pattern == "":
			return fmt.Errorf("family '%s': empty pattern", name)
		case seen[name]:
			return fmt.Errorf("family '%s': duplicate name", name)
		}
		seen[name] = true
		c.Families[i].Name = name
	}
	return nil
}
