// SPDX-License-Identifier: GPL-3.0-or-later

package devcatalog

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mitchellh/go-homedir"
)

// LoadGlob loads every catalog file matching pattern and merges their
// families in lexical file order. Patterns support '**' and a leading '~'.
// Family names must be unique across all files.
func LoadGlob(pattern string) (*Config, error) {
	cfg, _, err := loadGlob(pattern)
	return cfg, err
}

func loadGlob(pattern string) (*Config, []string, error) {
	pattern, err := expandPattern(pattern)
	if err != nil {
		return nil, nil, err
	}

	files, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, nil, fmt.Errorf("'%s': %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("'%s': no catalog files found", pattern)
	}
	slices.Sort(files)

	var merged Config
	for _, file := range files {
		cfg, err := Load(file)
		if err != nil {
			return nil, nil, err
		}
		merged.Families = append(merged.Families, cfg.Families...)
	}
	if err := merged.validate(); err != nil {
		return nil, nil, fmt.Errorf("'%s': %w", pattern, err)
	}

	return &merged, files, nil
}

func expandPattern(pattern string) (string, error) {
	pattern, err := homedir.Expand(pattern)
	if err != nil {
		return "", err
	}
	return filepath.Clean(pattern), nil
}

// globBase returns the directory part of pattern that holds no glob meta characters.
func globBase(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}
