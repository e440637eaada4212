// SPDX-License-Identifier: GPL-3.0-or-later

package devcatalog

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/devid"
)

// eventPatternFields are the event catalog fields holding device identifier patterns.
var eventPatternFields = map[string]bool{
	"device_type":         true,
	"origin_of_condition": true,
}

// EventPattern is a device identifier pattern found in an event catalog.
type EventPattern struct {
	// Path is the gjson-style path of the field, e.g. "GPU.3.device_type".
	Path    string
	Field   string
	Pattern string
}

// EventPatterns extracts every device identifier pattern from an event catalog
// JSON document, in document order. Patterns may appear at any nesting depth.
func EventPatterns(data []byte) ([]EventPattern, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("event catalog is not valid JSON")
	}

	var out []EventPattern
	walkEvents(gjson.ParseBytes(data), "", &out)
	return out, nil
}

func walkEvents(v gjson.Result, path string, out *[]EventPattern) {
	switch {
	case v.IsObject():
		v.ForEach(func(key, value gjson.Result) bool {
			p := joinPath(path, key.String())
			if value.Type == gjson.String && eventPatternFields[key.String()] {
				*out = append(*out, EventPattern{Path: p, Field: key.String(), Pattern: value.String()})
				return true
			}
			walkEvents(value, p, out)
			return true
		})
	case v.IsArray():
		i := 0
		v.ForEach(func(_, value gjson.Result) bool {
			walkEvents(value, joinPath(path, strconv.Itoa(i)), out)
			i++
			return true
		})
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// LintEvents parses every pattern of an event catalog. It returns the patterns
// found and the joined errors of those that failed to parse.
func LintEvents(data []byte) ([]EventPattern, error) {
	patterns, err := EventPatterns(data)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, ep := range patterns {
		if _, err := devid.Parse(ep.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ep.Path, err))
		}
	}
	return patterns, errors.Join(errs...)
}
