package categorize

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategories is the category order used when nothing else is configured.
var DefaultCategories = []string{
	"headers",
	"style",
	"subject",
	"pov",
	"footers",
}

// ExtendedCategories is a finer-grained layout for long prompts.
var ExtendedCategories = []string{
	"headers",
	"artist",
	"style",
	"subject",
	"subject_pose",
	"subject_other",
	"scene",
	"view",
	"lighting",
	"footers",
}

var presets = map[string][]string{
	"default":  DefaultCategories,
	"extended": ExtendedCategories,
}

// Preset returns a copy of the named category preset.
func Preset(name string) ([]string, error) {
	names, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown category preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return append([]string(nil), names...), nil
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads category names from path. Plain files hold one name per
// line; .yaml and .yml files hold a list of names. Names are trimmed and blank
// entries skipped.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw []string
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse category file %s: %w", path, err)
		}
		return cleanNames(raw), nil
	}

	var raw []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		raw = append(raw, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan category file %s: %w", path, err)
	}
	return cleanNames(raw), nil
}

// Source describes where category names may come from.
type Source struct {
	File   string
	Names  []string
	Preset string
}

// Resolve picks category names: an explicit file first, then an inline list,
// then a named preset, then DefaultCategories.
func Resolve(src Source) ([]string, error) {
	if src.File != "" {
		names, err := LoadFile(src.File)
		if err != nil {
			return nil, err
		}
		if len(names) > 0 {
			return names, nil
		}
	}
	if names := cleanNames(src.Names); len(names) > 0 {
		return names, nil
	}
	if src.Preset != "" {
		return Preset(src.Preset)
	}
	return append([]string(nil), DefaultCategories...), nil
}

func cleanNames(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
