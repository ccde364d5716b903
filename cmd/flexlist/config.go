package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// LoadYAMLConfig is a kong configuration loader reading flag defaults from
// a YAML mapping. Keys are flag names; dashes may be written as
// underscores. Flags given on the command line or through the environment
// take precedence.
//
//	db: ~/.flexlist/flexlist.db
//	locale: en
//	source_dir: ./pages
func LoadYAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	normalized := make(map[string]any, len(values))
	for k, v := range values {
		normalized[strings.ReplaceAll(k, "_", "-")] = v
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := normalized[flag.Name]
		if !ok {
			return nil, nil
		}
		return configValue(v), nil
	}), nil
}

// configValue converts a decoded YAML value into the string form kong maps
// onto flag types. Sequences are joined with the flag separator.
func configValue(v any) any {
	switch v := v.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case nil:
		return nil
	default:
		return fmt.Sprint(v)
	}
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flexlist", "config.yaml")
}
