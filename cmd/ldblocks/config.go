package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ldblocks"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the config file at path and fills unset fields from
// ldblocks.DefaultConfig. The format follows the extension (.json, .yaml,
// .yml). An empty path yields the defaults.
func LoadConfig(path string) (ldblocks.Config, error) {
	defaults := ldblocks.DefaultConfig()
	if path == "" {
		return defaults, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return ldblocks.Config{}, ldblocks.Errorf(ldblocks.EINVALID, "read config: %s", err)
	}

	var cfg ldblocks.Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(buf, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, &cfg)
	default:
		return ldblocks.Config{}, ldblocks.Errorf(ldblocks.EINVALID, "unsupported config format %q", ext)
	}
	if err != nil {
		return ldblocks.Config{}, ldblocks.Errorf(ldblocks.EINVALID, "parse config %s: %s", path, err)
	}

	cfg = cfg.Merge(defaults)
	if err := cfg.Validate(); err != nil {
		return ldblocks.Config{}, err
	}
	return cfg, nil
}
