package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	rcFile     = ".browserslistrc"
	configFile = "browserslist"
)

// Find searches dir and its parents for configuration and returns the
// first one found together with the file it came from. It returns a nil
// Config when no directory up to the root has one.
//
// A directory holding more than one source is an error wrapping
// ErrDuplicatedConfig. package.json files without a "browserslist" field
// and BUILD files without a browserslist rule are not sources.
func Find(dir string) (*Config, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		cfg, path, err := findIn(dir)
		if err != nil || cfg != nil {
			return cfg, path, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

type source struct {
	path string
	cfg  *Config
}

func findIn(dir string) (*Config, string, error) {
	var found []source

	for _, name := range []string{configFile, rcFile} {
		path := filepath.Join(dir, name)
		if !isFile(path) {
			continue
		}
		cfg, err := ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		found = append(found, source{path, cfg})
	}

	if path := filepath.Join(dir, packageJSON); isFile(path) {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
		cfg, err := ParsePackageJSON(content)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		if cfg != nil {
			found = append(found, source{path, cfg})
		}
	}

	for _, name := range buildFiles {
		path := filepath.Join(dir, name)
		if !isFile(path) {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
		cfg, err := ParseStarlark(path, content)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		if cfg != nil {
			found = append(found, source{path, cfg})
		}
		// Bazel ignores BUILD when BUILD.bazel exists.
		break
	}

	switch len(found) {
	case 0:
		return nil, "", nil
	case 1:
		return found[0].cfg, found[0].path, nil
	default:
		return nil, "", fmt.Errorf("%w: %s contains both %s and %s",
			ErrDuplicatedConfig, dir, filepath.Base(found[0].path), filepath.Base(found[1].path))
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
