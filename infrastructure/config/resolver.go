package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"pageforge/domain/entities"
)

// DefaultEnvironment is used when no environment is selected explicitly or
// through the ENV variable.
const DefaultEnvironment = "dev"

const (
	frameworkDefaultsFile = "defaults.json"
	siteConfigFile        = "config.json"
	localOverridesFile    = "local.json"
)

// Resolver loads, merges, interpolates and validates the four configuration
// layers for a site. Layers are re-read from disk on every call; nothing is
// cached across resolves.
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at the given config directory. An
// empty root means the current directory.
func NewResolver(root string) *Resolver {
	if root == "" {
		root = "."
	}
	return &Resolver{root: root}
}

func (r *Resolver) frameworkPath() string {
	return filepath.Join(r.root, "framework", frameworkDefaultsFile)
}

func (r *Resolver) sitePath(site string) string {
	return filepath.Join(r.root, "sites", site, siteConfigFile)
}

func (r *Resolver) envPath(site, environment string) string {
	return filepath.Join(r.root, "sites", site, "env", environment+".json")
}

func (r *Resolver) localPath() string {
	return filepath.Join(r.root, localOverridesFile)
}

// Resolve produces the validated configuration for a site. Layer order is
// fixed: framework defaults, site config, environment overrides (when an
// environment is given), then local overrides; later layers win. The merged
// result is interpolated against the process environment and validated.
//
// A missing site file, an unset required ${VAR}, malformed JSON in any layer
// and any schema violation are all fatal; the error types in domain/entities
// carry the offending path, variable or field.
func (r *Resolver) Resolve(site, environment string) (*entities.SiteConfig, error) {
	if site == "" {
		return nil, fmt.Errorf("site must not be empty")
	}

	layers := make([]map[string]any, 0, 4)

	framework, err := r.loadOptional(r.frameworkPath())
	if err != nil {
		return nil, err
	}
	layers = append(layers, framework)

	siteLayer, err := r.loadRequired(site)
	if err != nil {
		return nil, err
	}
	layers = append(layers, siteLayer)

	if environment != "" {
		envLayer, err := r.loadOptional(r.envPath(site, environment))
		if err != nil {
			return nil, err
		}
		layers = append(layers, envLayer)
	}

	local, err := r.loadOptional(r.localPath())
	if err != nil {
		return nil, err
	}
	layers = append(layers, local)

	merged := Merge(layers...)

	interpolated, err := Interpolate(merged)
	if err != nil {
		return nil, err
	}

	return Validate(interpolated.(map[string]any))
}

// Sites lists the site names that have a config directory under the root.
func (r *Resolver) Sites() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, "sites"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list sites: %w", err)
	}

	var sites []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(r.sitePath(entry.Name())); err == nil {
			sites = append(sites, entry.Name())
		}
	}
	sort.Strings(sites)
	return sites, nil
}

// loadOptional reads one layer file. A missing file yields an empty layer;
// only unparseable content is an error.
func (r *Resolver) loadOptional(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read config layer %s: %w", path, err)
	}
	return parseLayer(path, data)
}

// loadRequired reads the site layer, which must exist.
func (r *Resolver) loadRequired(site string) (map[string]any, error) {
	path := r.sitePath(site)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &entities.SiteNotFoundError{Site: site, Path: path}
		}
		return nil, fmt.Errorf("read config layer %s: %w", path, err)
	}
	return parseLayer(path, data)
}

func parseLayer(path string, data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	var layer map[string]any
	if err := json.Unmarshal(data, &layer); err != nil {
		return nil, &entities.ParseError{Path: path, Err: err}
	}
	if layer == nil {
		layer = map[string]any{}
	}
	return layer, nil
}
