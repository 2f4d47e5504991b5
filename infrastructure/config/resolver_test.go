package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageforge/domain/entities"
)

func writeLayer(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const defaultsLayer = `{
	"baseUrl": "http://localhost:3000",
	"timeouts": {"navigation": 30000, "action": 5000, "assertion": 5000}
}`

func TestResolveEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://acme.com"}`)
	writeLayer(t, root, "sites/acme/env/staging.json", `{"baseUrl": "https://staging.acme.com"}`)

	cfg, err := NewResolver(root).Resolve("acme", "staging")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.acme.com", cfg.BaseURL)
	assert.Equal(t, entities.Timeouts{Navigation: 30000, Action: 5000, Assertion: 5000}, cfg.Timeouts)
}

func TestResolveRequiredFieldPropagation(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json",
		`{"timeouts": {"navigation": 30000, "action": 5000, "assertion": 5000}}`)
	writeLayer(t, root, "sites/x/config.json", `{"baseUrl": "https://x.com"}`)

	cfg, err := NewResolver(root).Resolve("x", "")
	require.NoError(t, err)
	assert.Equal(t, "https://x.com", cfg.BaseURL)
	assert.Equal(t, entities.Timeouts{Navigation: 30000, Action: 5000, Assertion: 5000}, cfg.Timeouts)
}

func TestResolveLocalOverridesWin(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://acme.com"}`)
	writeLayer(t, root, "sites/acme/env/staging.json", `{"baseUrl": "https://staging.acme.com"}`)
	writeLayer(t, root, "local.json", `{"baseUrl": "http://127.0.0.1:8080"}`)

	cfg, err := NewResolver(root).Resolve("acme", "staging")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
}

func TestResolveMissingSiteIsFatal(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)

	_, err := NewResolver(root).Resolve("ghost", "")
	var notFound *entities.SiteNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "ghost", notFound.Site)
	assert.Equal(t, filepath.Join(root, "sites", "ghost", "config.json"), notFound.Path)
}

func TestResolveMissingFrameworkLayerIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "sites/acme/config.json", `{
		"baseUrl": "https://acme.com",
		"timeouts": {"navigation": 1, "action": 1, "assertion": 1}
	}`)

	cfg, err := NewResolver(root).Resolve("acme", "")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", cfg.BaseURL)
}

func TestResolveEmptyFrameworkFileIsAcceptable(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", "")
	writeLayer(t, root, "sites/acme/config.json", `{
		"baseUrl": "https://acme.com",
		"timeouts": {"navigation": 1, "action": 1, "assertion": 1}
	}`)

	_, err := NewResolver(root).Resolve("acme", "")
	require.NoError(t, err)
}

func TestResolveMalformedLayerIsFatal(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", `{"timeouts": `)
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://acme.com"}`)

	_, err := NewResolver(root).Resolve("acme", "")
	var parseErr *entities.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, filepath.Join(root, "framework", "defaults.json"), parseErr.Path)
}

func TestResolveMissingEnvLayerIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://acme.com"}`)

	cfg, err := NewResolver(root).Resolve("acme", "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", cfg.BaseURL)
}

func TestResolveInterpolatesEnvironment(t *testing.T) {
	t.Setenv("PAGEFORGE_TEST_PASSWORD", "hunter2")

	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)
	writeLayer(t, root, "sites/acme/config.json", `{
		"baseUrl": "${PAGEFORGE_TEST_BASE:-https://acme.com}",
		"credentials": {"username": "bot", "password": "${PAGEFORGE_TEST_PASSWORD}"}
	}`)

	cfg, err := NewResolver(root).Resolve("acme", "")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", cfg.BaseURL)
	require.NotNil(t, cfg.Credentials)
	assert.Equal(t, "hunter2", cfg.Credentials.Password)
}

func TestResolveMissingVariableAborts(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)
	writeLayer(t, root, "sites/acme/config.json", `{
		"credentials": {"username": "bot", "password": "${PAGEFORGE_TEST_NOT_SET}"}
	}`)

	_, err := NewResolver(root).Resolve("acme", "")
	var missing *entities.MissingVariableError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "PAGEFORGE_TEST_NOT_SET", missing.Name)
}

func TestResolveValidationFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "nope"}`)

	_, err := NewResolver(root).Resolve("acme", "")
	var verr *entities.ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestResolveRereadsLayersEachCall(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "framework/defaults.json", defaultsLayer)
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://one.acme.com"}`)

	resolver := NewResolver(root)
	cfg, err := resolver.Resolve("acme", "")
	require.NoError(t, err)
	assert.Equal(t, "https://one.acme.com", cfg.BaseURL)

	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://two.acme.com"}`)
	cfg, err = resolver.Resolve("acme", "")
	require.NoError(t, err)
	assert.Equal(t, "https://two.acme.com", cfg.BaseURL)
}

func TestIsEnabledDefaultsToTrue(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://acme.com"}`)

	status := NewResolver(root).IsEnabled("acme", "staging")
	assert.True(t, status.Enabled)
	assert.Empty(t, status.Reason)
}

func TestIsEnabledSiteLayerWins(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "sites/acme/config.json", `{"enabled": false}`)
	writeLayer(t, root, "sites/acme/env/staging.json", `{"enabled": true}`)

	status := NewResolver(root).IsEnabled("acme", "staging")
	assert.False(t, status.Enabled)
	assert.Contains(t, status.Reason, "site layer")
}

func TestIsEnabledEnvironmentLayer(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "sites/acme/config.json", `{"enabled": true}`)
	writeLayer(t, root, "sites/acme/env/staging.json", `{"enabled": false}`)

	status := NewResolver(root).IsEnabled("acme", "staging")
	assert.False(t, status.Enabled)
	assert.Contains(t, status.Reason, "environment layer")

	// Without the environment the env layer is never consulted.
	assert.True(t, NewResolver(root).IsEnabled("acme", "").Enabled)
}

func TestIsEnabledLocalLayer(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "sites/acme/config.json", `{"baseUrl": "https://acme.com"}`)
	writeLayer(t, root, "local.json", `{"enabled": false}`)

	status := NewResolver(root).IsEnabled("acme", "")
	assert.False(t, status.Enabled)
	assert.Contains(t, status.Reason, "local layer")
}

func TestSitesListsConfiguredSites(t *testing.T) {
	root := t.TempDir()
	writeLayer(t, root, "sites/zeta/config.json", `{}`)
	writeLayer(t, root, "sites/acme/config.json", `{}`)
	// A directory without config.json is not a site.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sites", "stub"), 0o755))

	sites, err := NewResolver(root).Sites()
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "zeta"}, sites)
}

func TestSitesNoDirectory(t *testing.T) {
	sites, err := NewResolver(t.TempDir()).Sites()
	require.NoError(t, err)
	assert.Empty(t, sites)
}
