package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/paperbot/core/bootstrap"
	coreconfig "github.com/m3rciful/paperbot/core/config"
	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/internal/catalog"
)

func testConfig() *Config {
	cfg := &Config{
		Config: coreconfig.Config{
			Telegram: coreconfig.TelegramConfig{Token: "t", AdminID: 1000},
			Health:   coreconfig.HealthConfig{Listen: "127.0.0.1:0"},
		},
		Papers: PapersConfig{BaseURL: "https://x/papers/"},
	}
	if err := cfg.Normalize(); err != nil {
		panic(err)
	}
	return cfg
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Papers.BaseURL)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, coreconfig.DefaultHealthListen, cfg.Health.Listen)
	assert.Same(t, &cfg.Config, cfg.CoreConfig())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
telegram:
  token: "1:x"
  admin_id: 55
papers:
  base_url: "https://cdn.example/papers/"
  seed_file: " seed.yaml "
database:
  host: db
  user: bot
  name: papers
`)
	t.Setenv("BASE_URL", "https://env.example/papers")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(55), cfg.Telegram.AdminID)
	assert.Equal(t, "https://env.example/papers", cfg.Papers.BaseURL)
	assert.Equal(t, "seed.yaml", cfg.Papers.SeedFile)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNormalizeTrimsBaseURL(t *testing.T) {
	assert.Equal(t, "https://x/papers", testConfig().Papers.BaseURL)
}

func TestSeedBuiltinCatalog(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, a.Catalog().Len())

	require.NoError(t, a.Seed(context.Background(), &bootstrap.Result{}))
	assert.Equal(t, len(catalog.DefaultEntries()), a.Catalog().Len())
}

func TestSeedFromFile(t *testing.T) {
	cfg := testConfig()
	cfg.Papers.SeedFile = writeFile(t, "seed.yaml", "\"12\":\n  Physics:\n    \"2024\": class12/physics/2024.pdf\n")
	a, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, a.Seed(context.Background(), nil))
	assert.Equal(t, 1, a.Catalog().Len())
	path, ok := a.Catalog().Lookup("12", "Physics", "2024")
	require.True(t, ok)
	assert.Equal(t, "class12/physics/2024.pdf", path)
}

func TestSeedFileMissing(t *testing.T) {
	cfg := testConfig()
	cfg.Papers.SeedFile = filepath.Join(t.TempDir(), "nope.yaml")
	a, err := New(cfg)
	require.NoError(t, err)
	assert.Error(t, a.Seed(context.Background(), nil))
}

func TestTelegramRunOptions(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	assert.Same(t, &a.cfg.Config, opts.Config)
	assert.Len(t, opts.Routes, 6)
	assert.NotEmpty(t, opts.Middlewares)
	assert.NotNil(t, opts.OnStart)
	assert.NotNil(t, opts.OnStop)
	assert.Len(t, opts.Registry.ListCallbacks(), 11)
}

func TestStatusHandler(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)
	require.NoError(t, a.Seed(context.Background(), nil))

	srv := httptest.NewServer(a.StatusHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.JSONEq(t, `{"status":"healthy","bot":"question_paper_bot"}`, string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), "paperbot_catalog_papers 68")
	assert.Contains(t, string(body), "paperbot_telegram_sessions 0")
}

func TestStartAndStopBackgroundLoops(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, a.start(context.Background(), tg.Runtime{}))
	require.NoError(t, a.stop(context.Background(), tg.Runtime{}))
}

func TestStartFailsOnBusyPort(t *testing.T) {
	busy := httptest.NewServer(http.NotFoundHandler())
	defer busy.Close()

	cfg := testConfig()
	cfg.Health.Listen = busy.Listener.Addr().String()
	a, err := New(cfg)
	require.NoError(t, err)
	assert.Error(t, a.start(context.Background(), tg.Runtime{}))
}
