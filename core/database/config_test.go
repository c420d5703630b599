package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledConfigKeepsZeroValues(t *testing.T) {
	var cfg Config
	cfg.Normalize()
	assert.False(t, cfg.Enabled())
	assert.Equal(t, Config{}, cfg)
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{Host: "db", User: "u", Password: "p", Name: "papers"}
	cfg.Normalize()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 4, cfg.MaxConnections)
	assert.Equal(t, DefaultMigrationsDir, cfg.MigrationsDir)

	assert.Equal(t, "user=u password=p host=db port=5432 dbname=papers sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/papers?sslmode=disable", cfg.URL())
}

func TestMigrationFileSelection(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000003_more.up.sql", "000001_create_papers.up.sql", "000001_create_papers.down.sql", "000002_index.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000009_dir.up.sql"), 0o755))

	files := upFiles(dir)
	assert.Equal(t, []string{"000001_create_papers.up.sql", "000002_index.up.sql", "000003_more.up.sql"}, names(files))
	assert.Equal(t, []string{"000002_index.up.sql", "000003_more.up.sql"}, names(appliedBetween(files, 1, 3)))
	assert.Empty(t, appliedBetween(files, 3, 3))
	assert.Equal(t, uint64(2), fileVersion("000002_index.up.sql"))
	assert.Zero(t, fileVersion("readme.up.sql"))
	assert.Nil(t, upFiles(filepath.Join(dir, "missing")))
}

func TestWaitForPostgresGivesUp(t *testing.T) {
	prev := readyPoll
	readyPoll = 10 * time.Millisecond
	t.Cleanup(func() { readyPoll = prev })

	cfg := Config{Host: "127.0.0.1", Port: "1", User: "u", Password: "p", Name: "papers"}
	cfg.Normalize()
	err := WaitForPostgres(cfg.DSN(), 50*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for database")
}
