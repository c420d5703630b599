package database

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m3rciful/paperbot/core/logger"
)

const previewLimit = 6

// migrationFile is one *.up.sql file and the version golang-migrate reads
// from its numeric prefix.
type migrationFile struct {
	name    string
	version uint64
}

// RunMigrations waits for Postgres, then applies every pending up migration
// in cfg.MigrationsDir and logs which files moved the schema forward.
func RunMigrations(cfg Config) error {
	dsn := cfg.URL()
	if err := WaitForPostgres(dsn, DefaultReadyTimeout); err != nil {
		migrateFailed("wait", err, 0)
		return fmt.Errorf("database not ready: %w", err)
	}

	dir, err := filepath.Abs(migrationsDir(cfg.MigrationsDir))
	if err != nil {
		migrateFailed("resolve", err, 0)
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	files := upFiles(dir)
	logger.MIG.Debug("db.migrate.resolve",
		slog.String("path", dir),
		slog.Int("files", len(files)),
		slog.String("preview", logger.Preview(names(files), previewLimit)),
	)

	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		migrateFailed("init", err, 0)
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	from, _, _ := m.Version()
	start := time.Now()
	upErr := m.Up()
	took := time.Since(start)
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		migrateFailed("apply", upErr, took)
		return fmt.Errorf("migration execution failed: %w", upErr)
	}
	to, _, _ := m.Version()

	applied := appliedBetween(files, uint64(from), uint64(to))
	logger.MIG.Info("db.migrate.summary",
		slog.Uint64("from_ver", uint64(from)),
		slog.Uint64("to_ver", uint64(to)),
		slog.Int("applied", len(applied)),
		slog.String("preview", logger.Preview(names(applied), previewLimit)),
		slog.Duration("duration", took),
	)
	return nil
}

func migrateFailed(step string, err error, took time.Duration) {
	logger.MIG.Error("db.migrate.fail",
		slog.String("step", step),
		slog.String("err", err.Error()),
		slog.Duration("duration", took),
	)
}

func migrationsDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return DefaultMigrationsDir
	}
	return dir
}

// upFiles lists the up migrations in dir ordered by version. An unreadable
// dir yields nothing and lets golang-migrate report the real error.
func upFiles(dir string) []migrationFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		files = append(files, migrationFile{name: e.Name(), version: fileVersion(e.Name())})
	}
	slices.SortFunc(files, func(a, b migrationFile) int {
		return cmp.Or(cmp.Compare(a.version, b.version), strings.Compare(a.name, b.name))
	})
	return files
}

func fileVersion(name string) uint64 {
	prefix, _, _ := strings.Cut(name, "_")
	v, _ := strconv.ParseUint(prefix, 10, 64)
	return v
}

// appliedBetween returns the files with from < version <= to.
func appliedBetween(files []migrationFile, from, to uint64) []migrationFile {
	var out []migrationFile
	for _, f := range files {
		if f.version > from && f.version <= to {
			out = append(out, f)
		}
	}
	return out
}

func names(files []migrationFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.name
	}
	return out
}
