package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// MigrateUp applies every embedded migration of the given dialect. A dirty
// schema is forced back to the previous version and retried once.
func MigrateUp(db *sql.DB, dialect string) error {
	dir := path.Join("migrations", dialect)

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not create source driver: %v", err)
	}

	driver, driverName, err := newDriver(db, dialect)
	if err != nil {
		return fmt.Errorf("could not create migration driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migration: %v", err)
	}

	err = m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	var dirtyErr migrate.ErrDirty
	if !errors.As(err, &dirtyErr) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	prev, err := previousVersion(migrationsFS, dir, dirtyErr.Version)
	if err != nil {
		return err
	}
	log.Printf("database dirty at version %d, forcing back to %d", dirtyErr.Version, prev)
	if ferr := m.Force(int(prev)); ferr != nil {
		return fmt.Errorf("failed to force to version %d: %w", prev, ferr)
	}
	if err2 := m.Up(); err2 != nil && !errors.Is(err2, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed after force: %w", err2)
	}
	return nil
}

func newDriver(db *sql.DB, dialect string) (database.Driver, string, error) {
	switch dialect {
	case DialectMySQL:
		d, err := mysql.WithInstance(db, &mysql.Config{})
		return d, "mysql", err
	case DialectPostgres:
		d, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		return d, "pgx5", err
	default:
		return nil, "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// previousVersion finds the migration version right before dirtyVersion.
func previousVersion(fsys fs.ReadDirFS, dir string, dirtyVersion int) (uint64, error) {
	entries, readErr := fsys.ReadDir(dir)
	if readErr != nil {
		return 0, fmt.Errorf("dirty at %d but failed to read migrations directory: %w", dirtyVersion, readErr)
	}

	var versions []uint64
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		// <version>_<description>.up.sql
		v, parseErr := strconv.ParseUint(strings.SplitN(name, "_", 2)[0], 10, 64)
		if parseErr != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	for i, v := range versions {
		if v == uint64(dirtyVersion) && i > 0 {
			return versions[i-1], nil
		}
	}
	return 0, fmt.Errorf("could not determine previous version before %d", dirtyVersion)
}
