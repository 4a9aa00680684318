package migrations

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
)

// Schema locates the daycare sql files and the database they are applied to.
type Schema struct {
	Dir         string
	DatabaseURL string
}

// SchemaState is the outcome of Migrate.
type SchemaState struct {
	Version uint
	// Applied is false when the database was already up to date.
	Applied bool
}

// Migrate applies every pending up migration of schema.
func Migrate(schema Schema) (SchemaState, error) {
	state := SchemaState{}
	m, err := migrate.New(fmt.Sprintf("file://%s", schema.Dir), schema.DatabaseURL)
	if err != nil {
		return state, errors.Wrap(err, "failed to open schema migrations")
	}
	defer m.Close()

	switch err := m.Up(); err {
	case nil:
		state.Applied = true
	case migrate.ErrNoChange:
	default:
		return state, errors.Wrap(err, "failed to apply schema migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return state, errors.Wrap(err, "failed to read schema version")
	}
	if dirty {
		return state, errors.Errorf("schema version %d is dirty", version)
	}
	state.Version = version
	return state, nil
}
