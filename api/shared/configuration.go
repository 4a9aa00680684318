package shared

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const CONFIG_PREFIX = "DAYCARE"

const (
	StoreBackendFirestore = "firestore"
	StoreBackendPostgres  = "postgres"
	StoreBackendMemory    = "memory"
)

type AppConfig struct {
	Port         string `envconfig:"PORT" default:"5000"`
	StoreBackend string `split_words:"true" default:"firestore"`
	DotEnvFile   string `split_words:"true" default:".env"`

	GcpProjectID           string `split_words:"true"`
	FirebaseServiceAccount string `split_words:"true" default:"config/firebaseKey.json"`

	PgUsername             string `split_words:"true" default:"postgres"`
	PgPassword             string `split_words:"true" default:"postgres"`
	PgContactPoint         string `split_words:"true" default:"127.0.0.1"`
	PgContactPort          string `split_words:"true" default:"5432"`
	PgDbName               string `split_words:"true" default:"daycare"`
	SqlMigrationsSourceDir string `split_words:"true" default:"sql"`
	StartupMigration       bool   `split_words:"true" default:"false"`

	MaxInSetSize   int    `split_words:"true" default:"30"`
	ReportTimezone string `split_words:"true" default:"UTC"`
}

// InitAppConfiguration reads the environment, after loading DotEnvFile when
// it exists. Variables already set in the environment win over the file.
func InitAppConfiguration() (*AppConfig, error) {
	config := &AppConfig{}
	if err := envconfig.Process(CONFIG_PREFIX, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse env vars")
	}

	if err := godotenv.Load(config.DotEnvFile); err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "failed to load %s", config.DotEnvFile)
		}
		return config, config.check()
	}

	if err := envconfig.Process(CONFIG_PREFIX, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse env vars")
	}
	return config, config.check()
}

func (c *AppConfig) check() error {
	switch c.StoreBackend {
	case StoreBackendFirestore, StoreBackendPostgres, StoreBackendMemory:
	default:
		return errors.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.MaxInSetSize <= 0 {
		return errors.Errorf("max in set size must be positive, got %d", c.MaxInSetSize)
	}
	return nil
}
