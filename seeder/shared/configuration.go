package shared

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// The seeder shares the store settings of the api.
const CONFIG_PREFIX = "DAYCARE"

type AppConfig struct {
	StoreBackend string `split_words:"true" default:"firestore"`
	DotEnvFile   string `split_words:"true" default:".env"`

	GcpProjectID           string `split_words:"true"`
	FirebaseServiceAccount string `split_words:"true" default:"config/firebaseKey.json"`

	PgUsername     string `split_words:"true" default:"postgres"`
	PgPassword     string `split_words:"true" default:"postgres"`
	PgContactPoint string `split_words:"true" default:"127.0.0.1"`
	PgContactPort  string `split_words:"true" default:"5432"`
	PgDbName       string `split_words:"true" default:"daycare"`

	SeedChildren int   `split_words:"true" default:"8"`
	SeedStaff    int   `split_words:"true" default:"4"`
	SeedUsers    int   `split_words:"true" default:"4"`
	SeedDays     int   `split_words:"true" default:"15"`
	SeedRandom   int64 `split_words:"true" default:"0"`
}

func InitAppConfiguration() (*AppConfig, error) {
	config := &AppConfig{}
	if err := envconfig.Process(CONFIG_PREFIX, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse env vars")
	}

	if err := godotenv.Load(config.DotEnvFile); err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "failed to load %s", config.DotEnvFile)
		}
		return config, nil
	}

	if err := envconfig.Process(CONFIG_PREFIX, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse env vars")
	}
	return config, nil
}
