package main

import (
	"context"
	"fmt"
	"os"

	"github.com/littleones/daycare-api/common/generator"
	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"
	"github.com/littleones/daycare-api/seeder/fixtures"
	. "github.com/littleones/daycare-api/seeder/shared"

	"firebase.google.com/go"
	"github.com/facebookgo/inject"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

var (
	ctx             = context.Background()
	logger          = log.NewLogger("seeder")
	config          *AppConfig
	db              *gorm.DB
	recordStore     store.Store
	stringGenerator = &generator.StringGenerator{}
	seeder          = &fixtures.Seeder{}
)

func init() {
	checkErrAndExit(initAppConfiguration())
	checkErrAndExit(initStore())
	checkErrAndExit(initApplicationGraph())
}

func initAppConfiguration() (err error) {
	config, err = InitAppConfiguration()
	return
}

func initStore() error {
	switch config.StoreBackend {
	case "firestore":
		opt := option.WithCredentialsFile(config.FirebaseServiceAccount)
		firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: config.GcpProjectID}, opt)
		if err != nil {
			return errors.Wrap(err, "error initializing firebase app")
		}
		client, err := firebaseApp.Firestore(ctx)
		if err != nil {
			return errors.Wrap(err, "error getting Firestore client")
		}
		recordStore = store.NewFirestoreStore(client, store.DefaultMaxInSetSize)
	case "postgres":
		var err error
		db, err = gorm.Open("postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			config.PgContactPoint,
			config.PgContactPort,
			config.PgUsername,
			config.PgPassword,
			config.PgDbName))
		if err != nil {
			return errors.Wrap(err, "failed to connect to postgres")
		}
		db.SetLogger(logger)
		recordStore = &store.PostgresStore{}
	default:
		return errors.Errorf("cannot seed store backend %q", config.StoreBackend)
	}
	return nil
}

func initApplicationGraph() error {
	g := inject.Graph{}
	objects := []*inject.Object{
		{Value: recordStore},
		{Value: stringGenerator},
		{Value: logger},
		{Value: seeder},
	}
	if db != nil {
		objects = append(objects, &inject.Object{Value: db})
	}
	if err := g.Provide(objects...); err != nil {
		return errors.Wrap(err, "failed to provide")
	}
	if err := g.Populate(); err != nil {
		return errors.Wrap(err, "failed to populate")
	}
	return nil
}

func main() {
	err := seeder.Seed(ctx, fixtures.Options{
		Children: config.SeedChildren,
		Staff:    config.SeedStaff,
		Users:    config.SeedUsers,
		Days:     config.SeedDays,
		Random:   config.SeedRandom,
	})
	checkErrAndExit(err)
}

func checkErrAndExit(err error) {
	if err == nil {
		return
	}
	logger.Err(ctx, "seeding failed", "err", err)
	fmt.Println(err.Error())
	os.Exit(1)
}
