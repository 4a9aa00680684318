package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/littleones/daycare-api/api/children"
	"github.com/littleones/daycare-api/api/reports"
	. "github.com/littleones/daycare-api/api/shared"
	"github.com/littleones/daycare-api/api/staff"
	"github.com/littleones/daycare-api/api/users"
	"github.com/littleones/daycare-api/common/generator"
	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"
	"github.com/littleones/daycare-api/common/store/migrations"
	"github.com/littleones/daycare-api/common/validation"

	"firebase.google.com/go"
	"github.com/facebookgo/inject"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

var (
	ctx             = context.Background()
	logger          = log.NewLogger("daycare")
	config          *AppConfig
	db              *gorm.DB
	recordStore     store.Store
	stringGenerator = &generator.StringGenerator{}
	validator       = validation.New()

	childService  = &children.ChildService{}
	staffService  = &staff.StaffService{}
	userService   = &users.UserService{}
	reportService = &reports.ReportService{}

	childrenHandlerFactory = &children.HandlerFactory{}
	staffHandlerFactory    = &staff.HandlerFactory{}
	usersHandlerFactory    = &users.HandlerFactory{}
	reportsHandlerFactory  = &reports.HandlerFactory{}
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
	case StoreBackendFirestore:
		return initFirestore()
	case StoreBackendPostgres:
		return initPostgresConnection()
	default:
		recordStore = &store.MemoryStore{MaxInSetSize: config.MaxInSetSize}
		return nil
	}
}

func initFirestore() error {
	opt := option.WithCredentialsFile(config.FirebaseServiceAccount)
	firebaseConfig := &firebase.Config{ProjectID: config.GcpProjectID}

	firebaseApp, err := firebase.NewApp(ctx, firebaseConfig, opt)
	if err != nil {
		return errors.Wrap(err, "error initializing firebase app")
	}

	client, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return errors.Wrap(err, "error getting Firestore client")
	}

	recordStore = store.NewFirestoreStore(client, config.MaxInSetSize)
	return nil
}

func initPostgresConnection() (err error) {
	connectString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.PgContactPoint,
		config.PgContactPort,
		config.PgUsername,
		config.PgPassword,
		config.PgDbName)
	db, err = gorm.Open("postgres", connectString)
	if err != nil {
		return errors.Wrap(err, "failed to connect to postgres")
	}

	db.LogMode(true)
	db.SetLogger(logger)
	recordStore = &store.PostgresStore{MaxInSetSize: config.MaxInSetSize}
	return nil
}

func initApplicationGraph() error {
	g := inject.Graph{}
	objects := []*inject.Object{
		{Value: config},
		{Value: recordStore},
		{Value: stringGenerator},
		{Value: validator},
		{Value: logger},
		{Value: childService},
		{Value: staffService},
		{Value: userService},
		{Value: reportService},
		{Value: childrenHandlerFactory},
		{Value: staffHandlerFactory},
		{Value: usersHandlerFactory},
		{Value: reportsHandlerFactory},
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
	if config.StoreBackend == StoreBackendPostgres && config.StartupMigration {
		applySqlSchemaMigrations(ctx)
	}
	startHttpServer(ctx)
}

func applySqlSchemaMigrations(ctx context.Context) {
	logger.Info(ctx, "applying sql schema migrations")
	state, err := migrations.Migrate(migrations.Schema{
		Dir: config.SqlMigrationsSourceDir,
		DatabaseURL: fmt.Sprintf("postgres://%v:%v/%v?sslmode=disable&user=%s&password=%s",
			config.PgContactPoint, config.PgContactPort, config.PgDbName, config.PgUsername, config.PgPassword),
	})
	checkErrAndExit(err)
	if !state.Applied {
		logger.Info(ctx, "no new migrations applied", "version", state.Version)
		return
	}
	logger.Info(ctx, "sql schema migrated", "version", state.Version)
}

func startHttpServer(ctx context.Context) {
	childrenOpts := []kithttp.ServerOption{
		kithttp.ServerErrorLogger(logger),
		kithttp.ServerErrorEncoder(children.EncodeError),
	}

	staffOpts := []kithttp.ServerOption{
		kithttp.ServerErrorLogger(logger),
		kithttp.ServerErrorEncoder(staff.EncodeError),
	}

	usersOpts := []kithttp.ServerOption{
		kithttp.ServerErrorLogger(logger),
		kithttp.ServerErrorEncoder(users.EncodeError),
	}

	reportsOpts := []kithttp.ServerOption{
		kithttp.ServerErrorLogger(logger),
		kithttp.ServerErrorEncoder(reports.EncodeError),
	}

	router := mux.NewRouter()

	RegisterOperationalRoutes(router)

	apiRouter := router.PathPrefix("/api").Subrouter()

	apiRouter.Handle("/children", childrenHandlerFactory.Add(childrenOpts)).Methods(http.MethodPost)
	apiRouter.Handle("/children", childrenHandlerFactory.List(childrenOpts)).Methods(http.MethodGet)

	apiRouter.Handle("/staff", staffHandlerFactory.Add(staffOpts)).Methods(http.MethodPost)
	apiRouter.Handle("/staff", staffHandlerFactory.List(staffOpts)).Methods(http.MethodGet)

	apiRouter.Handle("/users", usersHandlerFactory.Add(usersOpts)).Methods(http.MethodPost)
	apiRouter.Handle("/users", usersHandlerFactory.List(usersOpts)).Methods(http.MethodGet)

	apiRouter.Handle("/report/general", reportsHandlerFactory.General(reportsOpts)).Methods(http.MethodGet)
	apiRouter.Handle("/report/daily", reportsHandlerFactory.Daily(reportsOpts)).Methods(http.MethodGet)

	logger.Info(ctx, "server listening", "port", config.Port, "store", config.StoreBackend)
	checkErrAndExit(http.ListenAndServe("0.0.0.0:"+config.Port, logger.RequestLoggerMiddleware(router)))
}

func checkErrAndExit(err error) {
	if err == nil {
		return
	}
	fmt.Println(err.Error())
	os.Exit(1)
}
