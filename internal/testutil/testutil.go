package testutil

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/meucoracao/internal/api"
	"github.com/dom/meucoracao/internal/config"
	"github.com/dom/meucoracao/internal/repository"
	"github.com/dom/meucoracao/internal/repository/gormrepo"
	"github.com/dom/meucoracao/internal/repository/mongorepo"
	"github.com/dom/meucoracao/internal/service"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcMongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a freshly created and migrated PostgreSQL database.
type TestDB struct {
	DB  *gorm.DB
	DSN string
}

var (
	pgOnce      sync.Once
	pgContainer *tcPostgres.PostgresContainer
	pgErr       error

	mongoOnce      sync.Once
	mongoContainer *tcMongo.MongoDBContainer
	mongoErr       error
)

// The containers are shared by every test in the package and removed by the
// testcontainers reaper when the test binary exits.
func sharedPostgres(ctx context.Context) (*tcPostgres.PostgresContainer, error) {
	pgOnce.Do(func() {
		pgContainer, pgErr = tcPostgres.Run(ctx,
			"postgres:16-alpine",
			tcPostgres.WithDatabase("test_meucoracao"),
			tcPostgres.WithUsername("test"),
			tcPostgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
	})
	return pgContainer, pgErr
}

func sharedMongo(ctx context.Context) (*tcMongo.MongoDBContainer, error) {
	mongoOnce.Do(func() {
		mongoContainer, mongoErr = tcMongo.Run(ctx, "mongo:7")
	})
	return mongoContainer, mongoErr
}

// NewTestDB creates an empty PostgreSQL database with every table migrated.
// The test is skipped when no container runtime is available.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := sharedPostgres(ctx)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	adminDSN, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := gorm.Open(gormPostgres.Open(adminDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	err = admin.Exec("CREATE DATABASE " + name).Error
	_ = gormrepo.Close(admin)
	if err != nil {
		t.Fatalf("failed to create database %s: %v", name, err)
	}

	u, err := url.Parse(adminDSN)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	u.Path = "/" + name
	dsn := u.String()

	db, err := gormrepo.NewConnection(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		_ = gormrepo.Close(db)
	})

	return &TestDB{DB: db, DSN: dsn}
}

// MongoTestDB is a fresh MongoDB database with the indexes in place.
type MongoTestDB struct {
	DB  *mongo.Database
	URI string
}

// NewMongoDB creates an empty MongoDB database. The test is skipped when no
// container runtime is available.
func NewMongoDB(t *testing.T) *MongoTestDB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := sharedMongo(ctx)
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	base, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	u.Path = "/test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	uri := u.String()

	db, err := mongorepo.NewConnection(ctx, uri)
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = mongorepo.Close(context.Background(), db)
	})

	return &MongoTestDB{DB: db, URI: uri}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		ShutdownTimeout:    5 * time.Second,
		LogLevel:           "debug",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpiration:      time.Hour,
		BcryptCost:         bcrypt.MinCost,
		CORSAllowedOrigins: []string{"*"},
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server on a fresh database.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, TestConfig())
}

func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	repos := gormrepo.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg)
	router := api.NewRouter(services, cfg, zaptest.NewLogger(t))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}
}

// URL returns the full URL for a path on the test server.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"appointments",
		"allergies",
		"medications",
		"reports",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}
