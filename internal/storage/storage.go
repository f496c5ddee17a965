// Package storage opens the repository backend named by a database URL.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/meucoracao/internal/repository"
	"github.com/dom/meucoracao/internal/repository/gormrepo"
	"github.com/dom/meucoracao/internal/repository/mongorepo"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// Backend names the store selected for a database URL.
type Backend string

const (
	BackendMongo    Backend = "mongo"
	BackendPostgres Backend = "postgres"
)

// CloseFunc releases the connection opened by Open.
type CloseFunc func(ctx context.Context) error

func Detect(databaseURL string) (Backend, error) {
	switch {
	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		return BackendMongo, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme in %q", redact(databaseURL))
	}
}

// Open connects to databaseURL and returns the repositories for it.
func Open(ctx context.Context, databaseURL string, log *zap.Logger) (*repository.Repositories, CloseFunc, error) {
	backend, err := Detect(databaseURL)
	if err != nil {
		return nil, nil, err
	}

	switch backend {
	case BackendMongo:
		db, err := mongorepo.NewConnection(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to mongodb", zap.String("database", db.Name()))
		return mongorepo.NewRepositories(db), func(ctx context.Context) error {
			return mongorepo.Close(ctx, db)
		}, nil
	default:
		db, err := gormrepo.NewConnection(databaseURL, logger.Warn)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to postgres")
		return gormrepo.NewRepositories(db), func(context.Context) error {
			return gormrepo.Close(db)
		}, nil
	}
}

// redact hides credentials embedded in a URL before it is logged. Anything
// before the last "@" is treated as userinfo, with or without a scheme.
func redact(databaseURL string) string {
	prefix, rest := "", databaseURL
	if scheme, after, ok := strings.Cut(databaseURL, "://"); ok {
		prefix, rest = scheme+"://", after
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		return prefix + "***@" + rest[at+1:]
	}
	return databaseURL
}
