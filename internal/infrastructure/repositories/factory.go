package repositories

import (
	"context"

	"streamvault/internal/core/ports"
	"streamvault/internal/infrastructure/repositories/memory"
	mongorepo "streamvault/internal/infrastructure/repositories/mongo"
	"streamvault/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RepositoryFactory creates repositories backed by MongoDB when it is
// configured and reachable, falling back to in-memory storage otherwise.
type RepositoryFactory struct {
	useMongo bool
	db       *mongo.Database
	cfg      *config.Config
	logger   *zap.SugaredLogger
}

func NewRepositoryFactory(cfg *config.Config, logger *zap.SugaredLogger) (*RepositoryFactory, error) {
	factory := &RepositoryFactory{
		useMongo: cfg.Mongo.Enabled,
		cfg:      cfg,
		logger:   logger,
	}

	if cfg.Mongo.Enabled {
		db, err := mongorepo.NewMongoDatabase(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout, logger)
		if err != nil {
			logger.Warnw("failed to connect to MongoDB, falling back to memory repositories",
				"error", err,
			)
			factory.useMongo = false
		} else {
			factory.db = db
			logger.Info("using MongoDB repositories")
		}
	}

	if !factory.useMongo {
		logger.Info("using memory repositories")
	}

	return factory, nil
}

func (f *RepositoryFactory) CreateStreamRepository() ports.StreamRepository {
	if f.useMongo && f.db != nil {
		return mongorepo.NewMongoStreamRepository(f.db)
	}
	return memory.NewMemoryStreamRepository()
}

func (f *RepositoryFactory) CreateUserRepository() ports.UserRepository {
	if f.useMongo && f.db != nil {
		return mongorepo.NewMongoUserRepository(f.db)
	}
	return memory.NewMemoryUserRepository()
}

// Close disconnects the MongoDB client if one is in use.
func (f *RepositoryFactory) Close() error {
	if f.db != nil {
		return mongorepo.CloseMongoDatabase(f.db, f.cfg.Mongo.ConnectTimeout)
	}
	return nil
}

// HealthCheck pings the store when one is attached.
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	if f.useMongo && f.db != nil {
		return f.db.Client().Ping(ctx, nil)
	}
	return nil
}
