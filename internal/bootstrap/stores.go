package bootstrap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"steward/socialhub/internal/config"
	"steward/socialhub/internal/model"
	"steward/socialhub/internal/repository"
)

// Stores is the set of backends every entry point works against.
type Stores struct {
	State    repository.StateStore
	Accounts repository.SocialAccountRepository
	Brands   repository.BrandRepository
	Content  repository.ContentRepository
	Durable  bool

	closers []func() error
}

// NewStores is the only place a backend is chosen. With no Postgres host
// configured every store lives in process memory; otherwise accounts,
// brands and content use Postgres, and correlation state uses Redis when a
// Redis host is configured, Postgres when not.
func NewStores(cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	if !cfg.DurableConfigured() {
		logger.Warn("no durable database configured, using in-memory stores")
		return &Stores{
			State:    repository.NewMemoryStateStore(),
			Accounts: repository.NewMemorySocialAccountRepository(),
			Brands:   repository.NewMemoryBrandRepository(),
			Content:  repository.NewMemoryContentRepository(),
		}, nil
	}

	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	s := &Stores{
		Accounts: repository.NewPGSocialAccountRepository(db),
		Brands:   repository.NewPGBrandRepository(db),
		Content:  repository.NewPGContentRepository(db),
		Durable:  true,
	}
	s.closers = append(s.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		logger.Info("database migration completed")
	}

	if cfg.RedisConfigured() {
		client, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.closers = append(s.closers, client.Close)
		s.State = repository.NewRedisStateStore(client)
		logger.Info("using Redis state store")
	} else {
		s.State = repository.NewPGStateStore(db)
		logger.Info("using Postgres state store")
	}
	return s, nil
}

func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
