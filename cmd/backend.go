package cmd

import (
	"fmt"
	"time"

	config "task-manager.com/task-manager/internal/configs"
	apperrors "task-manager.com/task-manager/internal/errors"
	repository "task-manager.com/task-manager/internal/repositories"
)

func openRepository(cfg config.Config) (repository.TaskRepository, error) {
	switch {
	case cfg.Backend.IsSQL():
		repo, err := openSQLRepository(cfg)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case cfg.Backend == config.BackendHTTP:
		return repository.NewHTTPTaskRepository(
			cfg.DatabaseHost,
			cfg.DatabaseName,
			cfg.DatabaseUser,
			cfg.DatabasePassword,
			time.Duration(cfg.HTTPTimeoutSeconds)*time.Second,
		), nil
	case cfg.Backend == config.BackendRedis:
		client, err := config.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisTaskRepository(client, cfg.DatabaseName), nil
	}
	return nil, fmt.Errorf("%w: unsupported backend %q", apperrors.ErrConfiguration, cfg.Backend)
}

func openSQLRepository(cfg config.Config) (*repository.SQLTaskRepository, error) {
	db, err := config.NewDatabaseClient(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewSQLTaskRepository(db), nil
}
