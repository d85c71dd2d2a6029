package config

import (
	"fmt"
	"net"

	"github.com/redis/rueidis"

	apperrors "task-manager.com/task-manager/internal/errors"
)

const defaultRedisPort = "6379"

func NewRedisClient(cfg Config) (rueidis.Client, error) {
	addr := cfg.DatabaseHost
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, defaultRedisPort)
	}

	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
			Username:    cfg.DatabaseUser,
			Password:    cfg.DatabasePassword,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create redis client: %v", apperrors.ErrStorageUnavailable, err)
	}

	return redisClient, nil
}
