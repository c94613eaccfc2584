package redis

import "errors"

var (
	ErrNotConfigured   = errors.New("redis: REDIS_URL not set")
	ErrInvalidURL      = errors.New("redis: invalid connection URL")
	ErrNotReady        = errors.New("redis: server not ready")
	ErrHealthcheckFail = errors.New("redis: ping failed")
)
