// Package redis connects to an optional Redis server used as the shared
// rate-limit store when several landing instances run behind a balancer.
//
//	cfg, err := config.Load[redis.Config]()
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		...
//		defer client.Close()
//	}
//
// Healthcheck adapts the client into a readiness probe.
package redis
