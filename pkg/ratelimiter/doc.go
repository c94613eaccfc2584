// Package ratelimiter throttles lead submissions with a token bucket.
//
// A Bucket holds Capacity tokens and gains RefillRate tokens every
// RefillInterval. Bucket state lives in a Store: MemoryStore for a single
// instance, RedisStore when several instances must share limits.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ClientIP)).
//		Post("/api/submit-valuation", submit)
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited response and Retry-After on denials.
// Store failures let the request through unless WithErrorHandler says
// otherwise.
package ratelimiter
