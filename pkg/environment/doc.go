// Package environment propagates the application environment (development,
// staging, production) through request contexts and structured logs.
//
//	r.Use(environment.Middleware(environment.Parse(cfg.Env)))
//
//	if environment.IsProduction(ctx) {
//		// production-only behaviour
//	}
package environment
