// Package clientip resolves the originating client address of HTTP requests
// behind CDNs and reverse proxies. Middleware stores the address in the
// request context where the rate limiter and logger pick it up.
package clientip
