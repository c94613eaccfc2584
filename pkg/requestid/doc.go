// Package requestid tags every HTTP request with a correlation id.
//
// Middleware accepts a client-supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], otherwise it generates a UUID. The id is
// stored in the request context, echoed in the response header and added to
// log records through LoggerExtractor.
package requestid
