// Package api is the HTTP transport of the library: a chi router under /api/v1 that authenticates
// callers with bearer tokens, turns requests into commands and queries and renders their results
// as JSON in the shape the web front-end expects.
//
// Business rule violations map to 400, 403, 404 or 409 with the user facing message of the rule.
// Concurrency conflicts that survived all retries map to 503.
package api
