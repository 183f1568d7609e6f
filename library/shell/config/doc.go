// Package config loads the service configuration and builds the PostgreSQL connection pools
// and the event store from it.
//
// Values come from, in increasing priority: built-in defaults, an optional TOML file,
// a .env file and the process environment.
package config
