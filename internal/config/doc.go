// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, config.yaml, environment variables with
// the TUBETEXT_ prefix). It provides type-safe access to the settings of the
// HTTP server, the LLM provider, and the history store while keeping
// configuration details separate from business logic.
package config
