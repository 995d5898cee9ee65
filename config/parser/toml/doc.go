// Package toml provides a TOML codec for the config package, built on
// github.com/pelletier/go-toml/v2.
package toml
