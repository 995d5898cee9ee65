// Package json provides a JSON codec for the config package.
package json
