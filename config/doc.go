// Package config loads configuration documents into data containers.
//
// The package uses an interface-based design with four extension points:
//   - Codec: converts between serialized documents and raw values
//   - DataFetcher: retrieves raw config data (file, env, etc.)
//   - Defaulter: fills in missing values after loading
//   - Validator: checks the data after defaults are applied
//
// DefaultValues and RequiredPaths are the bundled Defaulter and Validator.
// Codecs maps format names and file extensions to the codecs under
// config/parser.
//
// # Path Navigation
//
// The Provider function accepts a path in the keypath syntax that selects a
// section of the document:
//
//	`\.services\.api`    -> config["services"]["api"]
//	`\.servers\[0\]`     -> config["servers"][0]
//	""                   -> entire document
//
// # Example
//
//	provider := config.Provider(`\.services\.api`,
//	    config.WithDefaulter(config.DefaultValues{`\.timeout`: 30}),
//	    config.WithValidator(config.RequiredPaths{`\.base_url`}),
//	)
//	cfg, err := provider(yamlparser.NewParser(), fetcher)
//
// # Components
//
// ComponentProvider loads a component directory described by a meta
// document; see package component.
package config
