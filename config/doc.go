// Package config holds the persisted, runtime-tunable settings of the
// caching engine.
//
// Settings are stored as YAML. Load overlays a file on Defaults, so a file
// only needs to name what it changes. String values may reference the
// environment as ${VAR}; a referenced variable that is not set is an error
// rather than an empty string. Use $$ for a literal dollar sign.
//
// Every error returned by this package is a platform error from
// github.com/jmgilman/go/errors carrying CodeInvalidConfig or CodeNotFound.
package config
