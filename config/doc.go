// Package config loads poetica settings from a TOML file.
//
// A missing file is not an error: Load returns the defaults. Paths may start
// with ~ and are expanded against the user's home directory. Command-line
// flags are layered on top with the With* options.
package config
