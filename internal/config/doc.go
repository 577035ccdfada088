// Package config loads and validates chlog's TOML configuration.
//
// Configuration resolves in order: an explicit --config path, then
// ~/.config/chlog/config.toml, then ./chlog.toml, then repository defaults.
// Paths support ~ expansion and are normalized to absolute form before use.
package config
