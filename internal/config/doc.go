// Package config loads and validates the TOML configuration shared by the
// viralclip daemon and CLI.
//
// Load resolves the config path (explicit flag, then the user config dir,
// then a project-local file), decodes over repository defaults, expands
// home-relative paths, and validates the result. A missing config file is not
// an error; defaults apply.
package config
