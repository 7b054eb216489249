// Package config loads YAML configuration for the paperlike CLI, with
// ${ENV_VAR} expansion and sensible defaults when no file is present.
package config
