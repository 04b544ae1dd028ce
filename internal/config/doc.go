// Package config loads process configuration from defaults, an optional
// YAML file and the environment, in that order of precedence, and
// validates the result before any transport starts.
package config
