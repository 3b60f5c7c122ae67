// Package config loads application configuration from an optional YAML file
// and LILUKA_-prefixed environment variables, then validates it.
package config
