// Package config assembles the sync client's configuration from three
// sources — command-line flags, environment variables, and an optional JSON
// file — merged in that order of precedence with mergo and validated before
// use. The merged [StructuredConfig] is then narrowed to the [ClientConfig]
// view consumed by the rest of the application.
package config
