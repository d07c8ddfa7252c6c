// Package config loads restkit configuration structs from YAML files
// and the environment.
//
// Load resolves a config.yml and an optional .env file, binds
// environment variables over the file contents, and unmarshals the
// merged result into the target struct (using mapstructure tags):
//
//	var cfg struct {
//	    Client httpclient.Config `mapstructure:"client"`
//	    Logger logger.Config     `mapstructure:"logger"`
//	}
//	err := config.Load("my-service", &cfg)
//
// Environment variables win over file values: CLIENT_BASE_URL overrides
// the client.base_url key.
package config
