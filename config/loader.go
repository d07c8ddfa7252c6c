package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Options controls where Load looks for files.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, standard
	// locations are searched.
	ConfigFile string
	// EnvFile is an explicit .env file path. When empty, standard
	// locations are searched.
	EnvFile string
}

// Option is a functional option for Load.
type Option func(*Options)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// Load loads configuration for a service into cfg.
//
// Precedence, lowest to highest: config.yml, .env file, process
// environment. cfg must be a pointer to a struct with mapstructure tags.
func Load(serviceName string, cfg interface{}, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	configFile := o.ConfigFile
	if configFile == "" {
		configFile = findFirst(configSearchPaths(serviceName))
	}
	envFile := o.EnvFile
	if envFile == "" {
		envFile = findFirst(envSearchPaths(serviceName))
	}

	v := viper.New()

	// 1. YAML file is the base layer
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	// 2. .env file feeds the process environment
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	// 3. Environment variables override file values
	v.AutomaticEnv()
	bindEnvironment(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for service %s: %w", serviceName, err)
	}

	return nil
}

// configSearchPaths lists where config.yml may live for a service.
func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./config/%s.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}
}

// envSearchPaths lists where a .env file may live for a service.
func envSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
		"config/.env",
	}
}

// findFirst returns the first existing path, or "".
func findFirst(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// bindEnvironment copies every environment variable into viper under
// the nested keys it may correspond to, so CLIENT_BASE_URL can satisfy
// the client.base_url key.
func bindEnvironment(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, key := range envKeyVariants(pair[0]) {
			v.Set(key, pair[1])
		}
	}
}

// envKeyVariants expands UPPER_SNAKE env names into the nested config
// keys they could address.
//
//	CLIENT_BASE_URL -> client_base_url, client.base.url, client.base_url
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	seen := map[string]bool{}
	variants := make([]string, 0, len(parts)+1)
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			variants = append(variants, key)
		}
	}

	add(lower)
	add(strings.ReplaceAll(lower, "_", "."))
	// Split at each underscore once: prefix becomes nesting, the rest
	// stays a flat key.
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}

	return variants
}
