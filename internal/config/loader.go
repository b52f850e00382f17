package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	configDir = ".phoenix-shell"
	envPrefix = "PHOENIX_SHELL"

	keyringService = "phoenix-shell"
)

// configNames are the file names searched for, in order, in every config
// directory.
var configNames = []string{"config.properties", "config.yaml"}

// ErrURLMissing is returned when no engine URL is configured.
var ErrURLMissing = errors.New("phoenix.url is not configured")

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"url":                    "phoenix.url",
	"user":                   "phoenix.username",
	"ignore-all-null-column": "ignore-all-null-column",
	"null-text":              "null-text",
	"format":                 "format",
	"log-file":               "log.file",
	"log-level":              "log.level",
}

// Load reads the configuration. An explicit file must exist; otherwise
// config.properties (or config.yaml) is looked up in the working directory
// and then in ~/.phoenix-shell, and a missing file leaves the defaults in
// place. Environment variables (PHOENIX_SHELL_PHOENIX_URL, ...) override the
// file, and flags that were set override both.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	path, err := findConfigFile(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if path != "" {
		if err := readConfigFile(v, path); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func findConfigFile(file string) (string, error) {
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return "", err
		}
		return file, nil
	}
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, configDir))
	}
	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", nil
}

// readConfigFile loads path into v. YAML, JSON and TOML files go through
// viper directly; anything else is read as a Java properties file whose
// dotted keys become nested settings.
func readConfigFile(v *viper.Viper, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".toml":
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return err
	}
	return v.MergeConfigMap(nestKeys(p))
}

func nestKeys(p *properties.Properties) map[string]any {
	root := map[string]any{}
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		path := strings.Split(strings.ToLower(key), ".")
		m := root
		for _, part := range path[:len(path)-1] {
			child, ok := m[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				m[part] = child
			}
			m = child
		}
		m[path[len(path)-1]] = value
	}
	return root
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("phoenix.url", "")
	v.SetDefault("phoenix.username", "")
	v.SetDefault("phoenix.password", "")
	v.SetDefault("phoenix.keyring", false)
	v.SetDefault("ignore-all-null-column", false)
	v.SetDefault("null-text", "null")
	v.SetDefault("format", "table")
	v.SetDefault("log.file", "phoenix-shell.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("history.file", defaultHistoryFile())
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, "history")
}

// Validate checks that the configuration can be used to connect.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Phoenix.URL) == "" {
		return ErrURLMissing
	}
	return nil
}

// ResolvePassword fills in the password from the OS keyring when keyring
// lookup is enabled and no password is configured. A missing keyring entry
// is not an error.
func (c *Config) ResolvePassword(user string) error {
	if c.Phoenix.Password != "" || !c.Phoenix.Keyring || user == "" {
		return nil
	}
	pw, err := keyring.Get(keyringService, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("keyring: %w", err)
	}
	c.Phoenix.Password = pw
	return nil
}

// StorePassword saves the password for user in the OS keyring.
func StorePassword(user, password string) error {
	if err := keyring.Set(keyringService, user, password); err != nil {
		return fmt.Errorf("keyring: %w", err)
	}
	return nil
}
