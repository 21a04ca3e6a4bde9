// Package config resolves the wpr configuration directory and loads the
// on-disk config file, applying WP_REMOTE_* environment overrides.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"wpr/pkg/config/configfile"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// EnvOverrideConfigDir is the name of the environment variable that
	// can be used to override the location of the client configuration.
	EnvOverrideConfigDir = "WPR_CONFIG"

	// Environment overrides for the remote account.
	EnvBaseURL  = "WP_REMOTE_URL"
	EnvAPIKey   = "WP_REMOTE_API_KEY"
	EnvUser     = "WP_REMOTE_USER"
	EnvPassword = "WP_REMOTE_PASSWORD"
	EnvTimeout  = "WP_REMOTE_TIMEOUT"

	// ConfigFileName is the name of the client configuration file.
	ConfigFileName = "config.json"

	configFileDir = ".wpr"
)

var (
	initConfigDir = new(sync.Once)
	configDir     string
)

func resetConfigDir() {
	configDir = ""
	initConfigDir = new(sync.Once)
}

// Dir returns the directory the configuration file is stored in.
func Dir() string {
	initConfigDir.Do(func() {
		configDir = os.Getenv(EnvOverrideConfigDir)
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				logrus.WithError(err).Debug("Error resolving home directory")
			}
			configDir = filepath.Join(home, configFileDir)
		}
	})
	return configDir
}

// SetDir sets the directory the configuration file is stored in.
func SetDir(dir string) {
	resetConfigDir()
	initConfigDir.Do(func() {
		configDir = filepath.Clean(dir)
	})
}

// Path returns the path to a file relative to the config dir.
func Path(p ...string) string {
	return filepath.Join(append([]string{Dir()}, p...)...)
}

// Load reads the configuration file from the given directory. A missing
// file is not an error; it yields an empty configuration that the
// environment overrides can still populate.
func Load(configDir string) (*configfile.ConfigFile, error) {
	if configDir == "" {
		configDir = Dir()
	}
	return load(filepath.Join(configDir, ConfigFileName))
}

func load(filename string) (*configfile.ConfigFile, error) {
	configFile := configfile.New(filename)

	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return configFile, nil
		}
		return configFile, errors.Wrap(err, filename)
	}
	defer file.Close()

	if err := configFile.LoadFromReader(file); err != nil {
		return configFile, errors.Wrap(err, filename)
	}
	return configFile, nil
}

// LoadDefaultConfigFile attempts to load the default config file and
// returns a config populated from it and the environment. Load errors
// are reported to stderr but never fatal; the CLI can still prompt.
func LoadDefaultConfigFile(stderr io.Writer) *configfile.ConfigFile {
	configFile, err := Load(Dir())
	if err != nil {
		_, _ = io.WriteString(stderr, "WARNING: Error loading config file: "+err.Error()+"\n")
	}
	applyEnvOverrides(configFile)
	return configFile
}

func applyEnvOverrides(configFile *configfile.ConfigFile) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		configFile.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		configFile.APIKey = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		configFile.User = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		configFile.Password = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			configFile.Timeout = seconds
		} else {
			logrus.WithField("value", v).Debug("Ignoring unparseable " + EnvTimeout)
		}
	}
}
