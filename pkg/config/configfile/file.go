package configfile

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ConfigFile ~/.wpr/config.json file info. Secrets are stored base64
// encoded; that is obfuscation against shoulder surfing, not security.
type ConfigFile struct {
	Filename string `json:"-"` // Note: for internal use only
	BaseURL  string `json:"baseUrl,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	// Timeout is the per-request limit in seconds; 0 means the client
	// default.
	Timeout int `json:"timeout,omitempty"`
}

// New initializes an empty configuration file for the given filename 'fn'
func New(fn string) *ConfigFile {
	return &ConfigFile{
		Filename: fn,
	}
}

// LoadFromReader reads the configuration data given and populates the
// receiver object, decoding stored secrets.
func (configFile *ConfigFile) LoadFromReader(configData io.Reader) error {
	if err := json.NewDecoder(configData).Decode(configFile); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	var err error

	if configFile.APIKey != "" {
		configFile.APIKey, err = decodeSecret(configFile.APIKey)
		if err != nil {
			return err
		}
	}
	if configFile.Password != "" {
		configFile.Password, err = decodeSecret(configFile.Password)
		if err != nil {
			return err
		}
	}

	return nil
}

// ContainsAuth returns whether any credential is configured.
func (configFile *ConfigFile) ContainsAuth() bool {
	return configFile.APIKey != "" || (configFile.User != "" && configFile.Password != "")
}

// SaveToWriter encodes and writes out all the configuration to the
// given writer.
func (configFile *ConfigFile) SaveToWriter(writer io.Writer) error {
	if configFile.APIKey != "" {
		configFile.APIKey = encodeSecret(configFile.APIKey)
	}
	if configFile.Password != "" {
		configFile.Password = encodeSecret(configFile.Password)
	}

	data, err := json.MarshalIndent(configFile, "", "\t")
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

// Save encodes and writes out all the configuration information.
func (configFile *ConfigFile) Save() (retErr error) {
	if configFile.Filename == "" {
		return errors.Errorf("Can't save config with empty filename")
	}

	dir := filepath.Dir(configFile.Filename)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	temp, err := os.CreateTemp(dir, filepath.Base(configFile.Filename))
	if err != nil {
		return err
	}
	defer func() {
		temp.Close()
		if retErr != nil {
			if err := os.Remove(temp.Name()); err != nil {
				logrus.WithError(err).WithField("file", temp.Name()).Debug("Error cleaning up temp file")
			}
		}
	}()

	err = configFile.SaveToWriter(temp)
	if err != nil {
		return err
	}

	if err := temp.Close(); err != nil {
		return errors.Wrap(err, "error closing temp file")
	}

	// Handle situation where the configfile is a symlink
	cfgFile := configFile.Filename
	if f, err := os.Readlink(cfgFile); err == nil {
		cfgFile = f
	}

	return os.Rename(temp.Name(), cfgFile)
}

// GetFilename returns the file name that this config file is based on.
func (configFile *ConfigFile) GetFilename() string {
	return configFile.Filename
}

func encodeSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(secret))
}

func decodeSecret(secret string) (string, error) {
	if secret == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
