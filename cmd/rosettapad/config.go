package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultListen  = ":8080"
	defaultDataDir = "/var/lib/rosettapad"
)

type Config struct {
	Listen  string `yaml:"listen"`
	DataDir string `yaml:"dataDir"`
	// IPCPath is where rendered frames are written for the input daemon to
	// pick up. Defaults to lightbar_state.json inside the data directory.
	IPCPath string `yaml:"ipcPath"`
	Preview bool   `yaml:"preview"`

	Bluetooth struct {
		UseReal bool `yaml:"useReal"`
	} `yaml:"bluetooth"`
}

func (c Config) animationsPath() string {
	return filepath.Join(c.DataDir, "animations.json")
}

func (c Config) profilesPath() string {
	return filepath.Join(c.DataDir, "profiles.db")
}

func (c Config) controllersPath() string {
	return filepath.Join(c.DataDir, "controllers.json")
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	if c.IPCPath == "" {
		c.IPCPath = filepath.Join(c.DataDir, "lightbar_state.json")
	}
	if !filepath.IsAbs(c.DataDir) {
		return nil, fmt.Errorf("dataDir must be an absolute path, got %q", c.DataDir)
	}

	return c, nil
}

// readConfig loads the config file. A missing file is not an error; the
// daemon runs fine on defaults.
func readConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Infof("No config at %s, using defaults", path)
		content = nil
	} else if err != nil {
		return nil, err
	}
	return parseConfig(content)
}
