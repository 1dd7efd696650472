package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// ProfilesConfig holds all named API profiles and tracks which one is active.
type ProfilesConfig struct {
	Active   string             `toml:"active"`
	Profiles map[string]Profile `toml:"profiles"`
}

// Profile is a named set of API credentials.
type Profile struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url,omitempty"`
	NATSURL string `toml:"nats_url,omitempty"`
}

func profilesConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "corpnet")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.toml"), nil
}

func loadProfilesConfig() (ProfilesConfig, error) {
	path, err := profilesConfigPath()
	if err != nil {
		return ProfilesConfig{}, err
	}
	var cfg ProfilesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return ProfilesConfig{Profiles: map[string]Profile{}}, nil
		}
		return ProfilesConfig{}, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return cfg, nil
}

func saveProfilesConfig(cfg ProfilesConfig) error {
	path, err := profilesConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Cached active profile values, loaded once per process.
var (
	profileOnce   sync.Once
	cachedAPIKey  string
	cachedBaseURL string
	cachedNATSURL string
)

func loadActiveProfileOnce() {
	profileOnce.Do(func() {
		cfg, err := loadProfilesConfig()
		if err != nil || cfg.Active == "" {
			return
		}
		p, ok := cfg.Profiles[cfg.Active]
		if !ok {
			return
		}
		cachedAPIKey = p.APIKey
		cachedBaseURL = p.BaseURL
		cachedNATSURL = p.NATSURL
	})
}

func activeProfileAPIKey() string {
	loadActiveProfileOnce()
	return cachedAPIKey
}

func activeProfileBaseURL() string {
	loadActiveProfileOnce()
	return cachedBaseURL
}

func activeProfileNATSURL() string {
	loadActiveProfileOnce()
	return cachedNATSURL
}
