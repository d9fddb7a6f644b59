// Package config loads runtime settings with viper: defaults first, then an
// optional credvault.yaml, then CREDVAULT_* environment variables, then
// command-line flags.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds runtime settings for the vault.
//
// Fields:
//   - SnapshotPath: location of the durable snapshot file.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the development default outside tests.
//   - SessionTTL: how long an issued session stays valid.
//   - RotationIntervalDays / ReminderLeadDays: defaults applied to entries
//     that do not carry their own rotation policy.
//   - VaultKey: optional hex-encoded AES key; when set, entry secrets are
//     sealed with AES-GCM in the snapshot.
type Config struct {
	SnapshotPath         string        `mapstructure:"snapshot_path"`
	SecretKey            string        `mapstructure:"secret_key"`
	SessionTTL           time.Duration `mapstructure:"session_ttl"`
	RotationIntervalDays int           `mapstructure:"rotation_interval_days"`
	ReminderLeadDays     int           `mapstructure:"reminder_lead_days"`
	VaultKey             string        `mapstructure:"vault_key"`
}

// Load builds a Config for the given command. The lookup order is defaults,
// config file (explicit path via configFile, otherwise credvault.yaml in the
// user config dir or the current directory), environment, flags.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("snapshot_path", defaultSnapshotPath())
	v.SetDefault("secret_key", "dev-secret-key")
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("rotation_interval_days", 30)
	v.SetDefault("reminder_lead_days", 7)
	v.SetDefault("vault_key", "")

	v.SetConfigName("credvault")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(userDir, "credvault"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		if !isNotFound(err) {
			return nil, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("credvault")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return nil, err
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func isNotFound(err error) bool {
	_, ok := err.(viper.ConfigFileNotFoundError)
	return ok || os.IsNotExist(err)
}

func (c *Config) validate() error {
	if c.SnapshotPath == "" {
		return fmt.Errorf("snapshot_path must not be empty")
	}
	if c.RotationIntervalDays <= 0 {
		return fmt.Errorf("rotation_interval_days must be positive, got %d", c.RotationIntervalDays)
	}
	if c.ReminderLeadDays < 0 || c.ReminderLeadDays >= c.RotationIntervalDays {
		return fmt.Errorf("reminder_lead_days (%d) must be non-negative and smaller than rotation_interval_days (%d)",
			c.ReminderLeadDays, c.RotationIntervalDays)
	}
	return nil
}

// Cipher returns the secret cipher implied by VaultKey: AES-GCM when a key
// is configured, the pass-through cipher otherwise.
func (c *Config) Cipher() (cryptox.Cipher, error) {
	if c.VaultKey == "" {
		return cryptox.NoopCipher{}, nil
	}
	key, err := hex.DecodeString(c.VaultKey)
	if err != nil {
		return nil, fmt.Errorf("vault_key is not valid hex: %w", err)
	}
	return cryptox.NewAESGCMCipher(key)
}

func defaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credvault.yaml"
	}
	return filepath.Join(home, ".credvault", "vault.yaml")
}
