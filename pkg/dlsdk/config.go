package dlsdk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL string        `mapstructure:"baseUrl"`
	OS      string        `mapstructure:"os"`
	Arch    string        `mapstructure:"arch"`
	Timeout time.Duration `mapstructure:"timeout"`

	v *viper.Viper // instance-specific viper
}

const (
	EnvPrefix  = "DLGATE"
	ConfigName = "dlgate"
	ConfigRoot = ".dlgate"

	BaseUrlKey = "baseUrl"
	OSKey      = "os"
	ArchKey    = "arch"
	TimeoutKey = "timeout"
)

// LoadConfig creates a new Config instance with its own viper
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	} else {
		// Project config (tracked): dlgate.yaml in the current directory
		for _, name := range []string{ConfigName + ".yaml", ConfigName + ".yml", "." + ConfigName + ".yaml"} {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				if err := v.ReadInConfig(); err == nil {
					break
				}
			}
		}

		// Local overrides (untracked): .dlgate/config.yaml
		localConfigPath := filepath.Join(ConfigRoot, "config.yaml")
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merging local config: %w", err)
			}
		}
	}

	setDefaults(v)

	// Unmarshal only sees keys viper already knows; AutomaticEnv alone
	// does not surface DLGATE_OS or DLGATE_ARCH.
	for _, key := range []string{OSKey, ArchKey} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	cfg := &Config{v: v}
	if err := cfg.Reload(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Reload re-reads every key from the viper instance, picking up flags bound
// after LoadConfig.
func (c *Config) Reload() error {
	var next Config
	if err := c.v.Unmarshal(&next); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}
	next.BaseURL = strings.TrimRight(next.BaseURL, "/")
	next.v = c.v
	*c = next
	return nil
}

// Viper returns the underlying viper instance, for flag binding.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

// ConfigFileUsed returns the config file that was used (if any)
func (c *Config) ConfigFileUsed() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(BaseUrlKey, "http://localhost:8787")
	v.SetDefault(TimeoutKey, 10*time.Second)
}
