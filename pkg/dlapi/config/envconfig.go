package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/airenamify/dlgate/pkg/relstore"
	"github.com/airenamify/dlgate/pkg/resolve"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type EnvConfig struct {
	Port        string `envconfig:"PORT" default:"8787"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"minio"`
	S3Endpoint   string `envconfig:"S3_ENDPOINT"`
	S3AccessKey  string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey  string `envconfig:"S3_SECRET_KEY"`
	S3Bucket     string `envconfig:"S3_BUCKET" default:"releases"`
	S3Region     string `envconfig:"S3_REGION" default:"auto"`
	S3UseSSL     bool   `envconfig:"S3_USE_SSL" default:"true"`

	CDNOrigin      string `envconfig:"CDN_ORIGIN" default:"https://contents-cdn.airenamify.com"`
	ReleasePrefix  string `envconfig:"RELEASE_PREFIX" default:"release/"`
	MacManifestKey string `envconfig:"MAC_MANIFEST_KEY" default:"release/latest-mac.yml"`
	WinManifestKey string `envconfig:"WIN_MANIFEST_KEY" default:"release/latest.yml"`
	StaticDir      string `envconfig:"STATIC_DIR" default:"./public"`

	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
}

// isDev reports whether ENVIRONMENT names a development setup (or is unset).
func isDev() bool {
	switch strings.ToLower(os.Getenv("ENVIRONMENT")) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

func ValidateEnv() (*EnvConfig, error) {
	if isDev() {
		if err := godotenv.Load(); err != nil {
			log.Println("ℹ No .env file found")
		} else {
			log.Println("✓ Loaded .env file")
		}
	}

	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules and reports every problem at once.
func (c *EnvConfig) Validate() error {
	var errors []string
	backend := strings.ToLower(c.StoreBackend)

	switch backend {
	case relstore.BackendMinio:
		if c.S3Endpoint == "" {
			errors = append(errors, "  ❌ S3_ENDPOINT is required when STORE_BACKEND=minio")
		}
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			errors = append(errors, "  ❌ S3_ACCESS_KEY and S3_SECRET_KEY are required when STORE_BACKEND=minio")
		}
	case relstore.BackendS3, relstore.BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("  ❌ STORE_BACKEND must be minio, s3 or memory (got %q)", c.StoreBackend))
	}

	if backend != relstore.BackendMemory && c.S3Bucket == "" {
		errors = append(errors, "  ❌ S3_BUCKET is required")
	}

	if u, err := url.ParseRequestURI(c.CDNOrigin); err != nil || u.Host == "" {
		errors = append(errors, "  ❌ CDN_ORIGIN must be an absolute URL")
	}

	if c.MacManifestKey == "" || c.WinManifestKey == "" {
		errors = append(errors, "  ❌ MAC_MANIFEST_KEY and WIN_MANIFEST_KEY must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("environment validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}

// StoreConfig returns the object store settings.
func (c *EnvConfig) StoreConfig() relstore.Config {
	return relstore.Config{
		Backend:   strings.ToLower(c.StoreBackend),
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		UseSSL:    c.S3UseSSL,
	}
}

// ResolverConfig returns the bucket layout and CDN binding for the resolver.
func (c *EnvConfig) ResolverConfig() resolve.Config {
	return resolve.Config{
		CDNOrigin:      c.CDNOrigin,
		ReleasePrefix:  c.ReleasePrefix,
		MacManifestKey: c.MacManifestKey,
		WinManifestKey: c.WinManifestKey,
	}
}

func MaskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func (c *EnvConfig) Print(fmtr func(string, ...interface{})) {
	fmtr("📋 Configuration:\n")
	fmtr("  Environment: %s\n", c.Environment)
	fmtr("  Port: %s\n", c.Port)
	fmtr("  Log: level=%s format=%s\n", c.LogLevel, c.LogFormat)
	fmtr("  Store: %s\n", c.StoreBackend)
	if !strings.EqualFold(c.StoreBackend, relstore.BackendMemory) {
		fmtr("    Endpoint: %s\n", c.S3Endpoint)
		fmtr("    Bucket: %s (region=%s, ssl=%t)\n", c.S3Bucket, c.S3Region, c.S3UseSSL)
		fmtr("    Access Key: %s\n", MaskSecret(c.S3AccessKey))
		fmtr("    Secret Key: %s\n", MaskSecret(c.S3SecretKey))
	}
	fmtr("  CDN Origin: %s\n", c.CDNOrigin)
	fmtr("  Release Prefix: %s\n", c.ReleasePrefix)
	fmtr("  Manifests: mac=%s win=%s\n", c.MacManifestKey, c.WinManifestKey)

	if c.StaticDir != "" {
		fmtr("  Static Assets: ✓ %s\n", c.StaticDir)
	} else {
		fmtr("  Static Assets: ✗ Disabled\n")
	}
}
