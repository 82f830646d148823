package configs

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/spf13/viper"

	"taskboard/pkg/msg"
	"taskboard/pkg/util/numberutils"
)

// Application holds the default application.yml shipped with the binary.
//
//go:embed application.yml
var Application []byte

const (
	defaultApplicationName = "taskboard"
	defaultPort            = 5000

	legacyScheme = "postgres://"
	modernScheme = "postgresql://"
)

var ErrMissingDatabaseURL = errors.New(msg.GetMessage("config.error.missing-database-url"))

// EnvConfig is the process-level configuration read from the environment.
type EnvConfig struct {
	ApplicationName string
	DatabaseURL     string
	Port            int
}

// Addr is the listen address on every interface.
func (env *EnvConfig) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", env.Port)
}

// LoadEnv reads APPLICATION_NAME, DATABASE_URL and PORT.
func LoadEnv() (*EnvConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	databaseURL, err := NormalizeDatabaseURL(v.GetString("DATABASE_URL"))
	if err != nil {
		return nil, err
	}

	port := defaultPort
	if raw := strings.TrimSpace(v.GetString("PORT")); raw != "" {
		port, err = numberutils.ToIntWithError(raw)
		if err != nil || !numberutils.IsIntInRange(port, 1, 65535) {
			return nil, errors.New(msg.GetMessage("config.error.invalid-port", raw))
		}
	}

	return &EnvConfig{
		ApplicationName: getStringOrDefault(v, "APPLICATION_NAME", defaultApplicationName),
		DatabaseURL:     databaseURL,
		Port:            port,
	}, nil
}

// NormalizeDatabaseURL rewrites the legacy postgres:// scheme to postgresql://
// and checks that the result is a parseable PostgreSQL URL.
func NormalizeDatabaseURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", ErrMissingDatabaseURL
	}
	if strings.HasPrefix(url, legacyScheme) {
		url = modernScheme + strings.TrimPrefix(url, legacyScheme)
	}
	if _, err := pq.ParseURL(url); err != nil {
		return "", fmt.Errorf("%s: %w", msg.GetMessage("config.error.invalid-database-url", redact(url)), err)
	}
	return url, nil
}

func getStringOrDefault(v *viper.Viper, key, defaultValue string) string {
	value := v.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// redact hides the password of a URL for log output
func redact(url string) string {
	schemeEnd := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return url
	}
	credentials := url[schemeEnd+3 : at]
	if colon := strings.Index(credentials, ":"); colon >= 0 {
		return url[:schemeEnd+3] + credentials[:colon] + ":***" + url[at:]
	}
	return url
}
