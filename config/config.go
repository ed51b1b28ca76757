// Package config loads service configuration from YAML files with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

// Defaults for the auth section; applied in New when the YAML omits a key.
const (
	defaultTokenTTL          = 24 * time.Hour
	defaultPasswordMinLength = 8
	defaultMaxFailedAttempts = 5
	defaultFailureWindow     = 15 * time.Minute
	defaultHasherTimeout     = 2 * time.Second
	defaultHashAlgorithm     = "bcrypt"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

// AuthConfig defines the authentication policy surface.
type AuthConfig struct {
	// TokenSecret signs session tokens. Required, high-entropy; the token
	// issuer refuses to start without it. Supplied via AUTH_TOKENSECRET in
	// production rather than the YAML file.
	TokenSecret string `json:"tokenSecret" yaml:"tokenSecret"`

	// TokenTTL bounds session token validity. Default 24h.
	TokenTTL time.Duration `json:"tokenTTL" yaml:"tokenTTL"`

	// PasswordMinLength is the minimum accepted password length. Default 8.
	PasswordMinLength int `json:"passwordMinLength" yaml:"passwordMinLength"`

	// MaxFailedAttempts and FailureWindow configure the per-username login
	// limiter: more than MaxFailedAttempts failures inside a sliding
	// FailureWindow blocks further attempts until the window elapses.
	MaxFailedAttempts int           `json:"maxFailedAttempts" yaml:"maxFailedAttempts"`
	FailureWindow     time.Duration `json:"failureWindow" yaml:"failureWindow"`

	// HashAlgorithm selects the password hasher: "bcrypt" or "argon2id".
	HashAlgorithm string `json:"hashAlgorithm" yaml:"hashAlgorithm"`

	// BcryptCost overrides the bcrypt cost factor. Zero means bcrypt.DefaultCost.
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`

	// HasherTimeout bounds one hash or verify operation; exceeding it fails
	// the request instead of pinning a request goroutine on an overloaded CPU.
	HasherTimeout time.Duration `json:"hasherTimeout" yaml:"hasherTimeout"`

	// DisableSignupToken turns off auto-login on signup: when set, signup
	// creates the credential but returns no session token.
	DisableSignupToken bool `json:"disableSignupToken" yaml:"disableSignupToken"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: AUTH_TOKENSECRET -> auth.tokenSecret (not auth.tokensecret)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	applyAuthDefaults(cfg.Auth)

	return cfg, nil
}

func applyAuthDefaults(auth *AuthConfig) {
	if auth.TokenTTL <= 0 {
		auth.TokenTTL = defaultTokenTTL
	}
	if auth.PasswordMinLength <= 0 {
		auth.PasswordMinLength = defaultPasswordMinLength
	}
	if auth.MaxFailedAttempts <= 0 {
		auth.MaxFailedAttempts = defaultMaxFailedAttempts
	}
	if auth.FailureWindow <= 0 {
		auth.FailureWindow = defaultFailureWindow
	}
	if auth.HasherTimeout <= 0 {
		auth.HasherTimeout = defaultHasherTimeout
	}
	if strings.TrimSpace(auth.HashAlgorithm) == "" {
		auth.HashAlgorithm = defaultHashAlgorithm
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
