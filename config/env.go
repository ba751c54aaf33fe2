package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort   = "8080"
	defaultAppEnv    = "local"
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultMongoDB   = "bistroBossDB"
	defaultJWTSecret = "change-me-in-production"
	defaultRedisAddr = "localhost:6379"
	defaultCurrency  = "usd"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Process environment variables
// take precedence over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":        defaultAppPort,
		"APP_ENV":         defaultAppEnv,
		"MONGO_URI":       defaultMongoURI,
		"MONGO_DB":        defaultMongoDB,
		"JWT_SECRET":      defaultJWTSecret,
		"REDIS_ADDR":      defaultRedisAddr,
		"REDIS_PASSWORD":  "",
		"STRIPE_SECRET":   "",
		"STRIPE_CURRENCY": defaultCurrency,
		"MAILGUN_DOMAIN":  "",
		"MAILGUN_API_KEY": "",
		"MAIL_FROM":       "",
		"LOG_MONGO_URI":   "",
	}
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", defaultMongoURI)
}

func MongoDB() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func StripeSecret() string {
	_ = Load()
	return get("STRIPE_SECRET", "")
}

// StripeCurrency is the fixed settlement currency. Charges are always
// created in this currency regardless of client locale.
func StripeCurrency() string {
	_ = Load()
	return strings.ToLower(get("STRIPE_CURRENCY", defaultCurrency))
}

func MailgunDomain() string {
	_ = Load()
	return get("MAILGUN_DOMAIN", "")
}

func MailgunAPIKey() string {
	_ = Load()
	return get("MAILGUN_API_KEY", "")
}

func MailFrom() string {
	_ = Load()
	return get("MAIL_FROM", "")
}

// LogMongoURI, when set, enables the async MongoDB log sink.
func LogMongoURI() string {
	_ = Load()
	return get("LOG_MONGO_URI", "")
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		return err
	}

	// Real environment variables win over file-sourced values.
	for key := range loaded {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			loaded[key] = v
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}
