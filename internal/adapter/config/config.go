package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Gateway  *Gateway
	Vault    *Vault
	Auth     *Auth
	Billing  *Billing
	Events   *Events
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	LogFile  string `env:"LOG_FILE"`
	Mode     string `env:"APP_MODE"`
}

type Database struct {
	DSN              string        `env:"DATABASE_URI"`
	LockTimeout      time.Duration `env:"DB_LOCK_TIMEOUT" envDefault:"5s"`
	ReconcileOnStart bool          `env:"RECONCILE_ON_START"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

// Gateway holds the merchant credentials of the payment gateway.
type Gateway struct {
	Domain         string        `env:"WXPAY_DOMAIN" envDefault:"https://api.mch.weixin.qq.com"`
	AppID          string        `env:"WXPAY_APPID"`
	MchID          string        `env:"WXPAY_MCHID"`
	SerialNo       string        `env:"WXPAY_SERIAL_NO"`
	PrivateKeyPath string        `env:"WXPAY_PRIVATE_KEY_PATH"`
	PublicKeyPath  string        `env:"WXPAY_PUBLIC_KEY_PATH"`
	APIv3Key       string        `env:"WXPAY_API_V3_KEY"`
	NotifyURL      string        `env:"WXPAY_NOTIFY_URL"`
	Timeout        time.Duration `env:"WXPAY_TIMEOUT" envDefault:"5s"`
}

type Vault struct {
	Secret string `env:"PASSWORD_ENCRYPTION_KEY"`
}

type Auth struct {
	TokenSecret   string        `env:"TOKEN_SECRET"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"72h"`
}

type Billing struct {
	TestPayFen int64 `env:"TEST_PAY_FEN"`
}

type Events struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"order_settled"`
}

func NewConfig() (*Config, error) {
	// .env values never override variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	var db Database
	var http HTTP
	var gateway Gateway
	var vault Vault
	var auth Auth
	var billing Billing
	var events Events
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string, in-memory storage when empty")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&gateway.NotifyURL, "n", "", "Public webhook URL given to the gateway")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	for name, target := range map[string]any{
		"database": &db,
		"http":     &http,
		"gateway":  &gateway,
		"vault":    &vault,
		"auth":     &auth,
		"billing":  &billing,
		"events":   &events,
		"app":      &app,
	} {
		if err := env.Parse(target); err != nil {
			return nil, fmt.Errorf("error parsing %s config: %w", name, err)
		}
	}

	if vault.Secret == "" {
		vault.Secret = gateway.APIv3Key
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Gateway:  &gateway,
		Vault:    &vault,
		Auth:     &auth,
		Billing:  &billing,
		Events:   &events,
		App:      &app,
	}

	return &config, nil
}
