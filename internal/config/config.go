package config

import "strings"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	Store       Store       `envPrefix:"STORE_"`
	Redis       Redis       `envPrefix:"REDIS_"`
	DatabaseURL string      `env:"DATABASE_URL"`
	MercadoPago MercadoPago `envPrefix:"MP_"`
}

type MercadoPago struct {
	BaseApiURL      string `env:"BASE_API_URL" envDefault:"https://api.mercadopago.com"`
	AccessToken     string `env:"ACCESS_TOKEN,notEmpty"`
	Currency        string `env:"CURRENCY" envDefault:"BRL"`
	Sandbox         bool   `env:"SANDBOX" envDefault:"false"`
	AutoReturn      bool   `env:"AUTO_RETURN" envDefault:"true"`
	SuccessURL      string `env:"SUCCESS_URL"`
	FailureURL      string `env:"FAILURE_URL"`
	PendingURL      string `env:"PENDING_URL"`
	NotificationURL string `env:"NOTIFICATION_URL"`
}

type Store struct {
	Driver string `env:"DRIVER" envDefault:"file"` // file, sqlite, mysql, redis, memory
	Path   string `env:"PATH" envDefault:"purchases.json"`
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	Key      string `env:"KEY" envDefault:"recipe:purchases"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"3000"`
}

// BackURLs fills the provider redirect targets that were not set explicitly
// with the landing endpoints served by this backend.
func (c *Config) BackURLs() (success, failure, pending string) {
	base := strings.TrimSuffix(c.BaseURL, "/")

	success = orDefault(c.MercadoPago.SuccessURL, base+"/success")
	failure = orDefault(c.MercadoPago.FailureURL, base+"/failure")
	pending = orDefault(c.MercadoPago.PendingURL, base+"/pending")
	return success, failure, pending
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
