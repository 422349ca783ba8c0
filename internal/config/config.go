package config

import (
	"outfit-agent-demo/internal/apperr"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"wardrobe.db"`

	Gemini  Gemini  `envPrefix:"GEMINI_"`
	Agent   Agent   `envPrefix:"AGENT_"`
	Catalog Catalog `envPrefix:"CATALOG_"`
	Payment Payment `envPrefix:"PAYMENT_"`
}

type Gemini struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://generativelanguage.googleapis.com"`
	APIKey     string `env:"API_KEY"`
	Model      string `env:"MODEL" envDefault:"gemini-2.5-flash-image-preview"`
}

type Agent struct {
	BaseApiURL string `env:"BASE_API_URL"`
	APIKey     string `env:"API_KEY"`
	// ToolNamespaces is the allow-list of tool namespaces the purchase
	// agent may invoke. Everything else is denied per call.
	ToolNamespaces []string `env:"TOOL_NAMESPACES" envSeparator:"," envDefault:"mcp__locus"`
}

type Catalog struct {
	BaseApiURL string `env:"BASE_API_URL"`
}

type Payment struct {
	// MerchantAddresses is the fixed, ordered recipient list. Order items
	// are assigned addresses round-robin by position.
	MerchantAddresses []string `env:"MERCHANT_ADDRESSES" envSeparator:","`
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
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Validate fails fast on absent required credentials, before any client is
// constructed or any external call attempted.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return apperr.Configurationf("GEMINI_API_KEY is not set")
	}
	if c.Agent.BaseApiURL == "" {
		return apperr.Configurationf("AGENT_BASE_API_URL is not set")
	}
	if c.Agent.APIKey == "" {
		return apperr.Configurationf("AGENT_API_KEY is not set")
	}
	if c.Catalog.BaseApiURL == "" {
		return apperr.Configurationf("CATALOG_BASE_API_URL is not set")
	}
	if len(c.Payment.MerchantAddresses) == 0 {
		return apperr.Configurationf("PAYMENT_MERCHANT_ADDRESSES is not set")
	}
	if len(c.Agent.ToolNamespaces) == 0 {
		return apperr.Configurationf("AGENT_TOOL_NAMESPACES is empty")
	}
	return nil
}
