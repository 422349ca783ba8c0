package config

import (
	"errors"
	"testing"

	"outfit-agent-demo/internal/apperr"
)

func validConfig() *Config {
	return &Config{
		Gemini:  Gemini{APIKey: "g-key", Model: "test-model", BaseApiURL: "https://gemini.example"},
		Agent:   Agent{BaseApiURL: "https://agent.example", APIKey: "a-key", ToolNamespaces: []string{"mcp__locus"}},
		Catalog: Catalog{BaseApiURL: "https://catalog.example"},
		Payment: Payment{MerchantAddresses: []string{"So11111111111111111111111111111111111111112"}},
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"gemini key", func(c *Config) { c.Gemini.APIKey = "" }},
		{"agent url", func(c *Config) { c.Agent.BaseApiURL = "" }},
		{"agent key", func(c *Config) { c.Agent.APIKey = "" }},
		{"catalog url", func(c *Config) { c.Catalog.BaseApiURL = "" }},
		{"merchant addresses", func(c *Config) { c.Payment.MerchantAddresses = nil }},
		{"tool namespaces", func(c *Config) { c.Agent.ToolNamespaces = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, apperr.ErrConfiguration) {
				t.Fatalf("err = %v, want configuration failure", err)
			}
		})
	}
}
