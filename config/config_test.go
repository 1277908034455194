package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ndefkit/ndef"
)

func TestConfig_DecodeOptions(t *testing.T) {
	cfg := DefaultConfig
	opts, err := cfg.DecodeOptions()
	require.NoError(t, err)
	require.Equal(t, ndef.Strict, opts.Policy)
	require.Equal(t, ndef.DefaultMaxPayloadLen, opts.MaxPayloadLen)
	require.True(t, opts.Registry == ndef.DefaultRegistry)

	cfg.Codec.ErrorPolicy = "Relaxed"
	opts, err = cfg.DecodeOptions()
	require.NoError(t, err)
	require.Equal(t, ndef.Relaxed, opts.Policy)

	cfg.Codec.ErrorPolicy = "lenient"
	_, err = cfg.DecodeOptions()
	require.Error(t, err)

	cfg.Codec.ErrorPolicy = "strict"
	cfg.Codec.MaxPayloadLen = -1
	_, err = cfg.DecodeOptions()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"error policy", func(c *Config) { c.Codec.ErrorPolicy = "" }},
		{"max payload", func(c *Config) { c.Codec.MaxPayloadLen = -5 }},
		{"output format", func(c *Config) { c.Output.Format = "json" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestReadConfig_Invalid(t *testing.T) {
	_, err := ReadConfig(strings.NewReader("log_level = "))
	require.Error(t, err)
}
