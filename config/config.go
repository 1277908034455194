package config

import (
	"io"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"ndefkit/log"
	"ndefkit/ndef"
)

const (
	OutputFormatTable = "table"
	OutputFormatText  = "text"
	OutputFormatHex   = "hex"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Codec    CodecConfig  `mapstructure:"codec"`
	Output   OutputConfig `mapstructure:"output"`
}

type CodecConfig struct {
	ErrorPolicy   string `mapstructure:"error_policy"`
	MaxPayloadLen int    `mapstructure:"max_payload_len"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	return config, nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := ndef.ParseErrorPolicy(c.Codec.ErrorPolicy); err != nil {
		return err
	}
	if c.Codec.MaxPayloadLen < 0 {
		return errors.Errorf("invalid max_payload_len %d", c.Codec.MaxPayloadLen)
	}
	switch c.Output.Format {
	case OutputFormatTable, OutputFormatText, OutputFormatHex:
	default:
		return errors.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}

// DecodeOptions returns the codec options described by the [codec] section.
// Records are decoded with ndef.DefaultRegistry.
func (c *Config) DecodeOptions() (*ndef.Options, error) {
	policy, err := ndef.ParseErrorPolicy(c.Codec.ErrorPolicy)
	if err != nil {
		return nil, err
	}
	if c.Codec.MaxPayloadLen < 0 {
		return nil, errors.Errorf("invalid max_payload_len %d", c.Codec.MaxPayloadLen)
	}
	return &ndef.Options{
		Policy:        policy,
		MaxPayloadLen: c.Codec.MaxPayloadLen,
		Registry:      ndef.DefaultRegistry,
	}, nil
}
