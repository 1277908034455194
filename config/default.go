package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"github.com/pkg/errors"

	"ndefkit/log"
	"ndefkit/ndef"
)

const ConfigFilename = "config.toml"

var DefaultConfig = Config{
	LogLevel: log.LevelInfo.String(),
	Codec: CodecConfig{
		ErrorPolicy:   ndef.Strict.String(),
		MaxPayloadLen: ndef.DefaultMaxPayloadLen,
	},
	Output: OutputConfig{
		Format: OutputFormatTable,
	},
}

const defaultConfigTemplateText = `# ndeftool Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Configures how messages are decoded and encoded.
[codec]
  # Sets how malformed messages are handled. Can be one of the following values:
  # - strict: fail on any framing or decode error
  # - relaxed: tolerate missing or misplaced begin/end flags
  # - ignore: also stop quietly at the first record that cannot be decoded
  error_policy = "{{.Codec.ErrorPolicy}}"
  # Sets the largest record payload in octets.
  max_payload_len = {{.Codec.MaxPayloadLen}}

# Configures how records are printed.
[output]
  # Can be one of table, text or hex.
  format = "{{.Output.Format}}"
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFilename), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

// LoadConfig reads the config file in homeDir. A home directory that was never
// initialized yields a copy of DefaultConfig.
func LoadConfig(homeDir string) (*Config, error) {
	exists, err := HomeDirExists(homeDir)
	if err != nil {
		return nil, err
	}
	if !exists {
		cfg := DefaultConfig
		return &cfg, nil
	}
	cfg, err := ReadConfigFile(homeDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFilename), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
