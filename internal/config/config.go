package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/imdario/mergo"
	"github.com/robgonnella/wisp/internal/exception"
	"github.com/robgonnella/wisp/internal/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Credential represents a username / secret pair tried against a device
type Credential struct {
	Username string `yaml:"username" mapstructure:"username"`
	Secret   string `yaml:"secret" mapstructure:"secret"`
}

// Commands represents the remote commands run against each device
type Commands struct {
	Identity    string `yaml:"identity" mapstructure:"identity"`
	Wireless    string `yaml:"wireless" mapstructure:"wireless"`
	WirelessAlt string `yaml:"wireless_alt" mapstructure:"wireless_alt"`
	Export      string `yaml:"export" mapstructure:"export"`
}

// Input represents where target addresses are loaded from
type Input struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Sheet  string `yaml:"sheet" mapstructure:"sheet"`
	Column string `yaml:"column" mapstructure:"column"`
}

// Output represents where result reports are written
type Output struct {
	Results    string `yaml:"results" mapstructure:"results"`
	FailedList string `yaml:"failed_list" mapstructure:"failed_list"`
	Merge      bool   `yaml:"merge" mapstructure:"merge"`
}

// Config represents the data structure of our user provided yaml configuration
type Config struct {
	Credentials []Credential  `yaml:"credentials" mapstructure:"credentials"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Workers     int           `yaml:"workers" mapstructure:"workers"`
	Port        int           `yaml:"port" mapstructure:"port"`
	Preflight   string        `yaml:"preflight" mapstructure:"preflight"`
	Commands    Commands      `yaml:"commands" mapstructure:"commands"`
	Input       Input         `yaml:"input" mapstructure:"input"`
	Output      Output        `yaml:"output" mapstructure:"output"`
}

// Preflight modes
const (
	PreflightNone = ""
	PreflightNmap = "nmap"
	PreflightTCP  = "tcp"
)

// Default returns the configuration used for any value left unset
func Default() *Config {
	return &Config{
		Credentials: []Credential{
			{Username: "admin", Secret: ""},
			{Username: "admin", Secret: "admin"},
		},
		Timeout:   8 * time.Second,
		Workers:   15,
		Port:      22,
		Preflight: PreflightNone,
		Commands: Commands{
			Identity:    "/system identity print",
			Wireless:    "/interface wireless print detail without-paging",
			WirelessAlt: "/interface wifiwave2 print detail without-paging",
			Export:      "/export terse",
		},
		Input: Input{
			Column: "K",
		},
		Output: Output{
			Results:    "device_config_results.xlsx",
			FailedList: "device_config_failed_ips.txt",
		},
	}
}

// New returns unmarshaled data structure of user provided config with
// defaults filled in for anything left out
func New(confPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(confPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	conf := Config{}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&conf, Default()); err != nil {
		return nil, err
	}

	// an explicit empty optional command disables it rather than falling
	// back to the default
	optional := map[string]*string{
		"commands.wireless":     &conf.Commands.Wireless,
		"commands.wireless_alt": &conf.Commands.WirelessAlt,
		"commands.export":       &conf.Commands.Export,
	}

	for key, field := range optional {
		if v.IsSet(key) && v.GetString(key) == "" {
			*field = ""
		}
	}

	return &conf, nil
}

// Validate returns an error wrapping exception.ErrInvalidConfig when the
// configuration cannot drive a run
func Validate(conf Config) error {
	invalid := func(msg string) error {
		return fmt.Errorf("%w: %s", exception.ErrInvalidConfig, msg)
	}

	if len(conf.Credentials) == 0 {
		return invalid("at least one credential is required")
	}

	for i, c := range conf.Credentials {
		if c.Username == "" {
			return invalid(fmt.Sprintf("credential %d has an empty username", i+1))
		}
	}

	if conf.Timeout <= 0 {
		return invalid("timeout must be greater than zero")
	}

	if conf.Workers <= 0 {
		return invalid("workers must be greater than zero")
	}

	if conf.Port <= 0 || conf.Port > 65535 {
		return invalid(fmt.Sprintf("port out of range: %d", conf.Port))
	}

	if conf.Commands.Identity == "" {
		return invalid("identity command cannot be empty")
	}

	modes := []string{PreflightNone, PreflightNmap, PreflightTCP}

	if !util.SliceIncludes(modes, conf.Preflight) {
		return invalid(fmt.Sprintf("unknown preflight mode: %s", conf.Preflight))
	}

	return nil
}

// Write persists conf as yaml to the globally configured config file
func Write(conf Config) error {
	configFile, ok := viper.Get("config-file").(string)

	if !ok || configFile == "" {
		return errors.New("failed to find config file path")
	}

	file, err := os.Create(configFile)

	if err != nil {
		return err
	}

	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	return encoder.Encode(conf)
}
