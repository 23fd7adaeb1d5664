package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/exception"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("loads yaml and fills defaults", func(st *testing.T) {
		confPath := filepath.Join(st.TempDir(), "config.yml")

		raw := []byte(`
credentials:
  - username: admin
    secret: one
timeout: 3s
workers: 4
commands:
  identity: /system identity print
input:
  path: devices.xlsx
`)

		err := os.WriteFile(confPath, raw, 0644)

		assert.NoError(st, err)

		conf, err := config.New(confPath)

		assert.NoError(st, err)
		assert.Equal(st, []config.Credential{{Username: "admin", Secret: "one"}}, conf.Credentials)
		assert.Equal(st, 3*time.Second, conf.Timeout)
		assert.Equal(st, 4, conf.Workers)
		assert.Equal(st, 22, conf.Port)
		assert.Equal(st, "/export terse", conf.Commands.Export)
		assert.Equal(st, "devices.xlsx", conf.Input.Path)
		assert.Equal(st, "K", conf.Input.Column)
		assert.Equal(st, "device_config_results.xlsx", conf.Output.Results)
		assert.NoError(st, config.Validate(*conf))
	})

	t.Run("keeps explicitly disabled optional commands empty", func(st *testing.T) {
		confPath := filepath.Join(st.TempDir(), "config.yml")

		raw := []byte(`
commands:
  identity: /system identity print
  wireless_alt: ""
  export: ""
`)

		err := os.WriteFile(confPath, raw, 0644)

		assert.NoError(st, err)

		conf, err := config.New(confPath)

		assert.NoError(st, err)
		assert.Equal(st, "", conf.Commands.Export)
		assert.Equal(st, "", conf.Commands.WirelessAlt)
		assert.Equal(st, "/interface wireless print detail without-paging", conf.Commands.Wireless)
		assert.NoError(st, config.Validate(*conf))
	})

	t.Run("returns error for missing file", func(st *testing.T) {
		_, err := config.New(filepath.Join(st.TempDir(), "missing.yml"))

		assert.Error(st, err)
	})

	t.Run("default config is valid", func(st *testing.T) {
		assert.NoError(st, config.Validate(*config.Default()))
	})

	t.Run("writes config that can be read back", func(st *testing.T) {
		confPath := filepath.Join(st.TempDir(), "written.yml")

		viper.Set("config-file", confPath)

		defer viper.Set("config-file", nil)

		conf := config.Default()
		conf.Workers = 3

		err := config.Write(*conf)

		assert.NoError(st, err)

		readBack, err := config.New(confPath)

		assert.NoError(st, err)
		assert.Equal(st, conf, readBack)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{
			name:   "rejects empty credential list",
			modify: func(c *config.Config) { c.Credentials = nil },
		},
		{
			name: "rejects credential without username",
			modify: func(c *config.Config) {
				c.Credentials = []config.Credential{{Secret: "x"}}
			},
		},
		{
			name:   "rejects zero timeout",
			modify: func(c *config.Config) { c.Timeout = 0 },
		},
		{
			name:   "rejects zero workers",
			modify: func(c *config.Config) { c.Workers = 0 },
		},
		{
			name:   "rejects out of range port",
			modify: func(c *config.Config) { c.Port = 70000 },
		},
		{
			name:   "rejects empty identity command",
			modify: func(c *config.Config) { c.Commands.Identity = "" },
		},
		{
			name:   "rejects unknown preflight mode",
			modify: func(c *config.Config) { c.Preflight = "icmp" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(st *testing.T) {
			conf := config.Default()
			tt.modify(conf)

			err := config.Validate(*conf)

			assert.Error(st, err)
			assert.True(st, errors.Is(err, exception.ErrInvalidConfig))
		})
	}
}
