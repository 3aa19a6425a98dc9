package cfgstruct

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Address      string        `help:"listen address" default:"0.0.0.0:3333"`
	MaxBodyBytes int64         `help:"request body limit" default:"1024"`
	Debug        bool          `help:"debug mode" default:"false"`
	Timeout      time.Duration `help:"shutdown timeout" default:"5s"`
	Log          struct {
		Level string `help:"log level" default:"info"`
	}
}

func TestBindDefaults(t *testing.T) {
	var cfg testConfig
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(flags, &cfg)

	require.NoError(t, flags.Parse(nil))
	require.Equal(t, "0.0.0.0:3333", cfg.Address)
	require.Equal(t, int64(1024), cfg.MaxBodyBytes)
	require.False(t, cfg.Debug)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestBindFlagNames(t *testing.T) {
	var cfg testConfig
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(flags, &cfg)

	for _, name := range []string{"address", "max-body-bytes", "debug", "timeout", "log.level"} {
		require.NotNil(t, flags.Lookup(name), name)
	}
}

func TestBindParse(t *testing.T) {
	var cfg testConfig
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(flags, &cfg)

	require.NoError(t, flags.Parse([]string{"--address=:8080", "--log.level=debug"}))
	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestHyphenate(t *testing.T) {
	require.Equal(t, "max-body-bytes", hyphenate("MaxBodyBytes"))
	require.Equal(t, "api", hyphenate("API"))
	require.Equal(t, "api-key", hyphenate("APIKey"))
	require.Equal(t, "address", hyphenate("Address"))
}
