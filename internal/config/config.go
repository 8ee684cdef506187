package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the whole runtime configuration surface of the authority.
type Config struct {
	Bind        string
	Port        int
	Origins     []string
	RevertDelay time.Duration
	Verbose     bool
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.RevertDelay <= 0 {
		return fmt.Errorf("revert delay must be positive: %s", c.RevertDelay)
	}
	if len(c.Origins) == 0 {
		return errors.New("at least one allowed origin pattern is required")
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// BindFlags registers the flag set and binds each flag to its WORDMATCH_
// environment variable. Flags set explicitly on the command line win over
// the environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix("WORDMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&c.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: WORDMATCH_BIND)")
	fs.IntVarP(&c.Port, "port", "p", 3001, "port to listen on (env: WORDMATCH_PORT)")
	fs.StringSliceVar(&c.Origins, "origin", []string{"*"}, "allowed origin pattern, repeatable (env: WORDMATCH_ORIGIN)")
	fs.DurationVar(&c.RevertDelay, "revert-delay", 3*time.Second, "how long mismatched cards stay face up (env: WORDMATCH_REVERT_DELAY)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "enable debug logging (env: WORDMATCH_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
