// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"

	"github.com/alvinbaena/pwd-meter/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "PWDMETER"

// Config is the configuration of the serve command. Every key can be set
// with a PWDMETER_ prefixed env var, a .env file or the matching flag.
type Config struct {
	Port       uint16  `mapstructure:"PORT" validate:"required"`
	Host       string  `mapstructure:"HOST" validate:"required"`
	SelfTLS    bool    `mapstructure:"SELF_TLS" validate:"required_without_all=TLSCert TLSKey"`
	TLSCert    string  `mapstructure:"TLS_CERT" validate:"required_if=SelfTLS false,required_with=TLSKey"`
	TLSKey     string  `mapstructure:"TLS_KEY" validate:"required_if=SelfTLS false,required_with=TLSCert"`
	Debug      bool    `mapstructure:"DEBUG"`
	PolicyFile string  `mapstructure:"POLICY_FILE"`
	Attacker   string  `mapstructure:"ATTACKER"`
	RateLimit  float64 `mapstructure:"RATE_LIMIT" validate:"gte=0"`
	RateBurst  int     `mapstructure:"RATE_BURST" validate:"min=1"`
	MaxConns   int     `mapstructure:"MAX_CONNS" validate:"gte=0"`
}

// Addr is the address the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

var defaults = map[string]interface{}{
	"PORT":       3100,
	"HOST":       "127.0.0.1",
	"RATE_LIMIT": 10,
	"RATE_BURST": 20,
	"MAX_CONNS":  64,
}

// flagNames maps config keys to the cobra flags that can override them.
var flagNames = map[string]string{
	"PORT":        "port",
	"HOST":        "host",
	"SELF_TLS":    "self-tls",
	"TLS_CERT":    "tls-cert",
	"TLS_KEY":     "tls-key",
	"DEBUG":       "verbose",
	"POLICY_FILE": "policy",
	"ATTACKER":    "attacker",
	"RATE_LIMIT":  "rate-limit",
	"RATE_BURST":  "rate-burst",
	"MAX_CONNS":   "max-conns",
}

func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			bindEnvs(v, fv.Interface(), append(parts, tv)...)
		default:
			_ = v.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without_all":
		return fmt.Sprintf("This field is required if fields [%s] are missing", util.ToScreamingSnakeCase(fe.Param()))
	case "required_if":
		return fmt.Sprintf("This field is required if %s", util.ToScreamingSnakeCase(fe.Param()))
	case "required_with":
		return fmt.Sprintf("This is field requires the presence of %s", util.ToScreamingSnakeCase(fe.Param()))
	case "min", "gte":
		return fmt.Sprintf("This field must be at least %s", fe.Param())
	}
	return fe.Error() // default error
}

// Load reads the configuration from env vars, the optional env files (.env
// when none is given) and the flags that were set on the command line.
func Load(flags *pflag.FlagSet, envFiles ...string) (config Config, err error) {
	// A missing .env file is fine.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	config = Config{}
	bindEnvs(v, config)

	if flags != nil {
		for key, name := range flagNames {
			if flag := flags.Lookup(name); flag != nil {
				if err = v.BindPFlag(key, flag); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("error reading configuration: %w", err)
	}

	if err = validator.New().Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			var msgs []string
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToScreamingSnakeCase(fe.Field()), msgForTag(fe)))
			}
			return Config{}, errors.New(strings.Join(msgs, ". "))
		}
		return Config{}, fmt.Errorf("error validating configuration: %w", err)
	}

	return config, nil
}
