package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Redis holds the document store connection details.
	Redis RedisConfig `mapstructure:",squash"`

	// Couriers holds the per-carrier API endpoints and credentials.
	Couriers CouriersConfig `mapstructure:",squash"`
}

// RedisConfig holds the redis connection details.
type RedisConfig struct {
	// URL is the redis connection string, e.g. redis://:password@host:6379/0.
	URL string `mapstructure:"REDIS_URL" required:"true"`
}

// CouriersConfig holds the base URLs and credentials for each carrier API.
// Missing credentials never fail config loading; the affected adapter simply
// returns no live data when called.
type CouriersConfig struct {
	// CourierGuyURL is the base URL for The Courier Guy tracking API.
	CourierGuyURL string `mapstructure:"COURIER_GUY_URL" default:"https://api.thecourierguy.co.za"`
	// CourierGuyAPIKey authenticates requests to The Courier Guy API.
	CourierGuyAPIKey string `mapstructure:"COURIER_GUY_API_KEY"`
	// FastwayURL is the base URL for the Fastway tracking API.
	FastwayURL string `mapstructure:"FASTWAY_URL" default:"https://api.fastway.org"`
	// AramexURL is the base URL for the Aramex shipment tracking API.
	AramexURL string `mapstructure:"ARAMEX_URL" default:"https://ws.aramex.net"`
	// DHLURL is the base URL for the DHL unified tracking API.
	DHLURL string `mapstructure:"DHL_URL" default:"https://api-eu.dhl.com"`
	// DHLAPIKey authenticates requests to the DHL API.
	DHLAPIKey string `mapstructure:"DHL_API_KEY"`
	// PaxiURL is the public tracking page used by the PAXI scraping adapter.
	PaxiURL string `mapstructure:"PAXI_URL" default:"https://www.paxi.co.za/track"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
