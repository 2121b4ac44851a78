package config

import (
	"flag"
	"fmt"
	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"os"
	"time"
)

type Config struct {
	APIBaseURL                string        `env:"API_BASE_URL" envDefault:"http://localhost:8080" validate:"url"`
	ShopLabel                 string        `env:"SHOP_LABEL" envDefault:"pointcard CLI"`
	TokenStorePath            string        `env:"TOKEN_STORE_PATH" envDefault:"pointcard.db" validate:"filepath"`
	LogLevel                  string        `env:"LOG_LEVEL" envDefault:"debug" validate:"loglevel"`
	HTTPClientTimeout         time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
	ScanSessionTimeout        time.Duration `env:"SCAN_SESSION_TIMEOUT" envDefault:"2m"`
	DispatchQueueCapacity     int           `env:"DISPATCH_QUEUE_CAPACITY" envDefault:"64"`
	StubRunAddr               string        `env:"STUB_SERVER_ADDRESS" envDefault:":8080" validate:"hostname_port"`
	AuthTokenSigningSecretKey string        `env:"AUTH_TOKEN_SIGNING_SECRET_KEY" envDefault:"LduYtmp2gWSRuyQyRHqbog=="`
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warning": true,
		"error":   true,
		"fatal":   true,
	}

	return allowedLogLevels[value]
}

func (conf *Config) Validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	return validate.Struct(conf)
}

type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("unable to load .env file:  %w", err)
	}

	values := Config{}

	err = env.Parse(&values)
	if err != nil {
		return nil, err
	}

	if !options.disableFlagsParsing {
		flag.StringVar(&values.APIBaseURL, "a", values.APIBaseURL, "base URL of the points backend")
		flag.StringVar(&values.TokenStorePath, "t", values.TokenStorePath, "path to the auth token store file")
		flag.StringVar(&values.ShopLabel, "s", values.ShopLabel, "shop label sent with points transactions")
		flag.Parse()
	}

	return &values, values.Validate()
}
