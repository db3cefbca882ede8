package config

import (
	"flag"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddress = ":3000"
	defaultDatabaseDSN   = ""
	defaultUropayBaseURL = "https://api.uropay.me"
	defaultMerchantName  = "SimplePay Merchant"
	defaultLogLevel      = "debug"
	defaultEnvironment   = "development"
)

type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	UropayBaseURL  string
	UropayAPIKey   string
	UropaySecret   string
	MerchantVPA    string
	MerchantName   string
	LogLevel       string
	Environment    string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		// optional .env file, real environment wins
		godotenv.Load()

		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "payment gateway server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "payment gateway database DSN")
		flag.StringVar(&cfg.UropayBaseURL, "u", defaultUropayBaseURL, "uropay API base URL")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if baseURLEnv := os.Getenv("UROPAY_BASE_URL"); baseURLEnv != "" {
			cfg.UropayBaseURL = baseURLEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		// gateway credentials are environment only, validated per request
		cfg.UropayAPIKey = os.Getenv("URO_API_KEY")
		cfg.UropaySecret = os.Getenv("UROPAY_SECRET_KEY")
		cfg.MerchantVPA = os.Getenv("OWNER_UPI")

		cfg.MerchantName = defaultMerchantName
		if nameEnv := os.Getenv("MERCHANT_NAME"); nameEnv != "" {
			cfg.MerchantName = nameEnv
		}

		cfg.Environment = defaultEnvironment
		if envEnv := os.Getenv("ENVIRONMENT"); envEnv != "" {
			cfg.Environment = envEnv
		}

		singleton = &cfg
	})

	return singleton, nil
}

// IsProduction reports whether service is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasGatewayCredentials reports whether all uropay credentials are set.
func (c *Config) HasGatewayCredentials() bool {
	return c.UropayAPIKey != "" && c.UropaySecret != "" && c.MerchantVPA != ""
}
