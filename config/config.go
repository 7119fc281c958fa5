package config

import (
	"os"
	"slices"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

const (
	PersistenceMemory   = "memory"
	PersistenceValkey   = "valkey"
	PersistencePostgres = "postgres"
)

type Config struct {
	GeneralVersion          string `mapstructure:"GENERAL_VERSION"`
	Environment             string `mapstructure:"ENVIRONMENT"`
	ServerPort              int    `mapstructure:"SERVER_PORT"`
	CorsAllowOrigins        string `mapstructure:"CORS_ALLOW_ORIGINS"`
	PersistenceDriver       string `mapstructure:"PERSISTENCE_DRIVER"`
	PersistenceSlotKey      string `mapstructure:"PERSISTENCE_SLOT_KEY"`
	AutosaveIntervalSeconds int    `mapstructure:"AUTOSAVE_INTERVAL_SECONDS"`
	DatabaseHost            string `mapstructure:"DB_HOST"`
	DatabasePort            int    `mapstructure:"DB_PORT"`
	DatabaseName            string `mapstructure:"DB_NAME"`
	DatabaseUser            string `mapstructure:"DB_USER"`
	DatabasePassword        string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress    string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort       int    `mapstructure:"DB_CACHE_PORT"`
	RawgAPIKey              string `mapstructure:"RAWG_API_KEY"`
	RawgBaseURL             string `mapstructure:"RAWG_BASE_URL"`
	SearchDebounceMS        int    `mapstructure:"SEARCH_DEBOUNCE_MS"`
}

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "CORS_ALLOW_ORIGINS",
	"PERSISTENCE_DRIVER", "PERSISTENCE_SLOT_KEY", "AUTOSAVE_INTERVAL_SECONDS",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
	"RAWG_API_KEY", "RAWG_BASE_URL", "SEARCH_DEBOUNCE_MS",
}

func setDefaults() {
	viper.SetDefault("GENERAL_VERSION", "dev")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", 8288)
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("PERSISTENCE_DRIVER", PersistenceMemory)
	viper.SetDefault("PERSISTENCE_SLOT_KEY", "gameshelf_state")
	viper.SetDefault("AUTOSAVE_INTERVAL_SECONDS", 30)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("RAWG_BASE_URL", "https://api.rawg.io/api/games")
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 500)
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()
	setDefaults()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	// Defaults make viper.IsSet always true, so look at the process env.
	_, envVarsSet := os.LookupEnv("SERVER_PORT")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"persistence", config.PersistenceDriver,
	)
	return config, nil
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	drivers := []string{PersistenceMemory, PersistenceValkey, PersistencePostgres}
	if !slices.Contains(drivers, config.PersistenceDriver) {
		return log.Error(
			"Fatal error: unknown persistence driver",
			"driver", config.PersistenceDriver,
		)
	}

	if config.PersistenceSlotKey == "" {
		return log.ErrMsg("Fatal error: PERSISTENCE_SLOT_KEY is empty")
	}

	if config.AutosaveIntervalSeconds <= 0 {
		return log.Error(
			"Fatal error: invalid autosave interval",
			"seconds", config.AutosaveIntervalSeconds,
		)
	}

	if config.PersistenceDriver == PersistenceValkey && !config.CacheConfigured() {
		return log.ErrMsg("Fatal error: DB_CACHE_ADDRESS and DB_CACHE_PORT required for valkey persistence")
	}

	if config.PersistenceDriver == PersistencePostgres &&
		(config.DatabaseHost == "" || config.DatabaseName == "" || config.DatabaseUser == "") {
		return log.ErrMsg("Fatal error: DB_HOST, DB_NAME and DB_USER required for postgres persistence")
	}

	if config.SearchDebounceMS < 0 {
		return log.Error("Fatal error: invalid search debounce", "ms", config.SearchDebounceMS)
	}

	return nil
}

// CacheConfigured reports whether a Valkey server is available for the slot,
// the event bus and the search cache.
func (c Config) CacheConfigured() bool {
	return c.DatabaseCacheAddress != "" && c.DatabaseCachePort > 0
}
