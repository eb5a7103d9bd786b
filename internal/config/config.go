package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `env-default:"local" yaml:"env"`                          // Env is the current environment: local, development, production.
	Postgres PostgresConfig `                    yaml:"postgres" env-required:"true"` // Postgres holds the database configuration
	HTTP     HTTPConfig     `                    yaml:"http"`                         // HTTP holds the REST server configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Dbname   string `yaml:"db_name"`                     // Dbname is the name of the database.
}

// HTTPConfig struct holds the configuration of the REST server.
type HTTPConfig struct {
	Port              int           `yaml:"port"                env-default:"8080"` // Port is the listening port.
	BasePath          string        `yaml:"base_path"`                              // BasePath prefixes the employees resource, e.g. `/api`.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env-default:"5s"`   // ReadHeaderTimeout bounds request header reads.
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env-default:"10s"`  // ShutdownTimeout bounds graceful shutdown.
}

// MustLoad loads the configuration and returns a Config struct.
// Values come from defaults, an optional YAML file at CONFIG_PATH, a .env file and
// the process environment, each overriding the previous one. It panics on invalid input.
func MustLoad() *Config {
	// .env is optional; variables already present in the environment win.
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)
	bindEnv(vpr)

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	readHeaderTimeout, err := time.ParseDuration(vpr.GetString("http.read_header_timeout"))
	if err != nil {
		panic("failed to parse read header timeout from configuration")
	}

	shutdownTimeout, err := time.ParseDuration(vpr.GetString("http.shutdown_timeout"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	return &Config{
		Env: vpr.GetString("env"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		HTTP: HTTPConfig{
			Port:              vpr.GetInt("http.port"),
			BasePath:          vpr.GetString("http.base_path"),
			ReadHeaderTimeout: readHeaderTimeout,
			ShutdownTimeout:   shutdownTimeout,
		},
	}
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "local")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("http.port", 8080)
	vpr.SetDefault("http.base_path", "")
	vpr.SetDefault("http.read_header_timeout", "5s")
	vpr.SetDefault("http.shutdown_timeout", "10s")
}

func bindEnv(vpr *viper.Viper) {
	bindings := map[string]string{
		"env":                      "HESTIA_ENV",
		"postgres.host":            "DB_HOST",
		"postgres.port":            "DB_PORT",
		"postgres.user":            "DB_USERNAME",
		"postgres.password":        "DB_PASSWORD",
		"postgres.db_name":         "DB_NAME",
		"http.port":                "HESTIA_HTTP_PORT",
		"http.base_path":           "HESTIA_BASE_PATH",
		"http.read_header_timeout": "HESTIA_READ_HEADER_TIMEOUT",
		"http.shutdown_timeout":    "HESTIA_SHUTDOWN_TIMEOUT",
	}

	for key, env := range bindings {
		_ = vpr.BindEnv(key, env)
	}
}
