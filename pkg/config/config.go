package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Entornos aceptados en APP_ENV.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	DB   DBConfig
	HTTP HTTPConfig
	CORS CORSConfig
	JWT  JWTConfig
	Log  LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production, test
	Name      string
	APIPrefix string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoCreate  bool // crea la base si no existe antes de conectar
	AutoMigrate bool // aplica migraciones al arrancar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CORSConfig orígenes y métodos permitidos.
type CORSConfig struct {
	Origin  string
	Methods string
}

// JWTConfig configuración de JWT. Secret vacío deja las rutas públicas.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// LogConfig nivel de log; vacío = debug en development, info en el resto.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, HTTP_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port, err := getInt(v, "HTTP_PORT", 0)
	if err != nil {
		return nil, err
	}
	if port == 0 {
		// PORT es el nombre usado por la mayoría de plataformas PaaS.
		if port, err = getInt(v, "PORT", 3000); err != nil {
			return nil, err
		}
	}
	dbPort, err := getInt(v, "DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	jwtExp, err := getInt(v, "JWT_EXPIRATION_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", EnvDevelopment),
			Name:      getString(v, "APP_NAME", "energy-invoices-api"),
			APIPrefix: getString(v, "API_PREFIX", "/api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", "postgres"),
			DBName:      getString(v, "DB_NAME", "energy_invoices"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoCreate:  getBool(v, "DB_AUTO_CREATE", true),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: port,
		},
		CORS: CORSConfig{
			Origin:  getString(v, "CORS_ORIGIN", "http://localhost:8080"),
			Methods: "GET,PUT,POST,DELETE",
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: jwtExp,
			Issuer:     getString(v, "JWT_ISSUER", "energy-invoices-api"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", ""),
		},
	}

	return cfg, nil
}

// Validate revisa los valores que impedirían arrancar el servidor.
func (c *Config) Validate() error {
	switch c.App.Env {
	case EnvDevelopment, EnvStaging, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("APP_ENV inválido %q: debe ser development, staging, production o test", c.App.Env)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("puerto HTTP inválido %d: debe estar entre 1 y 65535", c.HTTP.Port)
	}
	if c.DB.DatabaseURL == "" {
		if c.DB.Host == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_HOST y DB_NAME son requeridos si no se define DATABASE_URL")
		}
		if c.DB.Port < 1 || c.DB.Port > 65535 {
			return fmt.Errorf("puerto DB inválido %d: debe estar entre 1 y 65535", c.DB.Port)
		}
	}
	if !strings.HasPrefix(c.App.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX debe empezar por '/': %q", c.App.APIPrefix)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) (int, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return 0, fmt.Errorf("%s: se esperaba un número, llegó %q", key, v.GetString(key))
		}
		return n, nil
	default:
		return v.GetInt(key), nil
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
