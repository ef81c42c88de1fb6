package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory" // sin persistencia; demos y desarrollo local
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	AMQP  AMQPConfig
	Admin AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona usada para calcular "hoy" en el resumen de leche
}

// Location devuelve la zona horaria configurada; UTC si el nombre no es válido.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración del almacén de entregas.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | mysql | sqlite | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplica migraciones al iniciar
}

// ConnectionString devuelve el DSN a usar según el driver.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.Driver {
	case DriverMySQL:
		return c.MySQLDSN()
	case DriverSQLite:
		if c.DBName == "" {
			return "lecheria.db"
		}
		return c.DBName
	default:
		return c.DSN()
	}
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

// MySQLDSN devuelve el DSN de go-sql-driver/mysql con parseTime activo (DATE -> time.Time).
// FormatDSN admite credenciales con '@', '/' o ':'.
func (c DBConfig) MySQLDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.MultiStatements = true
	return mc.FormatDSN()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AMQPConfig configuración del publicador de eventos. URL vacía = eventos desactivados.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// AdminConfig cuenta administradora creada (o elevada) al iniciar. AccountNo vacío = desactivado.
type AdminConfig struct {
	AccountNo string
	Name      string
	Password  string
}

// Enabled indica si hay que asegurar la cuenta admin al iniciar.
func (c AdminConfig) Enabled() bool {
	return c.AccountNo != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_DRIVER, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	driver := strings.ToLower(getString(v, "DB_DRIVER", DriverPostgres))
	switch driver {
	case DriverPostgres, DriverMySQL, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("config: DB_DRIVER no soportado: %q", driver)
	}

	defaultPort := 5432
	if driver == DriverMySQL {
		defaultPort = 3306
	}

	// DB_PASS y PORT se aceptan por compatibilidad con los despliegues existentes.
	password := getString(v, "DB_PASSWORD", getString(v, "DB_PASS", ""))
	httpPort := getInt(v, "HTTP_PORT", getInt(v, "PORT", 5000))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "lecheria-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "UTC"),
		},
		DB: DBConfig{
			Driver:      driver,
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", defaultPort),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    password,
			DBName:      getString(v, "DB_NAME", "lecheria"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "lecheria-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        httpPort,
			CORSOrigins: splitList(getString(v, "CORS_ORIGINS", "http://localhost:3000")),
		},
		AMQP: AMQPConfig{
			URL:      getString(v, "AMQP_URL", ""),
			Exchange: getString(v, "AMQP_EXCHANGE", "lecheria"),
		},
		Admin: AdminConfig{
			AccountNo: strings.TrimSpace(getString(v, "ADMIN_ACCOUNT_NO", "")),
			Name:      getString(v, "ADMIN_NAME", "Administrador"),
			Password:  getString(v, "ADMIN_PASSWORD", ""),
		},
	}
	if cfg.Admin.Enabled() && cfg.Admin.Password == "" {
		return nil, fmt.Errorf("config: ADMIN_PASSWORD es requerido cuando ADMIN_ACCOUNT_NO está definido")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
