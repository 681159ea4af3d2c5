package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa todo lo configurable del proceso.
type Config struct {
	HTTP struct {
		Port string
	}
	Log struct {
		Level  string
		Format string
	}
	App struct {
		Name string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Reassign struct {
		// Max es el largo máximo de la cadena de reasignaciones (0 = sin límite).
		Max int
	}
	Seed struct {
		Enabled bool
	}
}

const envPrefix = "lifesaver"

// Load lee config desde (en orden de prioridad):
// - env LIFESAVER_HTTP_PORT, LIFESAVER_DB_DSN, etc.
// - archivo YAML opcional (file, o ./config.yaml si existe)
// - defaults
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, err
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("app.name", "blood-donor-network")
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("reassign.max", 10)
	v.SetDefault("seed.enabled", true)
}

func fromViper(v *viper.Viper) Config {
	var c Config
	c.HTTP.Port = v.GetString("http.port")
	c.Log.Level = v.GetString("log.level")
	c.Log.Format = v.GetString("log.format")
	c.App.Name = v.GetString("app.name")
	c.DB.DSN = v.GetString("db.dsn")
	c.Redis.Addr = v.GetString("redis.addr")
	c.Redis.Password = v.GetString("redis.password")
	c.Redis.DB = v.GetInt("redis.db")
	c.Reassign.Max = v.GetInt("reassign.max")
	c.Seed.Enabled = v.GetBool("seed.enabled")
	return c
}
