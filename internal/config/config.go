// Package config loads domobject settings from domobject.yaml, DOMOBJECT_* environment
// variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "DOMOBJECT"
	ConfigName = "domobject"

	PubSubNone  = ""
	PubSubNATS  = "nats"
	PubSubKafka = "kafka"
)

var ErrUnknownPubSub = errors.New("unknown pubsub driver")

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Browser struct {
	// Remote is the control URL of an already running browser.
	Remote         string `mapstructure:"remote"`
	Headless       bool   `mapstructure:"headless"`
	ConnectRetries uint64 `mapstructure:"connect_retries"`
}

type HTTP struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type API struct {
	Addr string `mapstructure:"addr"`
}

type PubSub struct {
	Driver  string   `mapstructure:"driver"`
	URL     string   `mapstructure:"url"`
	Brokers []string `mapstructure:"brokers"`
	GroupID string   `mapstructure:"group_id"`

	RequestTopic string `mapstructure:"request_topic"`
	ResultTopic  string `mapstructure:"result_topic"`
}

type Config struct {
	Backend  string        `mapstructure:"backend"`
	MaxDepth int           `mapstructure:"max_depth"`
	Timeout  time.Duration `mapstructure:"timeout"`

	Log     Log     `mapstructure:"log"`
	Browser Browser `mapstructure:"browser"`
	HTTP    HTTP    `mapstructure:"http"`
	API     API     `mapstructure:"api"`
	PubSub  PubSub  `mapstructure:"pubsub"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend", "html")
	v.SetDefault("max_depth", 0)
	v.SetDefault("timeout", time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("browser.remote", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.connect_retries", 3)

	v.SetDefault("http.timeout", 30*time.Second)

	v.SetDefault("api.addr", ":8080")

	v.SetDefault("pubsub.driver", PubSubNone)
	v.SetDefault("pubsub.url", "")
	v.SetDefault("pubsub.brokers", []string{"localhost:9092"})
	v.SetDefault("pubsub.group_id", "domobject")
	v.SetDefault("pubsub.request_topic", "domobject.requests")
	v.SetDefault("pubsub.result_topic", "domobject.snapshots")
}

// Load reads file, or domobject.yaml from the working directory when file is empty, on top
// of the defaults. A missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PubSub.Driver {
	case PubSubNone, PubSubNATS, PubSubKafka:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPubSub, c.PubSub.Driver)
	}
}

// ConfigureLogging applies the log settings to the standard logrus logger.
func (c *Config) ConfigureLogging() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return nil
}
