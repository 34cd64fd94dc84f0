package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
	"github.com/arnoldongithub/atlantic-anvil/internal/sources"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "ANVIL_IMPORTER_CONFIG"
	logLevelEnv     = "LOG_LEVEL"
	storeDriverEnv  = "STORE_DRIVER"
	storeURLEnv     = "STORE_URL"
	storeAdminEnv   = "STORE_ADMIN_KEY"
	summarizeEnv    = "ENABLE_SUMMARIZATION"
	backendEnv      = "SUMMARIZATION_BACKEND"
	redisAddrEnv    = "REDIS_ADDR"
	redisPassEnv    = "REDIS_PASS"
	kafkaBrokersEnv = "KAFKA_BROKERS"
	kafkaTopicEnv   = "KAFKA_TOPIC"
)

// Summarization backends.
const (
	BackendStore = "store"
	BackendRedis = "redis"
	BackendKafka = "kafka"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging        LoggingConfig             `yaml:"logging"`
	Store          StoreConfig               `yaml:"store"`
	Fetcher        FetcherConfig             `yaml:"fetcher"`
	Importer       ImporterConfig            `yaml:"importer"`
	Scheduler      SchedulerConfig           `yaml:"scheduler"`
	Summarization  SummarizationConfig       `yaml:"summarization"`
	SourceDefaults SourceDefaultsConfig      `yaml:"sourceDefaults"`
	Sources        []domain.SourceDefinition `yaml:"sources"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig describes the content store connection.
type StoreConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	AdminKey string `yaml:"adminKey"`
}

// FetcherConfig bounds every feed request.
type FetcherConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRedirects int           `yaml:"maxRedirects"`
	UserAgent    string        `yaml:"userAgent"`
}

// ImporterConfig limits the work of one run.
type ImporterConfig struct {
	Concurrency       int `yaml:"concurrency"`
	MaxEntriesPerFeed int `yaml:"maxEntriesPerFeed"`
}

// SchedulerConfig defines when scheduled imports run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// SummarizationConfig gates and routes post-ingestion summarization jobs.
type SummarizationConfig struct {
	Enabled bool        `yaml:"enabled"`
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
	Kafka   KafkaConfig `yaml:"kafka"`
}

// RedisConfig locates the Redis job queue.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// KafkaConfig locates the Kafka job topic.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// SourceDefaultsConfig is applied to sources created on first sight.
type SourceDefaultsConfig struct {
	CountryCode       string `yaml:"countryCode"`
	LanguageCode      string `yaml:"languageCode"`
	Category          string `yaml:"category"`
	DescriptionSuffix string `yaml:"descriptionSuffix"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load .env: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = sources.Defaults()
	}

	return cfg
}

// Validate reports settings the application cannot start with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Store.URL == "" {
		return fmt.Errorf("store url is empty")
	}

	if !c.Summarization.Enabled {
		return nil
	}
	switch c.Summarization.Backend {
	case BackendStore:
	case BackendRedis:
		if c.Summarization.Redis.Addr == "" {
			return fmt.Errorf("summarization backend redis needs an address")
		}
	case BackendKafka:
		if len(c.Summarization.Kafka.Brokers) == 0 {
			return fmt.Errorf("summarization backend kafka needs brokers")
		}
	default:
		return fmt.Errorf("unsupported summarization backend %q", c.Summarization.Backend)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(storeDriverEnv); v != "" {
		c.Store.Driver = v
	}

	if v := os.Getenv(storeURLEnv); v != "" {
		c.Store.URL = v
	}

	if v := os.Getenv(storeAdminEnv); v != "" {
		c.Store.AdminKey = v
	}

	if v, ok := os.LookupEnv(summarizeEnv); ok {
		c.Summarization.Enabled = v == "true"
	}

	if v := os.Getenv(backendEnv); v != "" {
		c.Summarization.Backend = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Summarization.Redis.Addr = v
	}

	if v := os.Getenv(redisPassEnv); v != "" {
		c.Summarization.Redis.Password = v
	}

	if v := os.Getenv(kafkaBrokersEnv); v != "" {
		c.Summarization.Kafka.Brokers = splitList(v)
	}

	if v := os.Getenv(kafkaTopicEnv); v != "" {
		c.Summarization.Kafka.Topic = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Store.Driver != "" {
		base.Store.Driver = override.Store.Driver
	}
	if override.Store.URL != "" {
		base.Store.URL = override.Store.URL
	}
	if override.Store.AdminKey != "" {
		base.Store.AdminKey = override.Store.AdminKey
	}

	if override.Fetcher.Timeout > 0 {
		base.Fetcher.Timeout = override.Fetcher.Timeout
	}
	if override.Fetcher.MaxRedirects > 0 {
		base.Fetcher.MaxRedirects = override.Fetcher.MaxRedirects
	}
	if override.Fetcher.UserAgent != "" {
		base.Fetcher.UserAgent = override.Fetcher.UserAgent
	}

	if override.Importer.Concurrency > 0 {
		base.Importer.Concurrency = override.Importer.Concurrency
	}
	if override.Importer.MaxEntriesPerFeed > 0 {
		base.Importer.MaxEntriesPerFeed = override.Importer.MaxEntriesPerFeed
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Summarization.Enabled {
		base.Summarization.Enabled = true
	}
	if override.Summarization.Backend != "" {
		base.Summarization.Backend = override.Summarization.Backend
	}
	if override.Summarization.Redis.Addr != "" {
		base.Summarization.Redis = override.Summarization.Redis
	}
	if len(override.Summarization.Kafka.Brokers) > 0 {
		base.Summarization.Kafka.Brokers = override.Summarization.Kafka.Brokers
	}
	if override.Summarization.Kafka.Topic != "" {
		base.Summarization.Kafka.Topic = override.Summarization.Kafka.Topic
	}

	if override.SourceDefaults.CountryCode != "" {
		base.SourceDefaults.CountryCode = override.SourceDefaults.CountryCode
	}
	if override.SourceDefaults.LanguageCode != "" {
		base.SourceDefaults.LanguageCode = override.SourceDefaults.LanguageCode
	}
	if override.SourceDefaults.Category != "" {
		base.SourceDefaults.Category = override.SourceDefaults.Category
	}
	if override.SourceDefaults.DescriptionSuffix != "" {
		base.SourceDefaults.DescriptionSuffix = override.SourceDefaults.DescriptionSuffix
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Store:   StoreConfig{Driver: "sqlite", URL: "atlantic-anvil.db"},
		Fetcher: FetcherConfig{
			Timeout:      10 * time.Second,
			MaxRedirects: 5,
			UserAgent:    "Atlantic Anvil News Aggregator/1.0",
		},
		Importer:  ImporterConfig{Concurrency: 5, MaxEntriesPerFeed: 15},
		Scheduler: SchedulerConfig{CronExpression: "*/30 * * * *", Timezone: defaultTimezone, location: tz},
		Summarization: SummarizationConfig{
			Backend: BackendStore,
			Redis:   RedisConfig{Prefix: "anvil:summarize"},
			Kafka:   KafkaConfig{Topic: "article-summarization"},
		},
		SourceDefaults: SourceDefaultsConfig{
			CountryCode:       "US",
			LanguageCode:      "en",
			Category:          "conservative",
			DescriptionSuffix: "Conservative News Source",
		},
		Sources: sources.Defaults(),
	}
}
