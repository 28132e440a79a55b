package util

import (
	"log"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

// Config is Nexus base configuration
type Config struct {
	Server Server `yaml:"server"`
	Nexus  Nexus  `yaml:"nexus"`
}

type Server struct {
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	ListenAddr    string `yaml:"listenAddr"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	EnableTrace   bool   `yaml:"enableTrace"`
}

type Nexus struct {
	FQDN          string `yaml:"fqdn"`
	TokenSecret   string `yaml:"tokenSecret"`
	TokenTTLMin   int    `yaml:"tokenTTLMin"`
	DefaultStatus string `yaml:"defaultStatus"`

	PointBuy PointBuy `yaml:"pointBuy"`
	Draft    Draft    `yaml:"draft"`
}

// PointBuy is the attribute allocation tuning
type PointBuy struct {
	Floor   int `yaml:"floor"`
	Ceiling int `yaml:"ceiling"`
	AttrMin int `yaml:"attrMin"`
	AttrMax int `yaml:"attrMax"`
}

// Draft is the wizard draft-store tuning
type Draft struct {
	TTLHours   int `yaml:"ttlHours"`
	DebounceMS int `yaml:"debounceMs"`
}

// Load loads nexus config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open configuration file:", err)
		return err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		log.Fatal("failed to load configuration file:", err)
		return err
	}

	c.ApplyDefaults()

	return nil
}

// ApplyDefaults fills unset tuning values
func (c *Config) ApplyDefaults() {
	if c.Nexus.PointBuy.Floor == 0 {
		c.Nexus.PointBuy.Floor = 30
	}
	if c.Nexus.PointBuy.Ceiling == 0 {
		c.Nexus.PointBuy.Ceiling = 42
	}
	if c.Nexus.PointBuy.AttrMin == 0 {
		c.Nexus.PointBuy.AttrMin = 1
	}
	if c.Nexus.PointBuy.AttrMax == 0 {
		c.Nexus.PointBuy.AttrMax = 12
	}
	if c.Nexus.Draft.TTLHours == 0 {
		c.Nexus.Draft.TTLHours = 72
	}
	if c.Nexus.Draft.DebounceMS == 0 {
		c.Nexus.Draft.DebounceMS = 800
	}
	if c.Nexus.TokenTTLMin == 0 {
		c.Nexus.TokenTTLMin = 60
	}
	if c.Nexus.DefaultStatus == "" {
		c.Nexus.DefaultStatus = "steady"
	}
}

// DraftTTL returns the draft expiry as a duration
func (c Config) DraftTTL() time.Duration {
	return time.Duration(c.Nexus.Draft.TTLHours) * time.Hour
}

// DraftDebounce returns the autosave debounce as a duration
func (c Config) DraftDebounce() time.Duration {
	return time.Duration(c.Nexus.Draft.DebounceMS) * time.Millisecond
}
