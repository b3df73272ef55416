package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Providers struct {
		Unsplash struct {
			BaseURL   string `mapstructure:"baseURL"`
			AccessKey string `mapstructure:"accessKey"`
		} `mapstructure:"unsplash"`
		Foursquare struct {
			BaseURL string `mapstructure:"baseURL"`
			APIKey  string `mapstructure:"apiKey"`
		} `mapstructure:"foursquare"`
		OpenTripMap struct {
			BaseURL string `mapstructure:"baseURL"`
			APIKey  string `mapstructure:"apiKey"`
		} `mapstructure:"opentripmap"`
		Wikipedia struct {
			BaseURLTurkish string `mapstructure:"baseURLTurkish"`
			BaseURLEnglish string `mapstructure:"baseURLEnglish"`
		} `mapstructure:"wikipedia"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"providers"`
	// Pipeline holds the pipeline's tuning constants. The defaults mirror the
	// values the mobile client shipped with; they are configurable, not derived.
	Pipeline struct {
		MinRelevanceScore int           `mapstructure:"minRelevanceScore"`
		ExtractMaxChars   int           `mapstructure:"extractMaxChars"`
		ProximityKm       float64       `mapstructure:"proximityKm"`
		RetryMaxAttempts  int           `mapstructure:"retryMaxAttempts"`
		RetryBaseDelay    time.Duration `mapstructure:"retryBaseDelay"`
		HistoryLimit      int           `mapstructure:"historyLimit"`
		LandmarkLimit     int           `mapstructure:"landmarkLimit"`
		DefaultImageURL   string        `mapstructure:"defaultImageURL"`
	} `mapstructure:"pipeline"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("WANDERLAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to load file-based config, falling back to the embedded copy.
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
