package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all forecaster configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Forecast   ForecastConfig   `toml:"forecast"`
	Advice     AdviceConfig     `toml:"advice"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultHorizonDays int    `toml:"default_horizon_days"`
	DefaultMethod      string `toml:"default_method"`
	ScenarioPath       string `toml:"scenario_path,omitempty"`
}

// ForecastConfig holds the residual forecaster and confidence-band tunables.
// The band is a heuristic envelope, not a calibrated interval: each day's
// variance is VarianceFraction of the absolute net change, and the band
// extends BandMultiplier variances either side of the balance.
type ForecastConfig struct {
	HybridWindowDays int     `toml:"hybrid_window_days"`
	NoiseScale       float64 `toml:"noise_scale"`
	VarianceFraction float64 `toml:"variance_fraction"`
	BandMultiplier   float64 `toml:"band_multiplier"`
}

// AdviceConfig holds the alert and recommendation rule constants.
type AdviceConfig struct {
	LowBalanceThreshold   float64 `toml:"low_balance_threshold"`
	HealthyMeanMultiplier float64 `toml:"healthy_mean_multiplier"`
	SubscriptionCategory  string  `toml:"subscription_category"`
	SubscriptionFloor     float64 `toml:"subscription_floor"`
	HighSpendCategory     string  `toml:"high_spend_category"`
	HighSpendFloor        float64 `toml:"high_spend_floor"`
	CategoryCutRatio      float64 `toml:"category_cut_ratio"`
	SavingsExcessFloor    float64 `toml:"savings_excess_floor"`
	SavingsTransferRatio  float64 `toml:"savings_transfer_ratio"`
	PositiveFlowFloor     float64 `toml:"positive_flow_floor"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	CachePath     string `toml:"cache_path,omitempty"`
	CacheTTLHours int    `toml:"cache_ttl_hours"`
	CacheDisabled bool   `toml:"cache_disabled"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultHorizonDays: 90,
			DefaultMethod:      "hybrid",
		},
		Forecast: ForecastConfig{
			HybridWindowDays: 30,
			NoiseScale:       0.2,
			VarianceFraction: 0.10,
			BandMultiplier:   2,
		},
		Advice: AdviceConfig{
			LowBalanceThreshold:   500,
			HealthyMeanMultiplier: 2,
			SubscriptionCategory:  "subscriptions",
			SubscriptionFloor:     100,
			HighSpendCategory:     "dining",
			HighSpendFloor:        300,
			CategoryCutRatio:      0.25,
			SavingsExcessFloor:    500,
			SavingsTransferRatio:  0.7,
			PositiveFlowFloor:     1000,
		},
		Server: ServerConfig{
			Addr:          "127.0.0.1:8580",
			CacheTTLHours: 24,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "forecaster")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "forecaster")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
