package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"tendorai/internal/domain/entities"

	"github.com/spf13/viper"
)

// ErrConfiguration wraps any out-of-bounds engine setting found at boot. It is
// fatal: the service must not start with a broken weight table.
var ErrConfiguration = errors.New("invalid engine configuration")

// Weights is one scoring weight profile. Fields mirror the sub-scores of the
// suitability scorer and must sum to 1.
type Weights struct {
	Volume         float64 `mapstructure:"volume"`
	CostEfficiency float64 `mapstructure:"costefficiency"`
	Speed          float64 `mapstructure:"speed"`
	Feature        float64 `mapstructure:"feature"`
	Paper          float64 `mapstructure:"paper"`
	Reliability    float64 `mapstructure:"reliability"`
	Urgency        float64 `mapstructure:"urgency"`
}

func (w Weights) sum() float64 {
	return w.Volume + w.CostEfficiency + w.Speed + w.Feature + w.Paper + w.Reliability + w.Urgency
}

// CostDefaults are the fallback CPC rates (pence/page) applied when a vendor's
// catalog row is incomplete. Deliberate fallbacks, not magic numbers.
type CostDefaults struct {
	MonoRate   float64 `mapstructure:"monorate"`
	ColourRate float64 `mapstructure:"colourrate"`
}

// CandidateWindow is the volume overlap tolerance used by the selector: a
// product qualifies when min_volume <= upper*total and max_volume >= lower*total.
type CandidateWindow struct {
	LowerMultiplier float64 `mapstructure:"lowermultiplier"`
	UpperMultiplier float64 `mapstructure:"uppermultiplier"`
}

// Config holds every recognised engine setting.
type Config struct {
	Scoring struct {
		Weights map[string]Weights `mapstructure:"weights"`
	} `mapstructure:"scoring"`
	Cost struct {
		Defaults CostDefaults `mapstructure:"defaults"`
	} `mapstructure:"cost"`
	Quote struct {
		ValidityDays int `mapstructure:"validitydays"`
	} `mapstructure:"quote"`
	Engine struct {
		MaxQuotesPerRequest int             `mapstructure:"maxquotesperrequest"`
		CandidateWindow     CandidateWindow `mapstructure:"candidatewindow"`
		DeadlineMs          int             `mapstructure:"deadlinems"`
	} `mapstructure:"engine"`
	Sweeper struct {
		Schedule string `mapstructure:"schedule"`
	} `mapstructure:"sweeper"`
	Log struct {
		JSON  bool `mapstructure:"json"`
		Debug bool `mapstructure:"debug"`
	} `mapstructure:"log"`
}

const app = "tendorai"

func setDefaults(v *viper.Viper) {
	v.SetDefault("scoring.weights.cost", map[string]float64{
		"costefficiency": 0.35, "volume": 0.15, "feature": 0.15, "speed": 0.10,
		"paper": 0.10, "reliability": 0.10, "urgency": 0.05,
	})
	v.SetDefault("scoring.weights.speed", map[string]float64{
		"speed": 0.30, "volume": 0.20, "feature": 0.15, "costefficiency": 0.15,
		"paper": 0.10, "reliability": 0.05, "urgency": 0.05,
	})
	v.SetDefault("scoring.weights.quality", map[string]float64{
		"reliability": 0.30, "feature": 0.20, "volume": 0.15, "speed": 0.10,
		"costefficiency": 0.10, "paper": 0.10, "urgency": 0.05,
	})
	v.SetDefault("scoring.weights.reliability", map[string]float64{
		"reliability": 0.30, "feature": 0.20, "volume": 0.15, "speed": 0.10,
		"costefficiency": 0.10, "paper": 0.10, "urgency": 0.05,
	})
	oneSeventh := 1.0 / 7.0
	v.SetDefault("scoring.weights.balanced", map[string]float64{
		"volume": oneSeventh, "costefficiency": oneSeventh, "speed": oneSeventh,
		"feature": oneSeventh, "paper": oneSeventh, "reliability": oneSeventh,
		"urgency": oneSeventh,
	})

	v.SetDefault("cost.defaults.monorate", 0.01)
	v.SetDefault("cost.defaults.colourrate", 0.08)
	v.SetDefault("quote.validitydays", 30)
	v.SetDefault("engine.maxquotesperrequest", 3)
	v.SetDefault("engine.candidatewindow.lowermultiplier", 0.6)
	v.SetDefault("engine.candidatewindow.uppermultiplier", 2.5)
	v.SetDefault("engine.deadlinems", 10000)
	v.SetDefault("sweeper.schedule", "@hourly")
	v.SetDefault("log.json", true)
	v.SetDefault("log.debug", false)
}

// Load reads tendorai.yaml from the working directory when present, applies
// TENDORAI_* environment overrides and validates the result.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(app)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(strings.ToUpper(app))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without touching the filesystem.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are statically well-formed; Unmarshal cannot fail on them.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// WeightsFor resolves the profile for a buyer priority, falling back to
// balanced for unknown values.
func (c Config) WeightsFor(p entities.Priority) Weights {
	if w, ok := c.Scoring.Weights[string(p)]; ok {
		return w
	}
	return c.Scoring.Weights[string(entities.PriorityBalanced)]
}

// Validate enforces the boot-time bounds of every setting.
func (c Config) Validate() error {
	for name, w := range c.Scoring.Weights {
		for sub, val := range map[string]float64{
			"volume": w.Volume, "costefficiency": w.CostEfficiency, "speed": w.Speed,
			"feature": w.Feature, "paper": w.Paper, "reliability": w.Reliability,
			"urgency": w.Urgency,
		} {
			if val < 0 || val > 1 {
				return fmt.Errorf("%w: scoring.weights.%s.%s=%v out of [0,1]", ErrConfiguration, name, sub, val)
			}
		}
		if math.Abs(w.sum()-1) > 1e-6 {
			return fmt.Errorf("%w: scoring.weights.%s sums to %v, want 1", ErrConfiguration, name, w.sum())
		}
	}
	for _, p := range []entities.Priority{
		entities.PriorityCost, entities.PrioritySpeed, entities.PriorityQuality,
		entities.PriorityReliability, entities.PriorityBalanced,
	} {
		if _, ok := c.Scoring.Weights[string(p)]; !ok {
			return fmt.Errorf("%w: missing weight profile %q", ErrConfiguration, p)
		}
	}

	if c.Cost.Defaults.MonoRate < 0 || c.Cost.Defaults.ColourRate < 0 {
		return fmt.Errorf("%w: cost.defaults rates must be non-negative", ErrConfiguration)
	}
	if c.Quote.ValidityDays < 1 {
		return fmt.Errorf("%w: quote.validitydays must be >= 1", ErrConfiguration)
	}
	if c.Engine.MaxQuotesPerRequest < 1 {
		return fmt.Errorf("%w: engine.maxquotesperrequest must be >= 1", ErrConfiguration)
	}
	cw := c.Engine.CandidateWindow
	if cw.LowerMultiplier <= 0 || cw.LowerMultiplier >= 1 {
		return fmt.Errorf("%w: engine.candidatewindow.lowermultiplier=%v out of (0,1)", ErrConfiguration, cw.LowerMultiplier)
	}
	if cw.UpperMultiplier <= 1 {
		return fmt.Errorf("%w: engine.candidatewindow.uppermultiplier=%v must exceed 1", ErrConfiguration, cw.UpperMultiplier)
	}
	if c.Engine.DeadlineMs < 0 {
		return fmt.Errorf("%w: engine.deadlinems must be >= 0", ErrConfiguration)
	}
	return nil
}
