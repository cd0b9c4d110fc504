package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/controller"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

var ErrRequired = errors.New("required value is not set")

type PrometheusConfig struct {
	URL         string
	CPUQuery    string
	WorkerQuery string
	TierQuery   string
	Step        time.Duration
}

type Config struct {
	LogLevel        string
	LogFormat       string
	HTTPPort        string
	MetricsPort     string
	PingerInterval  time.Duration
	TerminationFile string

	SQLConnection string
	Database      string
	SampleSource  string
	Prometheus    PrometheusConfig

	VCoreMin               int
	VCoreMax               int
	LowCPUPercent          float64
	HighCPUPercent         float64
	LowWorkersPercent      float64
	HighWorkersPercent     float64
	RequiredDataPointsUp   int
	RequiredDataPointsDown int

	ScheduleUp   string
	ScheduleDown string
	ScheduleTZ   string
	RunOnStart   bool
	DryRun       bool

	Catalog *tier.Catalog
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "json")
	v.SetDefault(keyHTTPPort, "8080")
	v.SetDefault(keyMetricsPort, "9090")
	v.SetDefault(keyPingerInterval, "10s")
	v.SetDefault(keyTerminationFile, "")
	v.SetDefault(keySQLConnection, "")
	v.SetDefault(keyDatabase, "")
	v.SetDefault(keySampleSource, SampleSourceSQL)
	v.SetDefault(keyPrometheusURL, "")
	v.SetDefault(keyPrometheusCPUQuery, "")
	v.SetDefault(keyPrometheusWorkerQuery, "")
	v.SetDefault(keyPrometheusTierQuery, "")
	v.SetDefault(keyPrometheusStep, "15s")
	v.SetDefault(keyVCoreMin, "2")
	v.SetDefault(keyVCoreMax, "40")
	v.SetDefault(keyLowCPUPercent, "20")
	v.SetDefault(keyHighCPUPercent, "70")
	v.SetDefault(keyLowWorkersPercent, "20")
	v.SetDefault(keyHighWorkersPercent, "60")
	v.SetDefault(keyRequiredDataPointsUp, "5")
	v.SetDefault(keyRequiredDataPointsDown, "30")
	v.SetDefault(keyScheduleUp, controller.DefaultScheduleUp)
	v.SetDefault(keyScheduleDown, controller.DefaultScheduleDown)
	v.SetDefault(keyScheduleTZ, "")
	v.SetDefault(keyRunOnStart, "false")
	v.SetDefault(keyDryRun, "false")
	v.SetDefault(keyTierLadders, "")
}

// Load reads configuration from HSAUTOSCALER_* env vars and an optional YAML file.
// configFile wins over HSAUTOSCALER_CONFIG_FILE when both are set.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile == "" {
		configFile = os.Getenv(envKeyConfigFile)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	p := &parser{v: v}

	cfg := &Config{
		LogLevel:        strings.ToLower(v.GetString(keyLogLevel)),
		LogFormat:       strings.ToLower(v.GetString(keyLogFormat)),
		HTTPPort:        v.GetString(keyHTTPPort),
		MetricsPort:     v.GetString(keyMetricsPort),
		PingerInterval:  p.duration(keyPingerInterval, minPingerInterval),
		TerminationFile: v.GetString(keyTerminationFile),
		SQLConnection:   v.GetString(keySQLConnection),
		Database:        v.GetString(keyDatabase),
		SampleSource:    strings.ToLower(v.GetString(keySampleSource)),
		Prometheus: PrometheusConfig{
			URL:         v.GetString(keyPrometheusURL),
			CPUQuery:    v.GetString(keyPrometheusCPUQuery),
			WorkerQuery: v.GetString(keyPrometheusWorkerQuery),
			TierQuery:   v.GetString(keyPrometheusTierQuery),
			Step:        p.duration(keyPrometheusStep, minPrometheusStep),
		},
		VCoreMin:               p.int(keyVCoreMin),
		VCoreMax:               p.int(keyVCoreMax),
		LowCPUPercent:          p.float(keyLowCPUPercent),
		HighCPUPercent:         p.float(keyHighCPUPercent),
		LowWorkersPercent:      p.float(keyLowWorkersPercent),
		HighWorkersPercent:     p.float(keyHighWorkersPercent),
		RequiredDataPointsUp:   p.int(keyRequiredDataPointsUp),
		RequiredDataPointsDown: p.int(keyRequiredDataPointsDown),
		ScheduleUp:             v.GetString(keyScheduleUp),
		ScheduleDown:           v.GetString(keyScheduleDown),
		ScheduleTZ:             v.GetString(keyScheduleTZ),
		RunOnStart:             p.bool(keyRunOnStart),
		DryRun:                 p.bool(keyDryRun),
		Catalog:                p.catalog(keyTierLadders),
	}

	if err := errors.Join(append(p.errs, cfg.validate()...)...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error

	if c.SQLConnection == "" {
		errs = append(errs, fmt.Errorf("%s: %w", keySQLConnection, ErrRequired))
	}

	switch c.SampleSource {
	case SampleSourceSQL:
	case SampleSourcePrometheus:
		if c.Prometheus.URL == "" {
			errs = append(errs, fmt.Errorf("%s: %w", keyPrometheusURL, ErrRequired))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: unknown sample source %q", keySampleSource, c.SampleSource))
	}

	for _, d := range []scaling.Direction{scaling.DirectionUp, scaling.DirectionDown} {
		if err := c.Policy(d).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s policy: %w", d, err))
		}
	}

	return errs
}

// Policy assembles the immutable scaling policy for one direction.
// Both directions share bounds and thresholds and differ in window size.
func (c *Config) Policy(d scaling.Direction) scaling.Policy {
	required := c.RequiredDataPointsUp
	if d == scaling.DirectionDown {
		required = c.RequiredDataPointsDown
	}

	return scaling.Policy{
		MinCores:           c.VCoreMin,
		MaxCores:           c.VCoreMax,
		LowCPUPercent:      c.LowCPUPercent,
		HighCPUPercent:     c.HighCPUPercent,
		LowWorkerPercent:   c.LowWorkersPercent,
		HighWorkerPercent:  c.HighWorkersPercent,
		RequiredDataPoints: required,
	}
}

// ControllerSettings builds controller settings for the given database.
func (c *Config) ControllerSettings(database string) controller.Settings {
	return controller.Settings{
		Database:     database,
		Catalog:      c.Catalog,
		Up:           c.Policy(scaling.DirectionUp),
		Down:         c.Policy(scaling.DirectionDown),
		ScheduleUp:   c.ScheduleUp,
		ScheduleDown: c.ScheduleDown,
		ScheduleTZ:   c.ScheduleTZ,
		RunOnStart:   c.RunOnStart,
	}
}

// parser reads typed values strictly and collects every failure.
type parser struct {
	v    *viper.Viper
	errs []error
}

func (p *parser) fail(key string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
}

func (p *parser) duration(key string, minimum time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(p.v.GetString(key)))
	if err != nil {
		p.fail(key, err)

		return 0
	}

	if d < minimum {
		p.fail(key, fmt.Errorf("%s is below minimum %s", d, minimum))
	}

	return d
}

func (p *parser) int(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(p.v.GetString(key)))
	if err != nil {
		p.fail(key, err)
	}

	return n
}

func (p *parser) float(key string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(p.v.GetString(key)), 64)
	if err != nil {
		p.fail(key, err)
	}

	return f
}

func (p *parser) bool(key string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(p.v.GetString(key)))
	if err != nil {
		p.fail(key, err)
	}

	return b
}

func (p *parser) catalog(key string) *tier.Catalog {
	spec := strings.TrimSpace(p.v.GetString(key))
	if spec == "" {
		return tier.Default()
	}

	ladders, err := tier.ParseLadders(spec)
	if err != nil {
		p.fail(key, err)

		return tier.Default()
	}

	c, err := tier.NewCatalog(ladders)
	if err != nil {
		p.fail(key, err)

		return tier.Default()
	}

	return c
}
