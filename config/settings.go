package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"

	platformerrors "github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/observe"
	"github.com/jonwraymond/simcache/scan"
)

// PolicySetting is the persisted form of a cache.Policy.
type PolicySetting struct {
	Enabled  bool   `yaml:"enabled"`
	Interval int    `yaml:"interval"`
	Axis     string `yaml:"axis,omitempty"`
}

// Policy converts the setting to a cache policy.
func (p PolicySetting) Policy() cache.Policy {
	return cache.Policy{Enabled: p.Enabled, IntervalTicks: p.Interval}
}

// Frames reports whether the interval counts frames rather than ticks.
func (p PolicySetting) Frames() bool {
	return p.Axis == AxisFrame
}

// Validate checks the interval and axis.
func (p PolicySetting) Validate() error {
	if p.Interval < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeInterval, p.Interval)
	}
	switch p.Axis {
	case "", AxisTick, AxisFrame:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAxis, p.Axis)
	}
}

// ScanSettings configures the fast path detector.
type ScanSettings struct {
	Workers int           `yaml:"workers"`
	Skip    scan.SkipList `yaml:"skip"`
}

// Options converts the settings to scan options.
func (s ScanSettings) Options() scan.Options {
	return scan.Options{SkipList: slices.Clone(s.Skip), Workers: s.Workers}
}

// TracingSettings mirrors observe.TracingConfig.
type TracingSettings struct {
	Enabled   bool    `yaml:"enabled"`
	Exporter  string  `yaml:"exporter,omitempty"`
	SamplePct float64 `yaml:"sample_pct,omitempty"`
}

// MetricsSettings mirrors observe.MetricsConfig.
type MetricsSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter,omitempty"`
}

// LoggingSettings mirrors observe.LoggingConfig.
type LoggingSettings struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level,omitempty"`
}

// TelemetrySettings is the persisted form of observe.Config.
type TelemetrySettings struct {
	ServiceName string          `yaml:"service_name"`
	Version     string          `yaml:"version,omitempty"`
	Global      bool            `yaml:"global,omitempty"`
	Tracing     TracingSettings `yaml:"tracing"`
	Metrics     MetricsSettings `yaml:"metrics"`
	Logging     LoggingSettings `yaml:"logging"`
}

// Observe converts the settings to an observe.Config.
func (t TelemetrySettings) Observe() observe.Config {
	return observe.Config{
		ServiceName: t.ServiceName,
		Version:     t.Version,
		Global:      t.Global,
		Tracing: observe.TracingConfig{
			Enabled:   t.Tracing.Enabled,
			Exporter:  t.Tracing.Exporter,
			SamplePct: t.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  t.Metrics.Enabled,
			Exporter: t.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: t.Logging.Enabled,
			Level:   t.Logging.Level,
		},
	}
}

// Settings is the complete persisted configuration.
//
// Contract:
//   - Concurrency: a Settings value is not safe for concurrent mutation.
//   - Errors: every returned error is a platform error.
type Settings struct {
	Policies            map[string]PolicySetting `yaml:"policies"`
	FastComponentLookup bool                     `yaml:"fast_component_lookup"`
	Scan                ScanSettings             `yaml:"scan"`
	Telemetry           TelemetrySettings        `yaml:"telemetry"`
}

// Validate checks every policy, the skip list and the telemetry settings.
func (s *Settings) Validate() error {
	for _, name := range s.PolicyNames() {
		if err := s.Policies[name].Validate(); err != nil {
			return invalid(err, "policy", name)
		}
	}
	if s.Scan.Workers < 0 {
		return invalid(fmt.Errorf("config: scan workers must not be negative: got %d", s.Scan.Workers), "section", "scan")
	}
	if err := s.Scan.Skip.Validate(); err != nil {
		return invalid(err, "section", "scan")
	}
	obs := s.Telemetry.Observe()
	if err := obs.Validate(); err != nil {
		return invalid(err, "section", "telemetry")
	}
	return nil
}

// PolicyNames returns the configured operation names in sorted order.
func (s *Settings) PolicyNames() []string {
	names := make([]string, 0, len(s.Policies))
	for name := range s.Policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Policy returns the setting for name. Unknown names return a
// CodeNotFound error.
func (s *Settings) Policy(name string) (PolicySetting, error) {
	p, ok := s.Policies[name]
	if !ok {
		err := platformerrors.Wrap(ErrUnknownPolicy, platformerrors.CodeNotFound, "policy not configured")
		return PolicySetting{}, platformerrors.WithContext(err, "policy", name)
	}
	return p, nil
}

// SetPolicy validates p and stores it under name.
func (s *Settings) SetPolicy(name string, p PolicySetting) error {
	if err := p.Validate(); err != nil {
		return invalid(err, "policy", name)
	}
	if s.Policies == nil {
		s.Policies = make(map[string]PolicySetting)
	}
	s.Policies[name] = p
	return nil
}

// Reset restores the defaults.
func (s *Settings) Reset() {
	*s = Defaults()
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	s.Policies = maps.Clone(s.Policies)
	s.Scan.Skip = slices.Clone(s.Scan.Skip)
	return s
}

// Save writes s to path as YAML, creating parent directories.
func (s Settings) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return platformerrors.WithContext(
			platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "cannot create settings directory"), "path", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return platformerrors.WithContext(
			platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "cannot write settings"), "path", path)
	}
	return nil
}

// Marshal encodes s as YAML.
func (s Settings) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "cannot encode settings")
	}
	if err := enc.Close(); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "cannot encode settings")
	}
	return buf.Bytes(), nil
}

// Load reads the settings file at path and overlays it on Defaults. A
// missing file yields the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, platformerrors.WithContext(
			platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "cannot read settings"), "path", path)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, platformerrors.WithContext(err, "path", path)
	}
	return s, nil
}

// document overlays a file on existing settings. Pointer fields are
// pre-pointed at the target so that absent keys keep their values.
type document struct {
	Policies            map[string]policyPatch `yaml:"policies"`
	FastComponentLookup *bool                  `yaml:"fast_component_lookup"`
	Scan                *ScanSettings          `yaml:"scan"`
	Telemetry           *TelemetrySettings     `yaml:"telemetry"`
}

type policyPatch struct {
	Enabled  *bool   `yaml:"enabled"`
	Interval *int    `yaml:"interval"`
	Axis     *string `yaml:"axis"`
}

// Parse decodes YAML settings, expanding ${VAR} references first, overlays
// them on Defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	expanded, err := ExpandEnvStrict(string(data))
	if err != nil {
		return Settings{}, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "cannot expand settings")
	}

	s := Defaults()
	doc := document{
		FastComponentLookup: &s.FastComponentLookup,
		Scan:                &s.Scan,
		Telemetry:           &s.Telemetry,
	}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "cannot decode settings")
	}

	for name, patch := range doc.Policies {
		p, ok := s.Policies[name]
		if !ok {
			p = PolicySetting{Enabled: true, Interval: cache.DefaultIntervalTicks}
		}
		if patch.Enabled != nil {
			p.Enabled = *patch.Enabled
		}
		if patch.Interval != nil {
			p.Interval = *patch.Interval
		}
		if patch.Axis != nil {
			p.Axis = *patch.Axis
		}
		s.Policies[name] = p
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func invalid(err error, key, value string) error {
	return platformerrors.WithContext(
		platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "invalid settings"), key, value)
}
