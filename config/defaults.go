package config

import (
	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/observe"
	"github.com/jonwraymond/simcache/scan"
)

// Operation names in the defaults catalogue.
const (
	AmbientTemperature    = "AmbientTemperature"
	StyleDominance        = "StyleDominance"
	InstantBeauty         = "InstantBeauty"
	BreakThresholdMinor   = "BreakThresholdMinor"
	BreakThresholdMajor   = "BreakThresholdMajor"
	BreakThresholdExtreme = "BreakThresholdExtreme"
	MoodOffset            = "MoodOffset"
	QuestLodger           = "QuestLodger"
	Teetotaler            = "Teetotaler"
	ExpectationPawn       = "ExpectationPawn"
	ExpectationMap        = "ExpectationMap"
	AllowedDesignator     = "AllowedDesignator"
	CollisionOffset       = "CollisionOffset"
	FallColor             = "FallColor"
	ToilCheckThrottle     = "ToilCheckThrottle"
	GizmoSelection        = "GizmoSelection"
)

// Axes a policy interval can be counted on.
const (
	AxisTick  = "tick"
	AxisFrame = "frame"
)

func defaultPolicies() map[string]PolicySetting {
	on := func(interval int) PolicySetting {
		return PolicySetting{Enabled: true, Interval: interval}
	}
	return map[string]PolicySetting{
		AmbientTemperature:    on(cache.DefaultIntervalTicks),
		StyleDominance:        on(2000),
		InstantBeauty:         on(600),
		BreakThresholdMinor:   on(300),
		BreakThresholdMajor:   on(300),
		BreakThresholdExtreme: on(300),
		MoodOffset:            on(500),
		QuestLodger:           on(30),
		Teetotaler:            on(500),
		ExpectationPawn:       on(1000),
		ExpectationMap:        on(1000),
		AllowedDesignator:     on(cache.DefaultIntervalTicks),
		CollisionOffset:       on(1),
		FallColor:             on(4000),
		ToilCheckThrottle:     on(10),
		GizmoSelection:        {Enabled: true, Interval: 1, Axis: AxisFrame},
	}
}

// Defaults returns the settings used when nothing has been persisted.
func Defaults() Settings {
	obs := observe.DefaultConfig()
	return Settings{
		Policies:            defaultPolicies(),
		FastComponentLookup: true,
		Scan: ScanSettings{
			Skip: scan.DefaultSkipList(),
		},
		Telemetry: TelemetrySettings{
			ServiceName: obs.ServiceName,
			Logging: LoggingSettings{
				Enabled: obs.Logging.Enabled,
				Level:   obs.Logging.Level,
			},
		},
	}
}
