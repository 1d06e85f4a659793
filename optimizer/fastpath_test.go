package optimizer

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jonwraymond/simcache/config"
	"github.com/jonwraymond/simcache/health"
	"github.com/jonwraymond/simcache/intercept"
	"github.com/jonwraymond/simcache/observe"
	"github.com/jonwraymond/simcache/scan"
)

func testUniverse() scan.Universe {
	body := func() ([]scan.CallSite, error) {
		return []scan.CallSite{
			{Method: "GetComp", Dispatch: scan.DispatchVirtual, Generic: true, TypeArg: "CompPower"},
			{Method: "TryGetComp", Dispatch: scan.DispatchStatic, Generic: true, Params: 1, TypeArg: "CompPower"},
		}, nil
	}
	return scan.Universe{
		Hierarchy: scan.ParentMap{"CompPower": scan.BaseThingComp},
		Modules: []scan.Module{{Name: "Core", Types: []scan.Type{{
			FullName: "Verse.Building",
			Methods:  []scan.Method{{Name: "Tick", Body: body}},
		}}}},
	}
}

var tickRef = scan.MethodRef{Module: "Core", Type: "Verse.Building", Method: "Tick"}

func TestRoute_AfterScan(t *testing.T) {
	o, _ := newTestOptimizer(t, Options{})
	if got := o.Route(tickRef); got != nil {
		t.Errorf("Route() before scan = %v, want nil", got)
	}

	if err := o.StartScan(context.Background(), testUniverse()); err != nil {
		t.Fatalf("StartScan() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := o.Detector().Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	want := []scan.Route{scan.RouteEntityComp, scan.RouteEntityTryComp}
	if got := o.Route(tickRef); !slices.Equal(got, want) {
		t.Errorf("Route() = %v, want %v", got, want)
	}
	if err := o.StartScan(context.Background(), testUniverse()); !errors.Is(err, scan.ErrAlreadyStarted) {
		t.Errorf("second StartScan() = %v, want ErrAlreadyStarted", err)
	}

	o.SetFastComponentLookup(false)
	if got := o.Route(tickRef); got != nil {
		t.Errorf("Route() while disabled = %v, want nil", got)
	}
	if o.Components().Enabled() {
		t.Error("component cache still enabled")
	}
}

func TestStartScan_Disabled(t *testing.T) {
	s := config.Defaults()
	s.FastComponentLookup = false
	o, _ := newTestOptimizer(t, Options{Settings: &s})
	if err := o.StartScan(context.Background(), testUniverse()); !errors.Is(err, ErrFastPathDisabled) {
		t.Errorf("StartScan() = %v, want ErrFastPathDisabled", err)
	}
}

func TestHealthCheckers(t *testing.T) {
	o, _ := newTestOptimizer(t, Options{Tables: health.TableCheckerConfig{Warning: 2, Critical: 3}})
	op, err := Register(o, config.StyleDominance, identityKey, func(int) int { return 0 })
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	op.Call(1)
	op.Call(2)

	agg := health.NewAggregator()
	var names []string
	for _, c := range o.HealthCheckers() {
		names = append(names, c.Name())
		agg.Register(c.Name(), c)
	}
	if !slices.Equal(names, []string{config.StyleDominance, "fast_paths"}) {
		t.Errorf("checker names = %v", names)
	}

	report := agg.Report(context.Background())
	if r, _ := report.Result(config.StyleDominance); r.Status != health.StatusDegraded {
		t.Errorf("table status = %v, want degraded at 2 entries", r.Status)
	}
	if r, _ := report.Result("fast_paths"); r.Status != health.StatusDegraded {
		t.Errorf("scan status = %v, want degraded before detection", r.Status)
	}
}

func TestCacheMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	o, _ := newTestOptimizer(t, Options{Meter: mp.Meter("test")})

	op, err := Register(o, config.Teetotaler, identityKey, func(int) bool { return true })
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	op.Call(1)
	op.Call(1)
	op.Call(1)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := attribute.NewSet(attribute.String("op.name", config.Teetotaler))
	var hits int64 = -1
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "simcache.lookup.hits" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				if dp.Attributes.Equals(&want) {
					hits = dp.Value
				}
			}
		}
	}
	if hits != 2 {
		t.Errorf("simcache.lookup.hits = %d, want 2", hits)
	}
}

func TestSlowCallLogging(t *testing.T) {
	var buf bytes.Buffer
	o, _ := newTestOptimizer(t, Options{
		Logger:   observe.NewLoggerWithWriter("info", &buf),
		SlowCall: time.Nanosecond,
	})
	op, err := Register(o, config.QuestLodger, identityKey, func(int) int {
		time.Sleep(time.Millisecond)
		return 1
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	op.Call(1)
	if !strings.Contains(buf.String(), "slow computation") {
		t.Errorf("log = %q, want a slow computation warning", buf.String())
	}

	buf.Reset()
	op.Call(1)
	if strings.Contains(buf.String(), "slow computation") {
		t.Error("cached call was timed")
	}
}

func TestOperation_UseSeesOnlyRealCalls(t *testing.T) {
	o, _ := newTestOptimizer(t, Options{})
	op, err := Register(o, config.ExpectationMap, identityKey, func(m int) int { return m })
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	var befores, afters int
	hook := intercept.HookFuncs[int, int]{
		BeforeFunc: func(int) (int, bool, any) { befores++; return 0, false, nil },
		AfterFunc:  func(int, int, any) { afters++ },
	}
	if err := op.Use("audit", hook, intercept.PriorityNormal, intercept.PriorityNormal); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	op.Call(1)
	op.Call(1)
	if befores != 1 || afters != 2 {
		t.Errorf("befores = %d, afters = %d; want 1 and 2", befores, afters)
	}
}
