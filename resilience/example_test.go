package resilience_test

import (
	"fmt"

	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/clock"
	"github.com/jonwraymond/simcache/resilience"
)

type job struct {
	pawn    string
	drafted bool
}

func ExampleThrottle_Allow() {
	clk := clock.NewManual()
	policy := cache.Policy{Enabled: true, IntervalTicks: 10}
	th, err := resilience.NewThrottle(resilience.ThrottleConfig[job, string]{
		Name:   "CheckCurrentToilEndOrFail",
		Source: clock.Ticks(clk),
		Policy: &policy,
		Key:    func(j job) string { return j.pawn },
		Exempt: func(j job) bool { return j.drafted },
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(th.Allow(job{pawn: "Ada"}))
	clk.Advance(5)
	fmt.Println(th.Allow(job{pawn: "Ada"}))
	fmt.Println(th.Allow(job{pawn: "Ada", drafted: true}))
	clk.Advance(6)
	fmt.Println(th.Allow(job{pawn: "Ada"}))
	// Output:
	// true
	// false
	// true
	// true
}
