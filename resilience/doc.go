// Package resilience provides tick-based throttles for simulation work.
//
// A Throttle is a refresh policy with no stored value: it lets a call
// through at most once per interval for each key and suppresses the calls
// in between. Operation-specific exemptions force a call through without
// consuming the window.
//
// # Usage
//
//	throttle, err := resilience.NewThrottle(resilience.ThrottleConfig[*Driver, *Pawn]{
//	    Name:   "CheckCurrentToilEndOrFail",
//	    Source: clock.Ticks(host),
//	    Policy: &settings.ToilCheck,
//	    Key:    func(d *Driver) *Pawn { return d.Pawn },
//	    Exempt: func(d *Driver) bool { return d.Pawn.Drafted() },
//	})
//
//	if throttle.Allow(driver) {
//	    driver.CheckCurrentToilEndOrFail()
//	}
package resilience
