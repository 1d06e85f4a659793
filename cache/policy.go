package cache

// Policy configures one cached operation. It is held by pointer so that
// runtime tuning is observed by the next lookup.
type Policy struct {
	// Enabled is the operation's master switch. A disabled policy makes the
	// cache behave as if it did not exist.
	Enabled bool

	// IntervalTicks is the refresh window. Zero means compute once and keep
	// the value until the table is cleared.
	IntervalTicks int
}

// DefaultIntervalTicks is the refresh window for operations without a
// configured policy: two seconds of simulation at 60 ticks per second.
const DefaultIntervalTicks = 120

// DefaultPolicy returns an enabled policy refreshing every DefaultIntervalTicks.
func DefaultPolicy() Policy {
	return Policy{
		Enabled:       true,
		IntervalTicks: DefaultIntervalTicks,
	}
}

// DisabledPolicy returns a policy that bypasses caching entirely.
func DisabledPolicy() Policy {
	return Policy{}
}

// IdentityPolicy returns an enabled policy whose entries never expire.
func IdentityPolicy() Policy {
	return Policy{Enabled: true}
}

// Validate checks the policy's invariants.
func (p Policy) Validate() error {
	if p.IntervalTicks < 0 {
		return ErrNegativeInterval
	}
	return nil
}

// ShouldCache reports whether lookups should consult the cache.
func (p Policy) ShouldCache() bool {
	return p.Enabled
}

// Permanent reports whether stored entries never expire.
func (p Policy) Permanent() bool {
	return p.IntervalTicks == 0
}
