package viomi

import "time"

// Config defines runtime configuration for a device session. Timeout
// and Retries are fixed at session start and enforced by the
// transport; they are not tunable per call.
type Config struct {
	// Timeout bounds each RPC round trip.
	Timeout time.Duration
	// Retries bounds transport resend attempts per call.
	Retries int
	// StartID seeds the RPC sequence counter, restoring continuity
	// from a previous invocation.
	StartID int
	// ManualStartID seeds the manual-movement sequence counter.
	ManualStartID int
	// Profile selects the firmware revision tables. Zero value means
	// DefaultProfile.
	Profile Profile
}

const (
	defaultTimeout = 500 * time.Millisecond
	defaultRetries = 20
)

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Retries <= 0 {
		c.Retries = defaultRetries
	}
	if len(c.Profile.Properties) == 0 {
		c.Profile = DefaultProfile()
	}
	return c
}
