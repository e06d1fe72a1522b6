// Package telemetry provides play statistics, performance timing and CSV output.
package telemetry

// TickCounts holds the event counts of one simulation tick.
type TickCounts struct {
	Spawned       int
	Exited        int
	Destroyed     int
	Combined      int
	ClickCombined int
	Bounced       int
	Knockbacks    int
	Captured      int
	MaxTier       int // Highest tier created by a combination, 0 if none
}

// GestureKind identifies a completed player gesture.
type GestureKind uint8

const (
	GestureCurve  GestureKind = iota // Curve finalized on release
	GestureSplit                     // Curve finalized by an angle snap
	GestureLaunch                    // Slingshot release
)

func (k GestureKind) String() string {
	switch k {
	case GestureCurve:
		return "curve"
	case GestureSplit:
		return "split"
	case GestureLaunch:
		return "launch"
	}
	return "unknown"
}
