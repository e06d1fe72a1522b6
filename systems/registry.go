package systems

import "github.com/pthm-cable/windfall/telemetry"

// PhaseInfo describes a step phase for UI display.
type PhaseInfo struct {
	ID          string // Phase identifier (used for perf tracking)
	Name        string // Display name
	Description string // What the phase does
	Category    string // Grouping (e.g., "input", "physics", "bookkeeping")
}

// PhaseRegistry holds display metadata about every step phase.
// This keeps the perf panel and the perf collector in sync.
type PhaseRegistry struct {
	phases []PhaseInfo
	byID   map[string]PhaseInfo
}

// NewPhaseRegistry creates a registry with all known phases.
func NewPhaseRegistry() *PhaseRegistry {
	reg := &PhaseRegistry{
		byID: make(map[string]PhaseInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the step phases in execution order.
// Update this when adding a phase to telemetry.
func (r *PhaseRegistry) registerDefaults() {
	r.Register(PhaseInfo{ID: telemetry.PhaseInput, Name: "Input", Description: "Applies pointer gestures", Category: "input"})
	r.Register(PhaseInfo{ID: telemetry.PhaseSpawn, Name: "Spawn", Description: "Queues new tier-1 tokens", Category: "input"})

	r.Register(PhaseInfo{ID: telemetry.PhaseIntegrate, Name: "Integrate", Description: "Gravity, wind and walls", Category: "physics"})
	r.Register(PhaseInfo{ID: telemetry.PhaseCollide, Name: "Collide", Description: "Bounces, merges and destroys", Category: "physics"})

	r.Register(PhaseInfo{ID: telemetry.PhaseCommit, Name: "Commit", Description: "Applies removals and children", Category: "bookkeeping"})
	r.Register(PhaseInfo{ID: telemetry.PhaseDanger, Name: "Danger", Description: "Flags recipe pairs whose result is already nearby", Category: "bookkeeping"})
	r.Register(PhaseInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Records and flushes stats", Category: "bookkeeping"})
}

// Register adds a phase to the registry.
func (r *PhaseRegistry) Register(info PhaseInfo) {
	r.phases = append(r.phases, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *PhaseRegistry) Get(id string) (PhaseInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *PhaseRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *PhaseRegistry) All() []PhaseInfo {
	return r.phases
}

// ByCategory returns phases filtered by category.
func (r *PhaseRegistry) ByCategory(category string) []PhaseInfo {
	var result []PhaseInfo
	for _, info := range r.phases {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all phase IDs in registration order.
func (r *PhaseRegistry) IDs() []string {
	ids := make([]string, len(r.phases))
	for i, info := range r.phases {
		ids[i] = info.ID
	}
	return ids
}
