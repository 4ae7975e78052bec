package shipping

import "math"

// MaxParallelism is the largest degree of parallelism a Stage may have
const MaxParallelism = math.MaxInt32

// KeyingOperation - A generic function for extracting a routing key from a serialized record
type KeyingOperation func(record []byte) ([]byte, error)

// CompareOperation - A generic function for ordering two keys. Returns a negative number if a < b, zero if a == b and a positive number otherwise.
type CompareOperation func(a []byte, b []byte) int

// A Comparator is the caller-supplied key descriptor attached to an Edge whose
// ShipStrategy routes records by key or by order
type Comparator struct {
	Key     KeyingOperation  // required
	Compare CompareOperation // optional, for ordered strategies
}

// A Stage is one parallel task stage of a Plan
type Stage interface {
	ID() int          // ID returns the deterministic ID of this Stage, assigned in creation order
	Name() string     // Name returns the unique name of this Stage within its Plan
	Parallelism() int // Parallelism returns the number of parallel instances of this Stage
}

// An Edge connects a producing Stage to a consuming Stage
type Edge interface {
	Producer() Stage                 // Producer returns the Stage which produces records for this Edge
	Consumer() Stage                 // Consumer returns the Stage which consumes records from this Edge
	ShipStrategy() ShipStrategy      // ShipStrategy returns the strategy used to route records across this Edge
	Comparator() (*Comparator, bool) // Comparator returns a copy of the Comparator attached to this Edge, if any
	String() string                  // String returns a textual representation of this Edge, such as "source->sink"
}

// A PlanBuilder assembles Stages and Edges, assigns ShipStrategies and
// validates the result into a sealed Plan
type PlanBuilder interface {
	// AddStage adds a new Stage with the given name and degree of parallelism
	AddStage(name string, parallelism int) (Stage, error)
	// Connect creates an Edge between two Stages of this builder, shipping with NoneShipStrategy
	Connect(producer Stage, consumer Stage) (Edge, error)
	// SetShipStrategy assigns a strategy to an Edge. Each Edge may be assigned exactly once.
	SetShipStrategy(edge Edge, strategy ShipStrategy) error
	// AttachComparator attaches a Comparator to an Edge
	AttachComparator(edge Edge, comparator *Comparator) error
	// Seal validates this builder and produces an immutable Plan. The builder cannot be modified afterwards.
	Seal() (Plan, error)
}

// A Plan is a sealed, immutable, validated execution plan. It is safe for concurrent use.
type Plan interface {
	ID() string                               // ID returns the unique ID of this Plan instance
	Fingerprint() uint64                      // Fingerprint returns a hash of the structure of this Plan, equal for identically-built Plans
	NumStages() int                           // NumStages returns the number of Stages in this Plan
	GetStage(idx int) Stage                   // GetStage returns a particular Stage in this Plan, in topological order
	GetStageByName(name string) (Stage, bool) // GetStageByName returns the Stage with the given name, if it exists
	Stages() []Stage                          // Stages returns the Stages of this Plan, in topological order
	Edges() []Edge                            // Edges returns the Edges of this Plan, ordered by producer and then consumer
	IncomingEdges(stage Stage) []Edge         // IncomingEdges returns the Edges consumed by a Stage
	OutgoingEdges(stage Stage) []Edge         // OutgoingEdges returns the Edges produced by a Stage
}
