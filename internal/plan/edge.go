package plan

import (
	"fmt"
	"sync"

	"github.com/go-sif/shipping"
)

// edgeImpl connects two stages. Its strategy and comparator are written by the
// owning builder only, under the builder's lock, and frozen once it is sealed.
type edgeImpl struct {
	id         int
	lock       *sync.RWMutex // the owning builder's lock
	producer   *stageImpl
	consumer   *stageImpl
	strategy   shipping.ShipStrategy
	comparator *shipping.Comparator
}

func createEdge(id int, lock *sync.RWMutex, producer *stageImpl, consumer *stageImpl) *edgeImpl {
	return &edgeImpl{
		id:       id,
		lock:     lock,
		producer: producer,
		consumer: consumer,
		strategy: shipping.NoneShipStrategy,
	}
}

// Producer returns the Stage which produces records for this Edge
func (e *edgeImpl) Producer() shipping.Stage {
	return e.producer
}

// Consumer returns the Stage which consumes records from this Edge
func (e *edgeImpl) Consumer() shipping.Stage {
	return e.consumer
}

// ShipStrategy returns the strategy assigned to this Edge
func (e *edgeImpl) ShipStrategy() shipping.ShipStrategy {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.strategy
}

// Comparator returns a copy of the Comparator attached to this Edge, if any
func (e *edgeImpl) Comparator() (*shipping.Comparator, bool) {
	e.lock.RLock()
	defer e.lock.RUnlock()
	if e.comparator == nil {
		return nil, false
	}
	c := *e.comparator
	return &c, true
}

func (e *edgeImpl) String() string {
	return edgeName(e.producer, e.consumer)
}

func edgeName(producer shipping.Stage, consumer shipping.Stage) string {
	return fmt.Sprintf("%s->%s", stageName(producer), stageName(consumer))
}

func stageName(s shipping.Stage) string {
	if s == nil {
		return "<nil>"
	} else if impl, ok := s.(*stageImpl); ok && impl == nil {
		return "<nil>"
	}
	return s.Name()
}

var _ shipping.Edge = (*edgeImpl)(nil)
