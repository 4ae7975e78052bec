package plan

import (
	"github.com/go-sif/shipping"
)

// stageImpl is a group of parallel task instances which
// produce and consume records across Edges
type stageImpl struct {
	id          int
	name        string
	parallelism int
}

// createStage is a factory for Stages, safely assigning deterministic IDs
func createStage(id int, name string, parallelism int) *stageImpl {
	return &stageImpl{
		id:          id,
		name:        name,
		parallelism: parallelism,
	}
}

// ID returns the ID for this Stage
func (s *stageImpl) ID() int {
	return s.id
}

// Name returns the name of this Stage
func (s *stageImpl) Name() string {
	return s.name
}

// Parallelism returns the number of parallel instances of this Stage
func (s *stageImpl) Parallelism() int {
	return s.parallelism
}

var _ shipping.Stage = (*stageImpl)(nil)
