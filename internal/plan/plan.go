package plan

import (
	"encoding/binary"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/shipping"
	uuid "github.com/gofrs/uuid"
)

// planImpl is a sealed, validated execution Plan. It is never modified after creation.
type planImpl struct {
	id           string
	fingerprint  uint64
	stages       []*stageImpl
	stagesByName map[string]*stageImpl
	edges        []*edgeImpl
	incoming     map[*stageImpl][]shipping.Edge
	outgoing     map[*stageImpl][]shipping.Edge
}

// createPlan builds a Plan from topologically-ordered stages and sorted edges
func createPlan(stages []*stageImpl, edges []*edgeImpl) (*planImpl, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &planImpl{
		id:           id.String(),
		stages:       stages,
		stagesByName: make(map[string]*stageImpl, len(stages)),
		edges:        edges,
		incoming:     make(map[*stageImpl][]shipping.Edge),
		outgoing:     make(map[*stageImpl][]shipping.Edge),
	}
	for _, s := range stages {
		p.stagesByName[s.name] = s
	}
	for _, e := range edges {
		p.outgoing[e.producer] = append(p.outgoing[e.producer], e)
		p.incoming[e.consumer] = append(p.incoming[e.consumer], e)
	}
	p.fingerprint = fingerprint(stages, edges)
	return p, nil
}

// fingerprint hashes the structure of a plan: stage names and parallelism,
// edge endpoints, strategies and whether a comparator is attached
func fingerprint(stages []*stageImpl, edges []*edgeImpl) uint64 {
	hasher := xxhash.New()
	buf := make([]byte, 8)
	for _, s := range stages {
		hasher.WriteString(s.name)
		hasher.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf, uint64(s.parallelism))
		hasher.Write(buf)
	}
	for _, e := range edges {
		hasher.WriteString(e.producer.name)
		hasher.Write([]byte{0})
		hasher.WriteString(e.consumer.name)
		hasher.Write([]byte{0, byte(e.strategy)})
		if e.comparator != nil {
			hasher.Write([]byte{1})
		} else {
			hasher.Write([]byte{0})
		}
	}
	return hasher.Sum64()
}

// ID returns the unique ID of this Plan instance
func (p *planImpl) ID() string {
	return p.id
}

// Fingerprint returns a structural hash of this Plan
func (p *planImpl) Fingerprint() uint64 {
	return p.fingerprint
}

// NumStages returns the number of stages in this Plan
func (p *planImpl) NumStages() int {
	return len(p.stages)
}

// GetStage returns a particular Stage in this Plan
func (p *planImpl) GetStage(idx int) shipping.Stage {
	return p.stages[idx]
}

// GetStageByName returns the Stage with the given name, if it exists
func (p *planImpl) GetStageByName(name string) (shipping.Stage, bool) {
	s, ok := p.stagesByName[name]
	if !ok {
		return nil, false
	}
	return s, true
}

// Stages returns the stages of this Plan, in topological order
func (p *planImpl) Stages() []shipping.Stage {
	res := make([]shipping.Stage, len(p.stages))
	for i, s := range p.stages {
		res[i] = s
	}
	return res
}

// Edges returns the edges of this Plan
func (p *planImpl) Edges() []shipping.Edge {
	res := make([]shipping.Edge, len(p.edges))
	for i, e := range p.edges {
		res[i] = e
	}
	return res
}

// IncomingEdges returns the Edges consumed by a Stage
func (p *planImpl) IncomingEdges(stage shipping.Stage) []shipping.Edge {
	s, ok := stage.(*stageImpl)
	if !ok {
		return nil
	}
	return append([]shipping.Edge(nil), p.incoming[s]...)
}

// OutgoingEdges returns the Edges produced by a Stage
func (p *planImpl) OutgoingEdges(stage shipping.Stage) []shipping.Edge {
	s, ok := stage.(*stageImpl)
	if !ok {
		return nil
	}
	return append([]shipping.Edge(nil), p.outgoing[s]...)
}

var _ shipping.Plan = (*planImpl)(nil)
