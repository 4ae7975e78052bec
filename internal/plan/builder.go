package plan

import (
	"sync"

	"github.com/go-sif/shipping"
	"github.com/go-sif/shipping/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// builderImpl assembles stages and edges into a Plan. Mutations are serialized internally.
type builderImpl struct {
	lock         *sync.RWMutex // shared with every edge of this builder
	conf         *shipping.PlannerConfig
	logger       logrus.FieldLogger
	stages       []*stageImpl
	stagesByName map[string]*stageImpl
	edges        []*edgeImpl
	sealed       bool
}

// CreateBuilder is a factory for PlanBuilders. A nil conf is equivalent to a zero PlannerConfig.
func CreateBuilder(conf *shipping.PlannerConfig) shipping.PlanBuilder {
	if conf == nil {
		conf = &shipping.PlannerConfig{}
	}
	return &builderImpl{
		lock:         &sync.RWMutex{},
		conf:         conf,
		logger:       conf.GetLogger(),
		stages:       make([]*stageImpl, 0),
		stagesByName: make(map[string]*stageImpl),
		edges:        make([]*edgeImpl, 0),
	}
}

// AddStage adds a new Stage with the given name and degree of parallelism
func (b *builderImpl) AddStage(name string, parallelism int) (shipping.Stage, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.sealed {
		return nil, errors.PlanSealedError{}
	}
	if name == "" {
		return nil, errors.InvalidStageError{Name: name, Reason: "name must not be empty"}
	} else if _, ok := b.stagesByName[name]; ok {
		return nil, errors.InvalidStageError{Name: name, Reason: "a stage with this name already exists"}
	}
	if parallelism < 1 || parallelism > shipping.MaxParallelism {
		return nil, errors.InvalidParallelismError{Stage: name, Parallelism: int64(parallelism), Max: shipping.MaxParallelism}
	}
	s := createStage(len(b.stages), name, parallelism)
	b.stages = append(b.stages, s)
	b.stagesByName[name] = s
	return s, nil
}

// Connect creates an Edge between two Stages of this builder
func (b *builderImpl) Connect(producer shipping.Stage, consumer shipping.Stage) (shipping.Edge, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.sealed {
		return nil, errors.PlanSealedError{}
	}
	p, err := b.ownStage(producer)
	if err != nil {
		return nil, err
	}
	c, err := b.ownStage(consumer)
	if err != nil {
		return nil, err
	}
	if p == c {
		return nil, errors.InvalidEdgeError{Edge: edgeName(p, c), Reason: "a stage cannot ship to itself"}
	}
	for _, e := range b.edges {
		if e.producer == p && e.consumer == c {
			return nil, errors.InvalidEdgeError{Edge: e.String(), Reason: "stages are already connected"}
		}
	}
	e := createEdge(len(b.edges), b.lock, p, c)
	b.edges = append(b.edges, e)
	return e, nil
}

// SetShipStrategy assigns a concrete strategy to an edge which does not have one yet
func (b *builderImpl) SetShipStrategy(edge shipping.Edge, strategy shipping.ShipStrategy) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.sealed {
		return errors.PlanSealedError{}
	}
	e, err := b.ownEdge(edge)
	if err != nil {
		return err
	}
	if !strategy.IsKnown() {
		return errors.UnknownShipStrategyError{Value: strategy.String()}
	} else if !strategy.IsValidForExecution() {
		return errors.InvalidShipStrategyError{Edge: e.String(), Strategy: strategy.String()}
	}
	if e.strategy != shipping.NoneShipStrategy {
		return errors.ShipStrategyAlreadyAssignedError{Edge: e.String(), Assigned: e.strategy.String()}
	}
	e.strategy = strategy
	b.logger.WithFields(logrus.Fields{
		"edge":     e.String(),
		"strategy": strategy.String(),
		"network":  strategy.IsNetworkStrategy(),
	}).Debug("assigned shipping strategy")
	return nil
}

// AttachComparator attaches a Comparator to an edge. An edge carries at most one Comparator.
func (b *builderImpl) AttachComparator(edge shipping.Edge, comparator *shipping.Comparator) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.sealed {
		return errors.PlanSealedError{}
	}
	e, err := b.ownEdge(edge)
	if err != nil {
		return err
	}
	if comparator == nil {
		return errors.InvalidComparatorError{Edge: e.String(), Reason: "comparator is nil"}
	} else if comparator.Key == nil {
		return errors.InvalidComparatorError{Edge: e.String(), Reason: "comparator has no KeyingOperation"}
	} else if e.comparator != nil {
		return errors.InvalidComparatorError{Edge: e.String(), Reason: "a comparator is already attached"}
	}
	c := *comparator
	e.comparator = &c
	return nil
}

// Seal validates every edge and, if all are executable, freezes this builder into a Plan.
// A builder which fails validation remains open so that it may be corrected.
func (b *builderImpl) Seal() (shipping.Plan, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.sealed {
		return nil, errors.PlanSealedError{}
	}
	var multierr *multierror.Error
	order, err := topologicalOrder(b.stages, b.edges)
	if err != nil {
		if b.conf.FailFast {
			return nil, b.rejectSeal(err)
		}
		multierr = multierror.Append(multierr, err)
	}
	edges := sortEdges(b.edges, order)
	for _, e := range edges {
		if err := validateEdge(e); err != nil {
			if b.conf.FailFast {
				return nil, b.rejectSeal(err)
			}
			multierr = multierror.Append(multierr, err)
		} else if e.comparator != nil && !e.strategy.RequiresComparator() {
			b.logger.WithFields(logrus.Fields{
				"edge":     e.String(),
				"strategy": e.strategy.String(),
			}).Warn("comparator attached to a strategy which does not use one")
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, b.rejectSeal(err)
	}
	p, err := createPlan(order, edges)
	if err != nil {
		return nil, err
	}
	b.sealed = true
	b.logger.WithFields(logrus.Fields{
		"plan":        p.ID(),
		"fingerprint": p.Fingerprint(),
		"stages":      len(order),
		"edges":       len(edges),
	}).Info("sealed execution plan")
	return p, nil
}

func (b *builderImpl) rejectSeal(err error) error {
	b.logger.WithError(err).Warn("execution plan failed validation")
	return err
}

// ownStage returns the stageImpl behind a Stage iff it was created by this builder
func (b *builderImpl) ownStage(stage shipping.Stage) (*stageImpl, error) {
	s, ok := stage.(*stageImpl)
	if !ok || s == nil || s.id >= len(b.stages) || b.stages[s.id] != s {
		return nil, errors.UnknownStageError{Name: stageName(stage)}
	}
	return s, nil
}

// ownEdge returns the edgeImpl behind an Edge iff it was created by this builder
func (b *builderImpl) ownEdge(edge shipping.Edge) (*edgeImpl, error) {
	e, ok := edge.(*edgeImpl)
	if !ok || e == nil || e.id >= len(b.edges) || b.edges[e.id] != e {
		name := "<nil>"
		if ok && e != nil {
			name = e.String()
		} else if edge != nil && !ok {
			name = edge.String()
		}
		return nil, errors.UnknownEdgeError{Edge: name}
	}
	return e, nil
}
