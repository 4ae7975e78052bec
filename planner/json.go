package planner

import (
	"fmt"

	"github.com/go-sif/shipping"
	"github.com/go-sif/shipping/errors"
	"github.com/tidwall/gjson"
)

// JSONKeyComparator returns a Comparator for JSON records which routes by the value at
// a gjson path (such as "user.id"), ordering values by gjson's natural ordering
func JSONKeyComparator(path string) *shipping.Comparator {
	return &shipping.Comparator{
		Key: func(record []byte) ([]byte, error) {
			if !gjson.ValidBytes(record) {
				return nil, errors.InvalidRecordError{Reason: "record is not valid JSON"}
			}
			res := gjson.GetBytes(record, path)
			if !res.Exists() {
				return nil, errors.MissingRecordKeyError{Path: path}
			}
			return []byte(res.Raw), nil
		},
		Compare: func(a []byte, b []byte) int {
			ra, rb := gjson.ParseBytes(a), gjson.ParseBytes(b)
			if ra.Less(rb, true) {
				return -1
			} else if rb.Less(ra, true) {
				return 1
			}
			return 0
		},
	}
}

// ReadPlanDescription populates a new PlanBuilder from a JSON plan description of the form:
//
//	{"stages": [{"name": "source", "parallelism": 4}, {"name": "sink", "parallelism": 8}],
//	 "edges": [{"from": "source", "to": "sink", "strategy": "PARTITION_HASH", "key": "user.id"}]}
//
// An edge without a strategy (or with "NONE") is left unassigned. An edge with a key
// has a JSONKeyComparator attached. The returned builder has not been sealed.
func ReadPlanDescription(doc []byte, conf *shipping.PlannerConfig) (shipping.PlanBuilder, error) {
	if !gjson.ValidBytes(doc) {
		return nil, errors.InvalidPlanDescriptionError{Reason: "document is not valid JSON"}
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, errors.InvalidPlanDescriptionError{Reason: "document must be an object"}
	}
	builder := CreatePlanBuilder(conf)
	stages := root.Get("stages")
	if !stages.IsArray() {
		return nil, errors.InvalidPlanDescriptionError{Path: "stages", Reason: "must be an array"}
	}
	byName := make(map[string]shipping.Stage)
	for i, desc := range stages.Array() {
		path := fmt.Sprintf("stages.%d", i)
		name, err := requireString(desc, path, "name")
		if err != nil {
			return nil, err
		}
		parallelism := desc.Get("parallelism")
		if parallelism.Type != gjson.Number || float64(parallelism.Int()) != parallelism.Num {
			return nil, errors.InvalidPlanDescriptionError{Path: path + ".parallelism", Reason: "must be an integer"}
		}
		if n := parallelism.Int(); n < 1 || n > shipping.MaxParallelism {
			return nil, errors.InvalidParallelismError{Stage: name, Parallelism: n, Max: shipping.MaxParallelism}
		}
		stage, err := builder.AddStage(name, int(parallelism.Int()))
		if err != nil {
			return nil, err
		}
		byName[name] = stage
	}
	edges := root.Get("edges")
	if edges.Exists() && !edges.IsArray() {
		return nil, errors.InvalidPlanDescriptionError{Path: "edges", Reason: "must be an array"}
	}
	for i, desc := range edges.Array() {
		path := fmt.Sprintf("edges.%d", i)
		if err := readEdge(builder, byName, desc, path); err != nil {
			return nil, err
		}
	}
	return builder, nil
}

func readEdge(builder shipping.PlanBuilder, byName map[string]shipping.Stage, desc gjson.Result, path string) error {
	from, err := requireString(desc, path, "from")
	if err != nil {
		return err
	}
	to, err := requireString(desc, path, "to")
	if err != nil {
		return err
	}
	producer, ok := byName[from]
	if !ok {
		return errors.UnknownStageError{Name: from}
	}
	consumer, ok := byName[to]
	if !ok {
		return errors.UnknownStageError{Name: to}
	}
	edge, err := builder.Connect(producer, consumer)
	if err != nil {
		return err
	}
	if s := desc.Get("strategy"); s.Exists() {
		if s.Type != gjson.String {
			return errors.InvalidPlanDescriptionError{Path: path + ".strategy", Reason: "must be a string"}
		}
		strategy, err := shipping.ParseShipStrategy(s.String())
		if err != nil {
			return errors.InvalidPlanDescriptionError{Path: path + ".strategy", Reason: err.Error()}
		}
		if strategy != shipping.NoneShipStrategy {
			if err := builder.SetShipStrategy(edge, strategy); err != nil {
				return err
			}
		}
	}
	if k := desc.Get("key"); k.Exists() {
		if k.Type != gjson.String || k.String() == "" {
			return errors.InvalidPlanDescriptionError{Path: path + ".key", Reason: "must be a non-empty string"}
		}
		if err := builder.AttachComparator(edge, JSONKeyComparator(k.String())); err != nil {
			return err
		}
	}
	return nil
}

func requireString(desc gjson.Result, path string, field string) (string, error) {
	v := desc.Get(field)
	if v.Type != gjson.String || v.String() == "" {
		return "", errors.InvalidPlanDescriptionError{Path: path + "." + field, Reason: "must be a non-empty string"}
	}
	return v.String(), nil
}

// LoadPlan reads a JSON plan description and seals it into a Plan
func LoadPlan(doc []byte, conf *shipping.PlannerConfig) (shipping.Plan, error) {
	builder, err := ReadPlanDescription(doc, conf)
	if err != nil {
		return nil, err
	}
	return builder.Seal()
}
