package registry

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/archgrid/internal/model"
)

// ErrNodeNotFound reports a lookup of an id absent from the registry. It is
// a user-input error for the spec and test commands, distinct from the
// findings a validation pass accumulates.
var ErrNodeNotFound = errors.New("node not found")

// Registry holds every node of one architecture declaration for a single
// validation run. It is populated once from an explicit, caller-owned node
// list and is not mutated after a validation pass begins; the measured
// constraint annotations are the one post-hoc layer and do not alter
// structure.
type Registry struct {
	nodes map[string]model.Node
	order []string // ids in registration order

	measured map[string]map[string]cty.Value
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		nodes:    make(map[string]model.Node),
		measured: make(map[string]map[string]cty.Value),
	}
}

// FromNodes builds a registry from a complete node list. Duplicate ids are
// returned as errors, one per colliding node, while every non-colliding
// node is still registered so validation can continue over the rest.
func FromNodes(nodes []model.Node) (*Registry, []error) {
	r := New()
	var errs []error
	for _, n := range nodes {
		if err := r.Register(n); err != nil {
			errs = append(errs, err)
		}
	}
	return r, errs
}

// DuplicateIDError reports an attempt to register an id twice. Node ids are
// globally unique across all kinds.
type DuplicateIDError struct {
	ID       string
	Existing model.Kind
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %q: already registered as %s", e.ID, e.Existing)
}

// Register adds a node. It fails with a *DuplicateIDError if the id is
// already taken.
func (r *Registry) Register(n model.Node) error {
	id := n.ID()
	if prev, ok := r.nodes[id]; ok {
		return &DuplicateIDError{ID: id, Existing: prev.Kind()}
	}
	r.nodes[id] = n
	r.order = append(r.order, id)
	return nil
}

// Resolve looks a node up by id.
func (r *Registry) Resolve(id string) (model.Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// All returns every node of the given kind in registration order. Callers
// that emit findings must not let this order leak into report content;
// checks sort their output by stable keys before presentation.
func (r *Registry) All(kind model.Kind) []model.Node {
	var out []model.Node
	for _, id := range r.order {
		if n := r.nodes[id]; n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}

// Goals returns all Goal nodes in registration order.
func (r *Registry) Goals() []model.Goal {
	var out []model.Goal
	for _, n := range r.All(model.KindGoal) {
		out = append(out, n.(model.Goal))
	}
	return out
}

// Solutions returns all Solution nodes in registration order.
func (r *Registry) Solutions() []model.Solution {
	var out []model.Solution
	for _, n := range r.All(model.KindSolution) {
		out = append(out, n.(model.Solution))
	}
	return out
}

// Implementations returns all Implementation nodes in registration order.
func (r *Registry) Implementations() []model.Implementation {
	var out []model.Implementation
	for _, n := range r.All(model.KindImplementation) {
		out = append(out, n.(model.Implementation))
	}
	return out
}

// Verifications returns all Verification nodes in registration order.
func (r *Registry) Verifications() []model.Verification {
	var out []model.Verification
	for _, n := range r.All(model.KindVerification) {
		out = append(out, n.(model.Verification))
	}
	return out
}

// SetMeasured attaches an observed constraint value to a node after the
// fact. It overwrites any previous measurement for the same key.
func (r *Registry) SetMeasured(nodeID, key string, value cty.Value) {
	m, ok := r.measured[nodeID]
	if !ok {
		m = make(map[string]cty.Value)
		r.measured[nodeID] = m
	}
	m[key] = value
}

// Measured returns the measured constraint values recorded for a node, or
// nil if none exist.
func (r *Registry) Measured(nodeID string) map[string]cty.Value {
	return r.measured[nodeID]
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.order)
}
