// Package nodetype implements the catalog of purchasable and upgradeable node tiers.
//
// The registry is an enumerable mapping: a dense slice keeps insertion order for
// enumeration and a name index gives O(1) lookup. It is not safe for concurrent use;
// callers serialize access.
package nodetype

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
)

type Registry struct {
	types []entity.NodeType
	index map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Add appends a new node type. Forward references in NextTier are accepted.
func (r *Registry) Add(t entity.NodeType) error {
	if err := t.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if _, ok := r.index[t.Name]; ok {
		return errors.Wrapf(errs.DuplicateKey, "node type %q already exists", t.Name)
	}
	r.index[t.Name] = len(r.types)
	r.types = append(r.types, t)
	return nil
}

// Update applies a selective update and returns the previous configuration.
func (r *Registry) Update(name string, update entity.NodeTypeUpdate) (entity.NodeType, error) {
	i, ok := r.index[name]
	if !ok {
		return entity.NodeType{}, errors.Wrapf(errs.NotFound, "node type %q", name)
	}
	old := r.types[i]
	updated := update.Apply(old)
	if err := updated.Validate(); err != nil {
		return entity.NodeType{}, errors.WithStack(err)
	}
	r.types[i] = updated
	return old, nil
}

// Replace overwrites an existing type in place, keeping its position.
func (r *Registry) Replace(t entity.NodeType) error {
	i, ok := r.index[t.Name]
	if !ok {
		return errors.Wrapf(errs.NotFound, "node type %q", t.Name)
	}
	r.types[i] = t
	return nil
}

func (r *Registry) Get(name string) (entity.NodeType, error) {
	i, ok := r.index[name]
	if !ok {
		return entity.NodeType{}, errors.Wrapf(errs.NotFound, "node type %q", name)
	}
	return r.types[i], nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r *Registry) Len() int {
	return len(r.types)
}

// All yields every node type in insertion order.
// The sequence reads the registry lazily and can be ranged over any number of times.
func (r *Registry) All() iter.Seq[entity.NodeType] {
	return func(yield func(entity.NodeType) bool) {
		for _, t := range r.types {
			if !yield(t) {
				return
			}
		}
	}
}

// Remove deletes a type while preserving the order of the remaining ones.
// Node types are never deleted through the public surface; Remove exists to undo an Add.
func (r *Registry) Remove(name string) error {
	i, ok := r.index[name]
	if !ok {
		return errors.Wrapf(errs.NotFound, "node type %q", name)
	}
	r.types = append(r.types[:i], r.types[i+1:]...)
	delete(r.index, name)
	for j := i; j < len(r.types); j++ {
		r.index[r.types[j].Name] = j
	}
	return nil
}
