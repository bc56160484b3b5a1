// Package ledger tracks which nodes each owner holds.
//
// Owners live in a dense slice with an address -> position side table, and every
// owner holds a dense slice of nodes. A ledger-wide id -> (owner, index) table makes
// node references O(1). Removal swaps the last node into the removed slot, so node
// indices are not stable across removals for the same owner; node ids are.
//
// Ledger is not safe for concurrent use; callers serialize access.
package ledger

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
)

type ownerEntry struct {
	address  common.Address
	nodes    []entity.Node
	migrated bool
}

type location struct {
	owner common.Address
	index int
}

type Ledger struct {
	owners   []*ownerEntry
	position map[common.Address]int
	byID     map[uint64]location
	nextID   uint64
}

func New() *Ledger {
	return &Ledger{
		position: make(map[common.Address]int),
		byID:     make(map[uint64]location),
		nextID:   1,
	}
}

func (l *Ledger) entry(owner common.Address) (*ownerEntry, bool) {
	i, ok := l.position[owner]
	if !ok {
		return nil, false
	}
	return l.owners[i], true
}

// EnsureOwner creates the owner entry if absent and reports whether it was created.
func (l *Ledger) EnsureOwner(owner common.Address) bool {
	if _, ok := l.position[owner]; ok {
		return false
	}
	l.position[owner] = len(l.owners)
	l.owners = append(l.owners, &ownerEntry{address: owner})
	return true
}

// Push appends node to the owner's collection and assigns it the next node id.
// The owner entry is created on first push.
func (l *Ledger) Push(owner common.Address, node entity.Node) entity.Node {
	l.EnsureOwner(owner)
	e := l.owners[l.position[owner]]

	node.ID = l.nextID
	node.Owner = owner
	l.nextID++

	l.byID[node.ID] = location{owner: owner, index: len(e.nodes)}
	e.nodes = append(e.nodes, node)
	return node
}

// Reinsert appends a previously removed node, keeping its id.
func (l *Ledger) Reinsert(node entity.Node) error {
	if _, ok := l.byID[node.ID]; ok {
		return errors.Wrapf(errs.DuplicateKey, "node id %d is already in the ledger", node.ID)
	}
	l.EnsureOwner(node.Owner)
	e := l.owners[l.position[node.Owner]]
	l.byID[node.ID] = location{owner: node.Owner, index: len(e.nodes)}
	e.nodes = append(e.nodes, node)
	return nil
}

// RemoveAt removes the node at index by moving the owner's last node into its slot.
func (l *Ledger) RemoveAt(owner common.Address, index int) (entity.Node, error) {
	e, ok := l.entry(owner)
	if !ok || index < 0 || index >= len(e.nodes) {
		return entity.Node{}, errors.Wrapf(errs.IndexOutOfRange, "owner %s has no node at index %d", owner, index)
	}
	removed := e.nodes[index]
	last := len(e.nodes) - 1
	if index != last {
		moved := e.nodes[last]
		e.nodes[index] = moved
		l.byID[moved.ID] = location{owner: owner, index: index}
	}
	e.nodes = e.nodes[:last]
	delete(l.byID, removed.ID)
	return removed, nil
}

// Get returns the node at index of the owner's collection.
func (l *Ledger) Get(owner common.Address, index int) (entity.Node, error) {
	e, ok := l.entry(owner)
	if !ok || index < 0 || index >= len(e.nodes) {
		return entity.Node{}, errors.Wrapf(errs.IndexOutOfRange, "owner %s has no node at index %d", owner, index)
	}
	return e.nodes[index], nil
}

// Set replaces the node at index. The node id must not change.
func (l *Ledger) Set(owner common.Address, index int, node entity.Node) error {
	e, ok := l.entry(owner)
	if !ok || index < 0 || index >= len(e.nodes) {
		return errors.Wrapf(errs.IndexOutOfRange, "owner %s has no node at index %d", owner, index)
	}
	if e.nodes[index].ID != node.ID {
		return errors.Wrapf(errs.InvalidArgument, "node id mismatch at index %d: %d != %d", index, e.nodes[index].ID, node.ID)
	}
	node.Owner = owner
	e.nodes[index] = node
	return nil
}

// Swap exchanges the nodes at positions i and j of the owner's collection.
func (l *Ledger) Swap(owner common.Address, i, j int) error {
	e, ok := l.entry(owner)
	if !ok || i < 0 || j < 0 || i >= len(e.nodes) || j >= len(e.nodes) {
		return errors.Wrapf(errs.IndexOutOfRange, "owner %s: swap %d <-> %d", owner, i, j)
	}
	e.nodes[i], e.nodes[j] = e.nodes[j], e.nodes[i]
	l.byID[e.nodes[i].ID] = location{owner: owner, index: i}
	l.byID[e.nodes[j].ID] = location{owner: owner, index: j}
	return nil
}

// Lookup resolves a node id to its owner and current index.
func (l *Ledger) Lookup(id uint64) (common.Address, int, bool) {
	loc, ok := l.byID[id]
	if !ok {
		return common.Address{}, 0, false
	}
	return loc.owner, loc.index, true
}

// Count returns the number of nodes held by owner, zero for unknown owners.
func (l *Ledger) Count(owner common.Address) int {
	e, ok := l.entry(owner)
	if !ok {
		return 0
	}
	return len(e.nodes)
}

func (l *Ledger) HasOwner(owner common.Address) bool {
	_, ok := l.position[owner]
	return ok
}

func (l *Ledger) OwnerCount() int {
	return len(l.owners)
}

func (l *Ledger) Owner(owner common.Address) (entity.Owner, bool) {
	i, ok := l.position[owner]
	if !ok {
		return entity.Owner{}, false
	}
	return l.owners[i].view(i), true
}

func (l *Ledger) SetMigrated(owner common.Address, migrated bool) {
	l.EnsureOwner(owner)
	l.owners[l.position[owner]].migrated = migrated
}

// PopOwner removes the most recently created owner entry. It only succeeds when that
// owner holds no nodes, which makes it the inverse of an EnsureOwner that created it.
func (l *Ledger) PopOwner(owner common.Address) error {
	i, ok := l.position[owner]
	if !ok || i != len(l.owners)-1 {
		return errors.Wrapf(errs.InvalidArgument, "owner %s is not the last owner entry", owner)
	}
	if len(l.owners[i].nodes) > 0 {
		return errors.Wrapf(errs.InvalidArgument, "owner %s still holds nodes", owner)
	}
	l.owners = l.owners[:i]
	delete(l.position, owner)
	return nil
}

// NextID returns the id the next pushed node will receive.
func (l *Ledger) NextID() uint64 {
	return l.nextID
}

// SetNextID rewinds or advances the id sequence.
func (l *Ledger) SetNextID(id uint64) {
	l.nextID = id
}

// Owners yields owner entries in position order, starting at offset.
// A zero limit yields everything after offset.
func (l *Ledger) Owners(offset, limit int) iter.Seq[entity.Owner] {
	return func(yield func(entity.Owner) bool) {
		start, end := window(len(l.owners), offset, limit)
		for i := start; i < end; i++ {
			if !yield(l.owners[i].view(i)) {
				return
			}
		}
	}
}

// Nodes yields the owner's nodes in index order, starting at offset.
// A zero limit yields everything after offset.
func (l *Ledger) Nodes(owner common.Address, offset, limit int) iter.Seq[entity.Node] {
	return func(yield func(entity.Node) bool) {
		e, ok := l.entry(owner)
		if !ok {
			return
		}
		start, end := window(len(e.nodes), offset, limit)
		for i := start; i < end; i++ {
			if !yield(e.nodes[i]) {
				return
			}
		}
	}
}

func (e *ownerEntry) view(position int) entity.Owner {
	return entity.Owner{
		Address:   e.address,
		Position:  position,
		NodeCount: len(e.nodes),
		Migrated:  e.migrated,
	}
}

func window(size, offset, limit int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if offset > size {
		offset = size
	}
	end = size
	if limit > 0 && offset+limit < size {
		end = offset + limit
	}
	return offset, end
}
