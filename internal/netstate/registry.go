package netstate

import "github.com/matteog/multilatnet/internal/geo"

// NodeDescriptor is the immutable record of an admitted node: its
// position and the address the dealer should reach it at. Never
// mutated after admission.
type NodeDescriptor struct {
	NodeID    int32
	Position  geo.Vec3
	ReplyAddr string
}

// NodeRegistry is the insertion-ordered node roster guarded by a
// FairRWLock, plus the network's is_active flag. Once is_active flips
// true, membership is frozen for the lifetime of the controller:
// there is no path back to false.
type NodeRegistry struct {
	lock *FairRWLock

	order    []int32
	nodes    map[int32]NodeDescriptor
	isActive bool
}

// NewNodeRegistry constructs an empty, inactive registry.
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{
		lock:  NewFairRWLock(),
		nodes: make(map[int32]NodeDescriptor),
	}
}

// AddNode inserts a new node if the registry is inactive and the id is
// not already present. Returns true on success,
// false when the registry is already active or the id is taken.
func (r *NodeRegistry) AddNode(id int32, pos geo.Vec3, replyAddr string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.isActive {
		return false
	}
	if _, exists := r.nodes[id]; exists {
		return false
	}
	r.nodes[id] = NodeDescriptor{NodeID: id, Position: pos, ReplyAddr: replyAddr}
	r.order = append(r.order, id)
	return true
}

// Activate flips is_active to true and returns a snapshot of the
// roster at the moment of activation, or ok=false if the registry was
// already active. The snapshot happens-before
// is_active becomes visible to any subsequent reader.
func (r *NodeRegistry) Activate() (snapshot map[int32]NodeDescriptor, ok bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.isActive {
		return nil, false
	}

	snapshot = make(map[int32]NodeDescriptor, len(r.nodes))
	for id, desc := range r.nodes {
		snapshot[id] = desc
	}
	r.isActive = true
	return snapshot, true
}

// IsActive reports whether StartNetwork has already succeeded.
func (r *NodeRegistry) IsActive() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.isActive
}

// Snapshot returns a copy of the current roster, in insertion order.
func (r *NodeRegistry) Snapshot() []NodeDescriptor {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]NodeDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.nodes[id])
	}
	return out
}
