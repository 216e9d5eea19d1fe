package layout

// Handle identifies a layout participant in the manager's arena. Handles
// are assigned on first contact with the manager and remain stable for the
// manager's lifetime, so dirty sets and revisit counters can be keyed by
// handle instead of object identity. The arena keeps a reference to every
// node it has handed a handle, so nodes stay reachable for as long as
// their manager does.
type Handle int

// arena maps nodes to stable handles and back. Loop-thread confined.
type arena struct {
	handles map[Layoutable]Handle
	nodes   []Layoutable
}

func newArena() *arena {
	return &arena{handles: make(map[Layoutable]Handle)}
}

// handleFor returns the node's handle, assigning one on first contact.
func (a *arena) handleFor(node Layoutable) Handle {
	if h, ok := a.handles[node]; ok {
		return h
	}
	h := Handle(len(a.nodes))
	a.handles[node] = h
	a.nodes = append(a.nodes, node)
	return h
}

// node returns the participant for a previously assigned handle.
func (a *arena) node(h Handle) Layoutable {
	return a.nodes[h]
}

// dirtySet tracks pending nodes by handle. Membership is unique and
// iteration order is unspecified: drains only rely on pop-until-empty.
type dirtySet struct {
	members map[Handle]struct{}
}

func newDirtySet() *dirtySet {
	return &dirtySet{members: make(map[Handle]struct{})}
}

func (s *dirtySet) add(h Handle) {
	s.members[h] = struct{}{}
}

// pop removes and returns an arbitrary member.
func (s *dirtySet) pop() (Handle, bool) {
	for h := range s.members {
		delete(s.members, h)
		return h, true
	}
	return 0, false
}

func (s *dirtySet) len() int {
	return len(s.members)
}

func (s *dirtySet) empty() bool {
	return len(s.members) == 0
}
