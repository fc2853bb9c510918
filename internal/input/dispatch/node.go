package dispatch

import "github.com/dshills/tvpanel/internal/input/key"

// Node is a point in the dispatch tree.
type Node struct {
	name     string
	parent   *Node
	handlers []*Registration
}

func newNode(name string, parent *Node) *Node {
	return &Node{name: name, parent: parent}
}

// NewChild creates a node under n.
func (n *Node) NewChild(name string) *Node {
	return newNode(name, n)
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Registration is a handler attached to a node.
type Registration struct {
	node    *Node
	handler Handler
	types   map[key.EventType]bool
	when    func() bool
}

// When gates the handler on pred. The handler is skipped while pred
// returns false.
func (r *Registration) When(pred func() bool) *Registration {
	r.when = pred
	return r
}

// Remove detaches the handler. Safe to call more than once.
func (r *Registration) Remove() {
	if r == nil || r.node == nil {
		return
	}
	n := r.node
	for i, h := range n.handlers {
		if h == r {
			n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
			break
		}
	}
	r.node = nil
}

// AddHandler registers h for the given event types. No types means all.
func (n *Node) AddHandler(h Handler, types ...key.EventType) *Registration {
	r := &Registration{node: n, handler: h}
	if len(types) > 0 {
		r.types = make(map[key.EventType]bool, len(types))
		for _, t := range types {
			r.types[t] = true
		}
	}
	n.handlers = append(n.handlers, r)
	return r
}

// AddHandlerFunc registers fn for the given event types.
func (n *Node) AddHandlerFunc(fn func(e *Event), types ...key.EventType) *Registration {
	return n.AddHandler(HandlerFunc(fn), types...)
}

func (r *Registration) accepts(t key.EventType) bool {
	if r.types != nil && !r.types[t] {
		return false
	}
	return r.when == nil || r.when()
}

func (n *Node) fire(e *Event) {
	handlers := make([]*Registration, len(n.handlers))
	copy(handlers, n.handlers)
	for _, r := range handlers {
		if r.node == nil || !r.accepts(e.Type) {
			continue
		}
		r.handler.HandleEvent(e)
	}
}

// path returns the nodes from the root down to n.
func (n *Node) path() []*Node {
	var rev []*Node
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	out := make([]*Node, len(rev))
	for i, node := range rev {
		out[len(rev)-1-i] = node
	}
	return out
}

func (n *Node) within(root *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}
