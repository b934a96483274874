package menu

import (
	"slices"
	"sort"
	"strings"
)

// rootID keys the root node. No registered path can spell it.
const rootID = ""

// Node represents a handler path segment within the registry tree. Leaves
// hold actions; intermediate nodes are namespaces.
type Node struct {
	ID       string
	Action   Action
	Children map[string]*Node
}

// Registry maps dotted handler paths such as "map.show" to actions.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	root := &Node{ID: rootID, Children: make(map[string]*Node)}
	return &Registry{root: root, nodes: map[string]*Node{rootID: root}}
}

// BuildRegistry constructs the registry from the built-in handlers plus any
// extra handler maps. Later maps override earlier keys.
func BuildRegistry(extra ...map[string]Action) *Registry {
	r := NewRegistry()
	for id, action := range BuiltinHandlers() {
		r.Register(id, action)
	}
	for _, handlers := range extra {
		for id, action := range handlers {
			r.Register(id, action)
		}
	}
	return r
}

// Register binds an action to a dotted path, creating namespace nodes for
// each missing ancestor. Paths with an empty segment are ignored since
// Resolve could never reach them.
func (r *Registry) Register(path string, action Action) {
	path = strings.TrimSpace(path)
	if path == rootID || slices.Contains(strings.Split(path, "."), "") {
		return
	}
	node := r.ensure(path)
	node.Action = action
}

func (r *Registry) ensure(id string) *Node {
	if node, ok := r.nodes[id]; ok {
		return node
	}
	node := &Node{ID: id, Children: make(map[string]*Node)}
	r.nodes[id] = node
	parentID, key := parentKey(id)
	parent := r.ensure(parentID)
	parent.Children[key] = node
	return node
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by its full dotted path.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves a child node under the given parent for the provided key.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

// Resolve walks the dotted path one segment at a time. The returned error
// names the first segment that is missing, or the final segment when it
// names a namespace rather than an action.
func (r *Registry) Resolve(path string) (Action, error) {
	segments := strings.Split(path, ".")
	if r == nil || r.root == nil {
		return nil, &HandlerResolutionError{Path: path, Segment: segments[0]}
	}
	node := r.root
	for _, segment := range segments {
		child, ok := node.Children[segment]
		if !ok {
			return nil, &HandlerResolutionError{Path: path, Segment: segment}
		}
		node = child
	}
	if node.Action == nil {
		return nil, &HandlerResolutionError{Path: path, Segment: segments[len(segments)-1], NotCallable: true}
	}
	return node.Action, nil
}

// Keys lists every path bound to an action, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.nodes))
	for id, node := range r.nodes {
		if node.Action != nil {
			keys = append(keys, id)
		}
	}
	sort.Strings(keys)
	return keys
}

func parentKey(id string) (string, string) {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return rootID, id
	}
	return id[:idx], id[idx+1:]
}
