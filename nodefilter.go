package tetraxr

// NodeFilter represents a set of Nodes, as returned by hierarchy queries. Filtering functions return
// new NodeFilters, so calls can be chained (e.g. scene.SearchTree().ByType(NodeTypeCamera).ByTag("MainCamera").First()).
type NodeFilter []*Node

// ByFunc returns a new NodeFilter containing only the Nodes for which the filter function returns true.
func (nf NodeFilter) ByFunc(filterFunc func(node *Node) bool) NodeFilter {
	out := make(NodeFilter, 0, len(nf))
	for _, node := range nf {
		if filterFunc(node) {
			out = append(out, node)
		}
	}
	return out
}

// ByName returns a new NodeFilter containing only the Nodes with the name given.
func (nf NodeFilter) ByName(name string) NodeFilter {
	return nf.ByFunc(func(node *Node) bool { return node.Name() == name })
}

// ByTag returns a new NodeFilter containing only the Nodes with the tag given.
func (nf NodeFilter) ByTag(tag string) NodeFilter {
	return nf.ByFunc(func(node *Node) bool { return node.Tag() == tag })
}

// ByType returns a new NodeFilter containing only the Nodes that satisfy the NodeType given.
func (nf NodeFilter) ByType(nodeType NodeType) NodeFilter {
	return nf.ByFunc(func(node *Node) bool { return node.Type().Is(nodeType) })
}

// ActiveInHierarchy returns a new NodeFilter containing only the Nodes that are active in the hierarchy.
func (nf NodeFilter) ActiveInHierarchy() NodeFilter {
	return nf.ByFunc(func(node *Node) bool { return node.ActiveInHierarchy() })
}

// First returns the first Node in the NodeFilter, or nil if it is empty.
func (nf NodeFilter) First() *Node {
	if len(nf) == 0 {
		return nil
	}
	return nf[0]
}

// Index returns the index of the given Node in the NodeFilter, or -1 if it isn't present.
func (nf NodeFilter) Index(node *Node) int {
	for i, n := range nf {
		if n == node {
			return i
		}
	}
	return -1
}

// Contains returns true if the Node is present in the NodeFilter.
func (nf NodeFilter) Contains(node *Node) bool {
	return nf.Index(node) >= 0
}

// ForEach calls the function given for each Node in order. If the function returns false, iteration stops.
func (nf NodeFilter) ForEach(forEachFunc func(node *Node) bool) {
	for _, node := range nf {
		if !forEachFunc(node) {
			break
		}
	}
}
