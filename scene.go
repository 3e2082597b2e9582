package tetraxr

// Scene represents a set of root Nodes that are loaded and unloaded together by a SceneManager.
// A Scene can be loaded, unloaded, and loaded again; its Nodes are kept across those transitions.
type Scene struct {
	Name       string
	roots      []*Node
	loaded     bool
	persistent bool
}

// NewScene creates a new, empty, unloaded Scene.
func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		roots: []*Node{},
	}
}

// AddRoots adds the Nodes given as roots of the Scene. Nodes that are parented are unparented first, and Nodes that
// are roots of another Scene are moved over.
func (scene *Scene) AddRoots(nodes ...*Node) {

	for _, node := range nodes {

		if node == nil || node.scene == scene {
			continue
		}

		if node.parent != nil {
			node.parent.RemoveChildren(node)
		}

		if node.scene != nil {
			node.scene.RemoveRoots(node)
		}

		node.scene = scene
		scene.roots = append(scene.roots, node)

	}

}

// RemoveRoots removes the root Nodes given from the Scene.
func (scene *Scene) RemoveRoots(nodes ...*Node) {

	for _, node := range nodes {

		for i := 0; i < len(scene.roots); i++ {
			if scene.roots[i] == node {
				node.scene = nil
				scene.roots[i] = nil
				scene.roots = append(scene.roots[:i], scene.roots[i+1:]...)
				break
			}
		}

	}

}

// Roots returns the Scene's root Nodes, in the order they were added.
func (scene *Scene) Roots() NodeFilter {
	return append(make(NodeFilter, 0, len(scene.roots)), scene.roots...)
}

// FindRoot returns the first root Node with the given name, or nil if there isn't one.
func (scene *Scene) FindRoot(name string) *Node {
	return scene.Roots().ByName(name).First()
}

// SearchTree returns every Node in the Scene, depth-first, starting with each root in order.
func (scene *Scene) SearchTree() NodeFilter {
	out := NodeFilter{}
	for _, root := range scene.roots {
		out = append(out, root)
		out = append(out, root.ChildrenRecursive()...)
	}
	return out
}

// Loaded returns whether the Scene is currently loaded into a SceneManager.
func (scene *Scene) Loaded() bool {
	return scene.loaded
}

// Persistent returns whether the Scene is a SceneManager's persistent scene, which survives scene transitions.
func (scene *Scene) Persistent() bool {
	return scene.persistent
}

// HierarchyAsString returns a string displaying the hierarchy of every root of the Scene.
func (scene *Scene) HierarchyAsString() string {
	str := "[SCENE] " + scene.Name + "\n"
	for _, root := range scene.roots {
		str += root.HierarchyAsString()
	}
	return str
}
