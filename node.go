package tetraxr

import (
	"strings"
	"sync/atomic"
)

// NodeType represents a Node's type. Node types are categorized, and can be said to extend or "be of" more general types.
// For example, a Camera has a type of NodeTypeCamera, and can also be said to be NodeTypeNode, but not vice-versa.
type NodeType string

const (
	NodeTypeNode   NodeType = "Node"       // NodeTypeNode represents any generic node
	NodeTypeCamera NodeType = "NodeCamera" // NodeTypeCamera represents specifically a Camera
)

// Is returns true if a NodeType satisfies another NodeType category. A specific node type can be said to
// contain a more general one, but not vice-versa.
func (nt NodeType) Is(other NodeType) bool {
	if nt == other {
		return true
	}
	return strings.Contains(string(nt), string(other))
}

var nodeID uint64

// Node represents an object that exists in 3D space and can be positioned relative to an origin point.
// By default, this origin point is {0, 0, 0} (or world origin), but Nodes can be parented
// to other Nodes to change this origin (making their movements relative and their transforms
// successive). A Node without a parent is a root of whichever Scene it was added to.
type Node struct {
	id               uint64
	name             string
	tag              string
	nodeType         NodeType
	position         Vector
	scale            Vector
	rotation         Matrix4
	active           bool
	data             any
	children         []*Node
	parent           *Node
	scene            *Scene // Only set for roots; descendants find their Scene through Root().
	cachedTransform  Matrix4
	isTransformDirty bool
}

// NewNode returns a new, active Node.
func NewNode(name string) *Node {
	return newNode(name, NodeTypeNode)
}

// NewCamera returns a new, active Node of type NodeTypeCamera.
func NewCamera(name string) *Node {
	return newNode(name, NodeTypeCamera)
}

func newNode(name string, nodeType NodeType) *Node {
	return &Node{
		id:               atomic.AddUint64(&nodeID, 1),
		name:             name,
		nodeType:         nodeType,
		scale:            Vector{1, 1, 1},
		rotation:         NewMatrix4(),
		children:         []*Node{},
		active:           true,
		isTransformDirty: true,
		// We set this just in case we call a transform property getter before setting it and caching anything
		cachedTransform: NewMatrix4(),
	}
}

// ID returns the object's unique ID.
func (node *Node) ID() uint64 {
	return node.id
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the object's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Tag returns the object's tag, a free-form label used to identify special nodes (like the main camera).
func (node *Node) Tag() string {
	return node.tag
}

// SetTag sets the object's tag.
func (node *Node) SetTag(tag string) {
	node.tag = tag
}

// Type returns the NodeType for this object.
func (node *Node) Type() NodeType {
	return node.nodeType
}

// SetData sets user-customizeable data that could be usefully stored on this node.
func (node *Node) SetData(data any) {
	node.data = data
}

// Data returns user-customizeable data that could be usefully stored on this node.
func (node *Node) Data() any {
	return node.data
}

// Active returns whether the Node itself is enabled, regardless of its parents.
func (node *Node) Active() bool {
	return node.active
}

// SetActive enables or disables the Node. Disabling a Node also implicitly disables its children
// (see ActiveInHierarchy), without changing their own Active() values.
func (node *Node) SetActive(active bool) {
	node.active = active
}

// ActiveInHierarchy returns true if the Node and all of its ancestors are active.
func (node *Node) ActiveInHierarchy() bool {
	for n := node; n != nil; n = n.parent {
		if !n.active {
			return false
		}
	}
	return true
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() *Node {
	return node.parent
}

// Root returns the top-most ancestor of the Node by recursively traversing the hierarchy of parents upwards.
// If the Node has no parent, Root returns the Node itself.
func (node *Node) Root() *Node {
	if node.parent == nil {
		return node
	}
	return node.parent.Root()
}

// IsRoot returns true if the Node has no parent.
func (node *Node) IsRoot() bool {
	return node.parent == nil
}

// Scene returns the Scene the Node's hierarchy belongs to, or nil if its root was never added to a Scene.
func (node *Node) Scene() *Scene {
	return node.Root().scene
}

// Valid returns true while the Node belongs to a Scene that is currently loaded. References to Nodes from
// unloaded Scenes should be treated as stale.
func (node *Node) Valid() bool {
	scene := node.Scene()
	return scene != nil && scene.loaded
}

// AddChildren parents the provided children Nodes to the calling Node, inheriting its transformations and being under it
// in the scenegraph hierarchy. If the children are already parented to other Nodes (or are the roots of a Scene), they are
// detached before doing so. Local transforms are kept as they are.
func (node *Node) AddChildren(children ...*Node) {
	for _, child := range children {
		if child == nil || child == node || node.hasAncestor(child) {
			continue
		}
		if child.parent != nil {
			child.parent.RemoveChildren(child)
		}
		if child.scene != nil {
			child.scene.RemoveRoots(child)
		}
		child.parent = node
		child.dirtyTransform()
		node.children = append(node.children, child)
	}
}

func (node *Node) hasAncestor(other *Node) bool {
	for n := node.parent; n != nil; n = n.parent {
		if n == other {
			return true
		}
	}
	return false
}

// RemoveChildren removes the provided children from this object, detaching them from the scenegraph entirely.
func (node *Node) RemoveChildren(children ...*Node) {

	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				child.parent = nil
				child.dirtyTransform()
				node.children[i] = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}

}

// Unparent unparents the Node from its parent. If the Node was part of a Scene, it becomes a root of that Scene.
func (node *Node) Unparent() {
	if node.parent == nil {
		return
	}
	scene := node.Scene()
	node.parent.RemoveChildren(node)
	if scene != nil {
		scene.AddRoots(node)
	}
}

// Index returns the index of the Node in its parent's children list.
// If the node doesn't have a parent, its index will be -1.
func (node *Node) Index() int {
	if node.parent != nil {
		return node.parent.Children().Index(node)
	}
	return -1
}

// Children returns the Node's children as a NodeFilter.
func (node *Node) Children() NodeFilter {
	return append(make(NodeFilter, 0, len(node.children)), node.children...)
}

// ChildrenRecursive returns the Node's recursive children (i.e. children, grandchildren, etc), depth-first.
func (node *Node) ChildrenRecursive() NodeFilter {
	out := NodeFilter{}
	for _, child := range node.children {
		out = append(out, child)
		out = append(out, child.ChildrenRecursive()...)
	}
	return out
}

// Transform returns a Matrix4 indicating the global position, rotation, and scale of the object, transforming it by any parents'.
// If there's no change between the previous Transform() call and this one, Transform() will return a cached version of the
// transform for efficiency.
func (node *Node) Transform() Matrix4 {

	// T * R * S * O

	if !node.isTransformDirty {
		return node.cachedTransform
	}

	transform := NewMatrix4Scale(node.scale.X, node.scale.Y, node.scale.Z)
	transform = transform.Mult(node.rotation)
	transform = transform.Mult(NewMatrix4Translate(node.position.X, node.position.Y, node.position.Z))

	if node.parent != nil {
		transform = transform.Mult(node.parent.Transform())
	}

	node.cachedTransform = transform
	node.isTransformDirty = false

	return transform

}

// SetWorldTransform sets the Node's global (world) transform to the full 4x4 transformation matrix provided.
func (node *Node) SetWorldTransform(transform Matrix4) {
	position, scale, rotationMatrix := transform.Decompose()
	node.SetWorldPositionVec(position)
	node.SetWorldScaleVec(scale)
	node.SetWorldRotation(rotationMatrix)
}

// dirtyTransform sets this Node and all recursive children's isTransformDirty flags to be true, indicating that they need to be
// rebuilt. This should be called when modifying the transformation properties (position, scale, rotation) of the Node.
func (node *Node) dirtyTransform() {
	node.isTransformDirty = true
	for _, child := range node.children {
		child.dirtyTransform()
	}
}

// LocalPosition returns the object's local position (position relative to its parent). If this object has no parent, the position will be
// relative to world origin (0, 0, 0).
func (node *Node) LocalPosition() Vector {
	return node.position
}

// SetLocalPosition sets the object's local position (position relative to its parent).
func (node *Node) SetLocalPosition(x, y, z float64) {
	node.position.X = x
	node.position.Y = y
	node.position.Z = z
	node.dirtyTransform()
}

// SetLocalPositionVec sets the object's local position (position relative to its parent).
func (node *Node) SetLocalPositionVec(position Vector) {
	node.SetLocalPosition(position.X, position.Y, position.Z)
}

// WorldPosition returns the object's world position (position relative to the world origin point of {0, 0, 0}).
func (node *Node) WorldPosition() Vector {
	return node.Transform().Row(3) // We don't want to have to decompose if we don't have to
}

// SetWorldPositionVec sets the object's world position (position relative to the world origin point of {0, 0, 0}).
func (node *Node) SetWorldPositionVec(position Vector) {

	if node.parent != nil {
		node.position = node.parent.Transform().Inverted().MultVec(position)
	} else {
		node.position = position
	}

	node.dirtyTransform()

}

// SetWorldPosition sets the object's world position (position relative to the world origin point of {0, 0, 0}).
func (node *Node) SetWorldPosition(x, y, z float64) {
	node.SetWorldPositionVec(Vector{x, y, z})
}

// LocalScale returns the object's local scale (scale relative to its parent). If this object has no parent, the scale will be absolute.
func (node *Node) LocalScale() Vector {
	return node.scale
}

// SetLocalScale sets the object's local scale (scale relative to its parent). If this object has no parent, the scale would be absolute.
func (node *Node) SetLocalScale(w, h, d float64) {
	node.scale.X = w
	node.scale.Y = h
	node.scale.Z = d
	node.dirtyTransform()
}

// SetLocalScaleVec sets the object's local scale (scale relative to its parent).
func (node *Node) SetLocalScaleVec(scale Vector) {
	node.SetLocalScale(scale.X, scale.Y, scale.Z)
}

// WorldScale returns the object's absolute world scale. Note that this is a bit slow as it
// requires decomposing the node's world transform.
func (node *Node) WorldScale() Vector {
	_, scale, _ := node.Transform().Decompose()
	return scale
}

// SetWorldScaleVec sets the object's absolute world scale.
func (node *Node) SetWorldScaleVec(scale Vector) {

	if node.parent != nil {
		_, parentScale, _ := node.parent.Transform().Decompose()
		node.scale = Vector{
			scale.X / parentScale.X,
			scale.Y / parentScale.Y,
			scale.Z / parentScale.Z,
		}
	} else {
		node.scale = scale
	}

	node.dirtyTransform()

}

// LocalRotation returns the object's local rotation Matrix4.
func (node *Node) LocalRotation() Matrix4 {
	return node.rotation.Clone()
}

// SetLocalRotation sets the object's local rotation Matrix4 (relative to any parent).
func (node *Node) SetLocalRotation(rotation Matrix4) {
	node.rotation.Set(rotation)
	node.dirtyTransform()
}

// WorldRotation returns an absolute rotation Matrix4 representing the object's rotation.
func (node *Node) WorldRotation() Matrix4 {
	_, _, rotation := node.Transform().Decompose()
	return rotation
}

// SetWorldRotation sets an object's rotation to the provided rotation Matrix4.
func (node *Node) SetWorldRotation(rotation Matrix4) {

	if node.parent != nil {
		_, _, parentRot := node.parent.Transform().Decompose()
		node.rotation.Set(rotation.Mult(parentRot.Transposed()))
	} else {
		node.rotation.Set(rotation)
	}

	node.dirtyTransform()
}

// Move moves a Node in local space by the x, y, and z values provided.
func (node *Node) Move(x, y, z float64) {
	if x == 0 && y == 0 && z == 0 {
		return
	}
	node.position.X += x
	node.position.Y += y
	node.position.Z += z
	node.dirtyTransform()
}

// MoveVec moves a Node in local space using the vector provided.
func (node *Node) MoveVec(vec Vector) {
	node.Move(vec.X, vec.Y, vec.Z)
}

// Rotate rotates a Node on its local orientation on a vector composed of the given x, y, and z values, by the angle provided in radians.
func (node *Node) Rotate(x, y, z, angle float64) {
	if x == 0 && y == 0 && z == 0 {
		return
	}
	node.SetLocalRotation(node.LocalRotation().Rotated(x, y, z, angle))
}

// RotateAround rotates the Node around the world-space point given, on the world-space axis provided, by the angle provided in radians.
// Both the Node's position and orientation change.
func (node *Node) RotateAround(point, axis Vector, angle float64) {
	rotation := NewMatrix4Rotate(axis.X, axis.Y, axis.Z, angle)
	offset := node.WorldPosition().Sub(point)
	worldRotation := node.WorldRotation()
	node.SetWorldPositionVec(point.Add(rotation.MultVec(offset)))
	node.SetWorldRotation(worldRotation.Mult(rotation))
}

// TransformPoint transforms a point from the Node's local space into world space.
func (node *Node) TransformPoint(point Vector) Vector {
	return node.Transform().MultVec(point)
}

// InverseTransformPoint transforms a point from world space into the Node's local space.
func (node *Node) InverseTransformPoint(point Vector) Vector {
	return node.Transform().Inverted().MultVec(point)
}

// TransformDirection rotates a direction from the Node's local space into world space. Position and scale don't affect it.
func (node *Node) TransformDirection(direction Vector) Vector {
	return node.WorldRotation().MultVecDir(direction)
}

// InverseTransformDirection rotates a direction from world space into the Node's local space. Position and scale don't affect it.
func (node *Node) InverseTransformDirection(direction Vector) Vector {
	return node.WorldRotation().Transposed().MultVecDir(direction)
}

// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children.
// This is a useful function to debug the layout of a node tree, for example.
// Cameras are prefixed with "CAM", other Nodes with "NODE"; disabled Nodes are marked with "(off)".
// All Nodes listed in the hierarchy will also show their world positions, truncated to the first 2 decimals.
func (node *Node) HierarchyAsString() string {

	var printNode func(node *Node, level int) string

	printNode = func(node *Node, level int) string {

		prefix := "NODE"
		if node.Type().Is(NodeTypeCamera) {
			prefix = "CAM"
		}

		str := strings.Repeat("    |", level)
		if level > 0 {
			str += "-"
		}
		str += " [" + prefix + "] " + node.Name()
		if !node.Active() {
			str += " (off)"
		}
		str += " : " + node.WorldPosition().String() + "\n"

		for _, child := range node.children {
			str += printNode(child, level+1)
		}

		return str
	}

	return printNode(node, 0)
}

// Get searches a node's hierarchy using a string to find a specified node. The path is in the format of names of nodes, separated by forward
// slashes ('/'), and is relative to the node you use to call Get. Note also that you can use "../" to "go up one" in the hierarchy.
func (node *Node) Get(path string) *Node {

	current := node

	for _, s := range strings.Split(path, `/`) {

		s = strings.TrimSpace(s)

		if s == "" {
			continue
		}

		if s == ".." {
			current = current.parent
		} else {
			current = current.Children().ByName(s).First()
		}

		if current == nil {
			return nil
		}

	}

	return current

}
