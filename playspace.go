package tetraxr

import (
	"go.uber.org/zap"
)

// DefaultPlayspaceName is the reserved name identifying the playspace Node.
const DefaultPlayspaceName = "MixedRealityPlayspace"

// PlayspaceOptions alters how a Playspace finds and manages its Node.
type PlayspaceOptions struct {
	Name    string      // The reserved name of the playspace Node.
	Logger  *zap.Logger // Where recoveries (renames, re-enables, disabled duplicates) are reported; nil disables logging.
	Metrics *Metrics    // Collectors to update; nil creates unregistered ones.
}

// DefaultPlayspaceOptions creates an instance of PlayspaceOptions with sensible defaults.
func DefaultPlayspaceOptions() *PlayspaceOptions {
	return &PlayspaceOptions{
		Name: DefaultPlayspaceName,
	}
}

// Playspace manages the single Node that anchors the user's tracked physical space to the virtual world.
// The main camera is parented to it, so moving the Playspace moves the whole camera rig.
//
// At most one root Node carrying the playspace name is active across the loaded Scenes at any time. The Playspace
// enforces this on scene transitions once Init has been called; duplicates are disabled, never destroyed.
//
// A Playspace is not safe for concurrent use; like the scene graph, it belongs to the update goroutine.
type Playspace struct {
	scenes      *SceneManager
	name        string
	logger      *zap.Logger
	metrics     *Metrics
	current     *Node
	unsubscribe func()
}

// NewPlayspace creates a new Playspace over the SceneManager given. Passing nil for options uses DefaultPlayspaceOptions().
func NewPlayspace(scenes *SceneManager, options *PlayspaceOptions) *Playspace {

	if options == nil {
		options = DefaultPlayspaceOptions()
	}

	ps := &Playspace{
		scenes:  scenes,
		name:    options.Name,
		logger:  options.Logger,
		metrics: options.Metrics,
	}

	if ps.name == "" {
		ps.name = DefaultPlayspaceName
	}

	if ps.logger == nil {
		ps.logger = zap.NewNop()
	}

	if ps.metrics == nil {
		ps.metrics = NewMetrics(nil)
	}

	return ps

}

// Init subscribes the Playspace to the SceneManager's scene transitions. Calling it again has no effect.
func (ps *Playspace) Init() {
	if ps.unsubscribe != nil {
		return
	}
	ps.unsubscribe = ps.scenes.Subscribe(SceneCallbacks{
		OnLoaded:   ps.OnSceneLoaded,
		OnOpened:   ps.OnSceneLoaded,
		OnUnloaded: ps.OnSceneUnloaded,
		OnClosed:   ps.OnSceneUnloaded,
	})
}

// Close removes the Playspace's scene subscription.
func (ps *Playspace) Close() {
	if ps.unsubscribe != nil {
		ps.unsubscribe()
		ps.unsubscribe = nil
	}
}

// Reset forgets the cached playspace Node; the next call to Node() finds, adopts, or creates one again.
func (ps *Playspace) Reset() {
	ps.current = nil
}

// Name returns the reserved playspace name.
func (ps *Playspace) Name() string {
	return ps.name
}

// Cached returns the cached playspace Node without creating, adopting, or enabling anything. It may be nil.
func (ps *Playspace) Cached() *Node {
	return ps.current
}

// Node returns the current playspace Node, making sure it is active. If none is cached, it is, in order:
// adopted from the roots of the loaded Scenes, adopted from the root above the main camera (renaming it if needed),
// or created in the active Scene with the main camera reparented under it. Node never fails.
func (ps *Playspace) Node() *Node {

	if ps.current != nil && ps.current.Valid() {
		ps.activate(ps.current)
		return ps.current
	}

	ps.current = nil

	if node := ps.adopt(ps.scenes.Roots()); node != nil {
		return node
	}

	camera := ps.scenes.MainCamera()

	if camera != nil && camera.Parent() != nil {

		root := camera.Root()

		if root.Name() != ps.name {
			ps.logger.Warn("main camera's root isn't named as the playspace; renaming it",
				zap.String("from", root.Name()),
				zap.String("to", ps.name))
			root.SetName(ps.name)
			ps.metrics.PlayspacesRenamed.Inc()
		}

		ps.current = root
		ps.activate(root)
		ps.metrics.PlayspacesAdopted.Inc()
		return root

	}

	node := NewNode(ps.name)
	scene := ps.scenes.ActiveScene()
	scene.AddRoots(node)

	if camera != nil {
		node.AddChildren(camera)
	}

	ps.logger.Info("created playspace", zap.String("scene", scene.Name), zap.Bool("camera", camera != nil))
	ps.metrics.PlayspacesCreated.Inc()

	ps.current = node
	return node

}

// OnSceneLoaded reconciles newly loaded roots. With no cached playspace, the first root carrying the playspace name is
// adopted and enabled, and later ones are disabled. With a cached playspace, every other root carrying the name is disabled.
// Init wires this to the SceneManager's loaded and opened notifications.
func (ps *Playspace) OnSceneLoaded(scene *Scene, roots NodeFilter) {

	if ps.current != nil && !ps.current.Valid() {
		ps.current = nil
	}

	if ps.current == nil {
		ps.adopt(roots)
		return
	}

	for _, root := range roots {
		if root != ps.current && root.Name() == ps.name {
			ps.disable(root)
		}
	}

}

// OnSceneUnloaded drops the cached playspace if its Scene was unloaded, then re-adopts a surviving playspace
// from the loaded Scenes, if there is one. Init wires this to the SceneManager's unloaded and closed notifications.
func (ps *Playspace) OnSceneUnloaded(scene *Scene) {

	if ps.current == nil || ps.current.Valid() {
		return
	}

	ps.logger.Debug("playspace scene unloaded", zap.String("scene", scene.Name))
	ps.current = nil
	ps.adopt(ps.scenes.Roots())

}

// adopt adopts the first root carrying the playspace name and disables every later one.
func (ps *Playspace) adopt(roots NodeFilter) *Node {

	var adopted *Node

	for _, root := range roots {

		if root.Name() != ps.name {
			continue
		}

		if adopted == nil {
			adopted = root
			ps.current = root
			ps.activate(root)
			ps.metrics.PlayspacesAdopted.Inc()
			ps.logger.Debug("adopted playspace", zap.Uint64("id", root.ID()))
			continue
		}

		ps.disable(root)

	}

	return adopted

}

func (ps *Playspace) activate(node *Node) {
	if !node.Active() {
		ps.logger.Warn("playspace was disabled; re-enabling it", zap.Uint64("id", node.ID()))
		node.SetActive(true)
		ps.metrics.PlayspacesReactivated.Inc()
	}
}

func (ps *Playspace) disable(node *Node) {
	if node.Active() {
		ps.logger.Warn("found a duplicate playspace; disabling it", zap.Uint64("id", node.ID()))
		node.SetActive(false)
		ps.metrics.DuplicatesDisabled.Inc()
	}
}

// Position returns the playspace's world position.
func (ps *Playspace) Position() Vector {
	return ps.Node().WorldPosition()
}

// SetPosition sets the playspace's world position.
func (ps *Playspace) SetPosition(position Vector) {
	ps.Node().SetWorldPositionVec(position)
}

// Rotation returns the playspace's world rotation.
func (ps *Playspace) Rotation() Quaternion {
	return ps.Node().WorldRotation().ToQuaternion()
}

// SetRotation sets the playspace's world rotation.
func (ps *Playspace) SetRotation(rotation Quaternion) {
	ps.Node().SetWorldRotation(rotation.ToMatrix4())
}

// TransformPoint transforms a point from playspace-local space to world space.
func (ps *Playspace) TransformPoint(point Vector) Vector {
	return ps.Node().TransformPoint(point)
}

// InverseTransformPoint transforms a point from world space to playspace-local space.
func (ps *Playspace) InverseTransformPoint(point Vector) Vector {
	return ps.Node().InverseTransformPoint(point)
}

// TransformDirection rotates a direction from playspace-local space to world space.
func (ps *Playspace) TransformDirection(direction Vector) Vector {
	return ps.Node().TransformDirection(direction)
}

// InverseTransformDirection rotates a direction from world space to playspace-local space.
func (ps *Playspace) InverseTransformDirection(direction Vector) Vector {
	return ps.Node().InverseTransformDirection(direction)
}

// RotateAround rotates the playspace around a world-space point on a world-space axis by the angle given in radians.
func (ps *Playspace) RotateAround(point, axis Vector, angle float64) {
	ps.Node().RotateAround(point, axis, angle)
}

// Transform calls the function given with the current playspace Node, for transformations the Playspace doesn't wrap.
func (ps *Playspace) Transform(transformation func(node *Node)) {
	transformation(ps.Node())
}
