package tetraxr

import (
	"go.uber.org/zap"
)

// LoadMode indicates how a SceneManager treats already-loaded Scenes when loading another one.
type LoadMode int

const (
	LoadSingle   LoadMode = iota // Unload every loaded (non-persistent) Scene before loading
	LoadAdditive                 // Keep loaded Scenes and add the new one alongside them
)

// PersistentSceneName is the name of the Scene that holds Nodes surviving scene transitions.
const PersistentSceneName = "DontDestroyOnLoad"

// DefaultMainCameraTag is the tag a camera Node needs to be found by SceneManager.MainCamera().
const DefaultMainCameraTag = "MainCamera"

// SceneManager tracks the set of loaded Scenes and notifies subscribers when Scenes are loaded or unloaded.
// A SceneManager, like the Scenes and Nodes it manages, is meant to be used from a single goroutine.
type SceneManager struct {
	MainCameraTag string // The tag used by MainCamera() to find the main camera.

	scenes      []*Scene
	persistent  *Scene
	subscribers []*SceneCallbacks
	logger      *zap.Logger
}

// NewSceneManager creates a new SceneManager with no loaded Scenes aside from its persistent Scene.
// A nil logger disables logging.
func NewSceneManager(logger *zap.Logger) *SceneManager {

	if logger == nil {
		logger = zap.NewNop()
	}

	persistent := NewScene(PersistentSceneName)
	persistent.loaded = true
	persistent.persistent = true

	return &SceneManager{
		MainCameraTag: DefaultMainCameraTag,
		scenes:        []*Scene{},
		persistent:    persistent,
		logger:        logger,
	}

}

// Subscribe registers the callbacks given to be called on scene transitions, in the order subscribers were added.
// The returned function removes the subscription.
func (sm *SceneManager) Subscribe(callbacks SceneCallbacks) func() {
	sub := &callbacks
	sm.subscribers = append(sm.subscribers, sub)
	return func() {
		for i, s := range sm.subscribers {
			if s == sub {
				sm.subscribers = append(sm.subscribers[:i], sm.subscribers[i+1:]...)
				return
			}
		}
	}
}

// LoadScene loads the Scene given. With LoadSingle, every other loaded Scene (aside from the persistent Scene) is unloaded first.
func (sm *SceneManager) LoadScene(scene *Scene, mode LoadMode) {
	sm.LoadScenes(mode, scene)
}

// LoadScenes loads several Scenes at once. With LoadSingle, every other loaded Scene is unloaded first; the Scenes given
// are then loaded in order, each firing its own loaded notification.
func (sm *SceneManager) LoadScenes(mode LoadMode, scenes ...*Scene) {

	if mode == LoadSingle {
		for _, loaded := range sm.LoadedScenes() {
			sm.UnloadScene(loaded)
		}
	}

	for _, scene := range scenes {
		if sm.load(scene) {
			roots := scene.Roots()
			for _, sub := range sm.snapshot() {
				if sub.OnLoaded != nil {
					sub.OnLoaded(scene, roots)
				}
			}
		}
	}

}

// UnloadScene unloads the Scene given. Its Nodes are kept, but are no longer Valid().
func (sm *SceneManager) UnloadScene(scene *Scene) {
	if sm.unload(scene) {
		for _, sub := range sm.snapshot() {
			if sub.OnUnloaded != nil {
				sub.OnUnloaded(scene)
			}
		}
	}
}

// OpenScene opens the Scene given in an editing session. This loads it additively, but fires OnOpened rather than OnLoaded.
func (sm *SceneManager) OpenScene(scene *Scene) {
	if sm.load(scene) {
		roots := scene.Roots()
		for _, sub := range sm.snapshot() {
			if sub.OnOpened != nil {
				sub.OnOpened(scene, roots)
			}
		}
	}
}

// CloseScene closes the Scene given in an editing session. This unloads it, but fires OnClosed rather than OnUnloaded.
func (sm *SceneManager) CloseScene(scene *Scene) {
	if sm.unload(scene) {
		for _, sub := range sm.snapshot() {
			if sub.OnClosed != nil {
				sub.OnClosed(scene)
			}
		}
	}
}

// UnloadAll unloads every loaded Scene aside from the persistent Scene.
func (sm *SceneManager) UnloadAll() {
	for _, scene := range sm.LoadedScenes() {
		sm.UnloadScene(scene)
	}
}

func (sm *SceneManager) load(scene *Scene) bool {

	if scene == nil {
		return false
	}

	if scene.persistent {
		sm.logger.Warn("the persistent scene can't be loaded", zap.String("scene", scene.Name))
		return false
	}

	if scene.loaded {
		sm.logger.Warn("scene is already loaded", zap.String("scene", scene.Name))
		return false
	}

	scene.loaded = true
	sm.scenes = append(sm.scenes, scene)
	sm.logger.Debug("scene loaded", zap.String("scene", scene.Name), zap.Int("roots", len(scene.roots)))
	return true

}

func (sm *SceneManager) unload(scene *Scene) bool {

	if scene == nil || scene.persistent || !scene.loaded {
		return false
	}

	for i, s := range sm.scenes {
		if s == scene {
			sm.scenes = append(sm.scenes[:i], sm.scenes[i+1:]...)
			break
		}
	}

	scene.loaded = false
	sm.logger.Debug("scene unloaded", zap.String("scene", scene.Name))
	return true

}

func (sm *SceneManager) snapshot() []*SceneCallbacks {
	return append(make([]*SceneCallbacks, 0, len(sm.subscribers)), sm.subscribers...)
}

// LoadedScenes returns the loaded Scenes in load order, excluding the persistent Scene.
func (sm *SceneManager) LoadedScenes() []*Scene {
	return append(make([]*Scene, 0, len(sm.scenes)), sm.scenes...)
}

// Scenes returns every loaded Scene in load order, followed by the persistent Scene.
func (sm *SceneManager) Scenes() []*Scene {
	return append(sm.LoadedScenes(), sm.persistent)
}

// Persistent returns the SceneManager's persistent Scene, which is always loaded and survives LoadSingle transitions.
func (sm *SceneManager) Persistent() *Scene {
	return sm.persistent
}

// ActiveScene returns the first loaded Scene, which is where newly created Nodes go. If no Scene is loaded,
// the persistent Scene is returned.
func (sm *SceneManager) ActiveScene() *Scene {
	if len(sm.scenes) > 0 {
		return sm.scenes[0]
	}
	return sm.persistent
}

// Roots returns the root Nodes of every loaded Scene, in the order of Scenes().
func (sm *SceneManager) Roots() NodeFilter {
	out := NodeFilter{}
	for _, scene := range sm.Scenes() {
		out = append(out, scene.roots...)
	}
	return out
}

// SearchTree returns every Node in every loaded Scene, in the order of Scenes().
func (sm *SceneManager) SearchTree() NodeFilter {
	out := NodeFilter{}
	for _, scene := range sm.Scenes() {
		out = append(out, scene.SearchTree()...)
	}
	return out
}

// MainCamera returns the first camera Node that is active in the hierarchy and tagged with MainCameraTag, or nil if there isn't one.
func (sm *SceneManager) MainCamera() *Node {
	return sm.SearchTree().ByType(NodeTypeCamera).ByTag(sm.MainCameraTag).ActiveInHierarchy().First()
}

// DontDestroyOnLoad moves the root Node given into the persistent Scene, so it survives scene transitions.
// Only roots can be moved; it returns false (and logs a warning) for Nodes that have a parent.
func (sm *SceneManager) DontDestroyOnLoad(node *Node) bool {
	if node.Parent() != nil {
		sm.logger.Warn("only root nodes can be made persistent", zap.String("node", node.Name()))
		return false
	}
	sm.persistent.AddRoots(node)
	return true
}

// HierarchyAsString returns the hierarchies of every loaded Scene.
func (sm *SceneManager) HierarchyAsString() string {
	str := ""
	for _, scene := range sm.Scenes() {
		str += scene.HierarchyAsString()
	}
	return str
}
