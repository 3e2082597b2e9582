package tetraxr

// SceneCallbacks represents a set of callbacks to be called when a SceneManager loads or unloads Scenes.
// Any of the callbacks may be left nil.
type SceneCallbacks struct {
	OnLoaded   func(scene *Scene, roots NodeFilter) // Called after a Scene is loaded at runtime, with the Scene's roots at that time.
	OnUnloaded func(scene *Scene)                   // Called after a Scene is unloaded at runtime.
	OnOpened   func(scene *Scene, roots NodeFilter) // Called after a Scene is opened in an editing session.
	OnClosed   func(scene *Scene)                   // Called after a Scene is closed in an editing session.
}
