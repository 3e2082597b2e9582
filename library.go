package tetraxr

// Library represents a collection of Scenes, as loaded from a .gltf or .glb file.
type Library struct {
	Scenes        []*Scene // A slice of Scenes, in the order they were defined in the file
	ExportedScene *Scene   // The scene marked as the default scene in the file (or the first one, if none was marked)
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Scenes: []*Scene{},
	}
}

// FindScene searches all scenes in a Library to find the one with the provided name. If a scene with the given name isn't found,
// FindScene will return nil.
func (lib *Library) FindScene(name string) *Scene {
	for _, scene := range lib.Scenes {
		if scene.Name == name {
			return scene
		}
	}
	return nil
}

// AddScene creates a new, unloaded Scene with the name given and adds it to the Library.
func (lib *Library) AddScene(sceneName string) *Scene {
	newScene := NewScene(sceneName)
	lib.Scenes = append(lib.Scenes, newScene)
	return newScene
}

// FindNode allows you to find a node by name by searching through each of a Library's scenes. If the Node with the given name isn't found,
// FindNode will return nil.
func (lib *Library) FindNode(objectName string) *Node {
	for _, scene := range lib.Scenes {
		if n := scene.SearchTree().ByName(objectName).First(); n != nil {
			return n
		}
	}
	return nil
}
