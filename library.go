package nodetree

// Library represents a collection of Scenes and Meshes, as loaded from a glTF file.
type Library struct {
	Scenes        []*Scene         // A slice of Scenes
	ExportedScene *Scene           // The scene the file marked as its default, if any
	Meshes        map[string]*Mesh // A Map of Meshes to their names
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Scenes: []*Scene{},
		Meshes: map[string]*Mesh{},
	}
}

// FindScene searches all scenes in a Library to find the one with the provided name. If a scene with the given name
// isn't found, FindScene will return nil.
func (lib *Library) FindScene(name string) *Scene {
	for _, scene := range lib.Scenes {
		if scene.Name == name {
			return scene
		}
	}
	return nil
}

// AddScene creates a new, empty Scene in the Library and returns it.
func (lib *Library) AddScene(sceneName string) *Scene {
	newScene := NewScene(sceneName)
	lib.Scenes = append(lib.Scenes, newScene)
	return newScene
}

// FindNode allows you to find a node by name by searching through each of a Library's scenes. If the Node with the
// given name isn't found, FindNode will return nil.
func (lib *Library) FindNode(name string) INode {
	for _, scene := range lib.Scenes {
		if n := scene.Find(name); n != nil {
			return n
		}
	}
	return nil
}
