package tetraxr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/qmuntal/gltf"
)

// GLTFLoadOptions alters how a glTF file is turned into a Library.
type GLTFLoadOptions struct {
	// CameraTag is the tag given to loaded camera Nodes that don't carry a "tag" property of their own.
	// Defaults to DefaultMainCameraTag, so that a camera exported alone is found as the main camera.
	CameraTag string
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		CameraTag: DefaultMainCameraTag,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options.
// LoadGLTFFile will return a Library, and an error if the process fails.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Library, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return LoadGLTFData(fileData, loadOptions)

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options.
func LoadGLTFData(data []byte, gltfLoadOptions *GLTFLoadOptions) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}

	return LoadGLTFDocument(doc, gltfLoadOptions)

}

// LoadGLTFDocument builds a Library out of an already-decoded glTF document. Each glTF scene becomes an unloaded Scene
// whose roots are the scene's nodes; every scene gets its own copy of the Nodes it references.
//
// Node names, transforms (either TRS or a matrix), children and cameras are loaded. The custom properties "tag" (string)
// and "active" (bool) set the Node's tag and active state; any other custom properties are stored as the Node's data.
func LoadGLTFDocument(doc *gltf.Document, gltfLoadOptions *GLTFLoadOptions) (*Library, error) {

	if gltfLoadOptions == nil {
		gltfLoadOptions = DefaultGLTFLoadOptions()
	}

	library := NewLibrary()

	for sceneIndex, s := range doc.Scenes {

		name := s.Name
		if name == "" {
			name = "Scene" + strconv.Itoa(sceneIndex)
		}

		scene := library.AddScene(name)

		for _, n := range s.Nodes {

			root, err := buildGLTFNode(doc, n, gltfLoadOptions, map[int]bool{})
			if err != nil {
				return nil, fmt.Errorf("scene %q: %w", name, err)
			}

			scene.AddRoots(root)

		}

	}

	if doc.Scene != nil {
		if *doc.Scene < 0 || *doc.Scene >= len(library.Scenes) {
			return nil, fmt.Errorf("default scene index %d out of range", *doc.Scene)
		}
		library.ExportedScene = library.Scenes[*doc.Scene]
	} else if len(library.Scenes) > 0 {
		library.ExportedScene = library.Scenes[0]
	}

	return library, nil

}

// buildGLTFNode creates the Node for the glTF node at the index given, along with its children. visiting holds the
// indices of the Node's ancestors, to catch cycles.
func buildGLTFNode(doc *gltf.Document, index int, options *GLTFLoadOptions, visiting map[int]bool) (*Node, error) {

	if index < 0 || index >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", index)
	}

	if visiting[index] {
		return nil, fmt.Errorf("node %d is its own ancestor", index)
	}

	visiting[index] = true
	defer delete(visiting, index)

	node := doc.Nodes[index]

	name := node.Name
	if name == "" {
		name = "Node" + strconv.Itoa(index)
	}

	var obj *Node

	if node.Camera != nil {
		if *node.Camera < 0 || *node.Camera >= len(doc.Cameras) {
			return nil, fmt.Errorf("node %q: camera index %d out of range", name, *node.Camera)
		}
		obj = NewCamera(name)
		obj.SetTag(options.CameraTag)
	} else {
		obj = NewNode(name)
	}

	if dataMap, err := gltfExtras(node.Extras); err != nil {
		return nil, fmt.Errorf("node %q: %w", name, err)
	} else if dataMap != nil {

		custom := map[string]interface{}{}

		for key, value := range dataMap {
			switch key {
			case "tag":
				if tag, ok := value.(string); ok {
					obj.SetTag(tag)
				}
			case "active":
				if active, ok := value.(bool); ok {
					obj.SetActive(active)
				}
			default:
				custom[key] = value
			}
		}

		if len(custom) > 0 {
			obj.SetData(custom)
		}

	}

	mtData := node.Matrix

	matrix := NewMatrix4()
	matrix.SetRow(0, Vector{float64(mtData[0]), float64(mtData[1]), float64(mtData[2])})
	matrix.SetRow(1, Vector{float64(mtData[4]), float64(mtData[5]), float64(mtData[6])})
	matrix.SetRow(2, Vector{float64(mtData[8]), float64(mtData[9]), float64(mtData[10])})
	matrix.SetRow(3, Vector{float64(mtData[12]), float64(mtData[13]), float64(mtData[14])})

	// A matrix left out of a hand-built document is all zeroes rather than identity.
	zeroMatrix := true
	for _, v := range mtData {
		if v != 0 {
			zeroMatrix = false
			break
		}
	}

	if !matrix.IsIdentity() && !zeroMatrix {

		p, s, r := matrix.Decompose()

		obj.SetLocalPositionVec(p)
		obj.SetLocalScaleVec(s)
		obj.SetLocalRotation(r)

	} else {

		obj.SetLocalPositionVec(Vector{float64(node.Translation[0]), float64(node.Translation[1]), float64(node.Translation[2])})

		scale := Vector{float64(node.Scale[0]), float64(node.Scale[1]), float64(node.Scale[2])}
		if scale.IsZero() {
			scale = Vector{1, 1, 1}
		}
		obj.SetLocalScaleVec(scale)

		obj.SetLocalRotation(NewQuaternion(float64(node.Rotation[0]), float64(node.Rotation[1]), float64(node.Rotation[2]), float64(node.Rotation[3])).Unit().ToMatrix4())

	}

	for _, childIndex := range node.Children {
		child, err := buildGLTFNode(doc, childIndex, options, visiting)
		if err != nil {
			return nil, err
		}
		obj.AddChildren(child)
	}

	return obj, nil

}

func gltfExtras(extras interface{}) (map[string]interface{}, error) {

	switch e := extras.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return e, nil
	case json.RawMessage:
		dataMap := map[string]interface{}{}
		if err := json.Unmarshal(e, &dataMap); err != nil {
			return nil, fmt.Errorf("parse extras: %w", err)
		}
		return dataMap, nil
	}

	return nil, nil

}
