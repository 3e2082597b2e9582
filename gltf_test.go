package tetraxr

import (
	"math"
	"os"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rigPath = "./examples/playspace/rig.gltf"

func BenchmarkLoadGLTFData(b *testing.B) {
	b.StopTimer()
	data, err := os.ReadFile(rigPath)
	if err != nil {
		b.Fatal(err)
	}
	b.StartTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		_, err = LoadGLTFData(data, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func TestLoadGLTFFile(t *testing.T) {

	lib, err := LoadGLTFFile(rigPath, nil)
	require.NoError(t, err)

	require.Len(t, lib.Scenes, 2)
	lobby := lib.FindScene("Lobby")
	arena := lib.FindScene("Arena")
	require.NotNil(t, lobby)
	require.NotNil(t, arena)
	assert.Same(t, lobby, lib.ExportedScene)
	assert.Nil(t, lib.FindScene("Nowhere"))

	assert.False(t, lobby.Loaded(), "loaded libraries hand out unloaded scenes")

	lobbyRoots := lobby.Roots()
	require.Len(t, lobbyRoots, 2)
	assert.Equal(t, DefaultPlayspaceName, lobbyRoots[0].Name())

	camera := lobbyRoots[0].Get("Camera")
	require.NotNil(t, camera)
	assert.True(t, camera.Type().Is(NodeTypeCamera))
	assert.Equal(t, DefaultMainCameraTag, camera.Tag())
	assert.True(t, camera.WorldPosition().Equals(NewVector(0, 1.6, 0)), camera.WorldPosition().String())

	floor := lobby.FindRoot("Floor")
	require.NotNil(t, floor)
	assert.Equal(t, "ground", floor.Tag())
	assert.True(t, floor.LocalScale().Equals(NewVector(10, 1, 10)))

	arenaCamera := arena.SearchTree().ByType(NodeTypeCamera).First()
	require.NotNil(t, arenaCamera)
	assert.Equal(t, "ArenaCamera", arenaCamera.Tag(), "a tag property overrides the camera tag")
	assert.True(t, arenaCamera.WorldPosition().Equals(NewVector(0, 1.6, 20)))
	assert.NotSame(t, camera, arenaCamera)

	pillar := lib.FindNode("Pillar")
	require.NotNil(t, pillar)
	assert.False(t, pillar.Active())
	assert.Equal(t, map[string]interface{}{"hp": 3.0}, pillar.Data())
	assert.True(t, pillar.LocalRotation().Equals(NewMatrix4Rotate(0, 1, 0, math.Pi/4)), pillar.LocalRotation().String())

}

func TestLoadGLTFFileMissing(t *testing.T) {
	_, err := LoadGLTFFile("./does-not-exist.gltf", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadGLTFDataMalformed(t *testing.T) {
	_, err := LoadGLTFData([]byte("{ not gltf"), nil)
	assert.Error(t, err)
}

func TestLoadGLTFDocument(t *testing.T) {

	doc := &gltf.Document{
		Scene: gltf.Index(0),
		Scenes: []*gltf.Scene{
			{Name: "Main", Nodes: []int{0}},
			{Nodes: []int{0}},
		},
		Nodes: []*gltf.Node{
			{
				Name:     "Rig",
				Children: []int{1},
				Matrix:   [16]float64{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 1, 2, 3, 1},
			},
			{
				Name:        "Eye",
				Camera:      gltf.Index(0),
				Translation: [3]float64{0, 1, 0},
				Extras:      map[string]interface{}{"active": false, "tag": "Player"},
			},
		},
		Cameras: []*gltf.Camera{{Name: "Eye"}},
	}

	lib, err := LoadGLTFDocument(doc, &GLTFLoadOptions{CameraTag: "Head"})
	require.NoError(t, err)

	require.Len(t, lib.Scenes, 2)
	assert.Equal(t, "Scene1", lib.Scenes[1].Name, "unnamed scenes are named by index")
	assert.Same(t, lib.Scenes[0], lib.ExportedScene)

	rig := lib.Scenes[0].FindRoot("Rig")
	require.NotNil(t, rig)
	assert.True(t, rig.LocalPosition().Equals(NewVector(1, 2, 3)), rig.LocalPosition().String())
	assert.True(t, rig.LocalScale().Equals(NewVector(2, 2, 2)), rig.LocalScale().String())
	assert.True(t, rig.LocalRotation().IsIdentity())

	eye := rig.Get("Eye")
	require.NotNil(t, eye)
	assert.Equal(t, "Player", eye.Tag())
	assert.False(t, eye.Active())
	assert.Nil(t, eye.Data())
	assert.True(t, eye.LocalScale().Equals(NewVector(1, 1, 1)), "unset scales count as 1")
	assert.True(t, eye.LocalRotation().IsIdentity(), "unset rotations count as identity")
	assert.True(t, eye.WorldPosition().Equals(NewVector(1, 4, 3)), eye.WorldPosition().String())

	// Every scene gets its own copy of a shared node.
	assert.NotSame(t, rig, lib.Scenes[1].FindRoot("Rig"))

}

func TestLoadGLTFDocumentErrors(t *testing.T) {

	cases := map[string]*gltf.Document{
		"child index": {
			Scenes: []*gltf.Scene{{Nodes: []int{0}}},
			Nodes:  []*gltf.Node{{Name: "a", Children: []int{4}}},
		},
		"scene node index": {
			Scenes: []*gltf.Scene{{Nodes: []int{1}}},
			Nodes:  []*gltf.Node{{Name: "a"}},
		},
		"cycle": {
			Scenes: []*gltf.Scene{{Nodes: []int{0}}},
			Nodes:  []*gltf.Node{{Name: "a", Children: []int{1}}, {Name: "b", Children: []int{0}}},
		},
		"camera index": {
			Scenes: []*gltf.Scene{{Nodes: []int{0}}},
			Nodes:  []*gltf.Node{{Name: "a", Camera: gltf.Index(2)}},
		},
		"default scene": {
			Scene:  gltf.Index(3),
			Scenes: []*gltf.Scene{{}},
		},
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadGLTFDocument(doc, nil)
			assert.Error(t, err)
		})
	}

}
