package tetraxr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type sceneEvent struct {
	kind  string
	scene string
	roots int
}

func recordSceneEvents(sm *SceneManager) (*[]sceneEvent, func()) {
	events := &[]sceneEvent{}
	unsub := sm.Subscribe(SceneCallbacks{
		OnLoaded: func(scene *Scene, roots NodeFilter) {
			*events = append(*events, sceneEvent{"loaded", scene.Name, len(roots)})
		},
		OnUnloaded: func(scene *Scene) {
			*events = append(*events, sceneEvent{"unloaded", scene.Name, 0})
		},
		OnOpened: func(scene *Scene, roots NodeFilter) {
			*events = append(*events, sceneEvent{"opened", scene.Name, len(roots)})
		},
		OnClosed: func(scene *Scene) {
			*events = append(*events, sceneEvent{"closed", scene.Name, 0})
		},
	})
	return events, unsub
}

func TestSceneManagerLoadModes(t *testing.T) {

	sm := NewSceneManager(nil)
	events, _ := recordSceneEvents(sm)

	a := NewScene("a")
	a.AddRoots(NewNode("a1"), NewNode("a2"))
	b := NewScene("b")
	b.AddRoots(NewNode("b1"))
	c := NewScene("c")

	sm.LoadScene(a, LoadSingle)
	sm.LoadScene(b, LoadAdditive)
	assert.Equal(t, []*Scene{a, b, sm.Persistent()}, sm.Scenes())
	assert.Same(t, a, sm.ActiveScene())
	assert.Len(t, sm.Roots(), 3)

	sm.LoadScene(c, LoadSingle)
	assert.Equal(t, []*Scene{c, sm.Persistent()}, sm.Scenes())
	assert.False(t, a.Loaded())
	assert.False(t, b.Loaded())

	assert.Equal(t, []sceneEvent{
		{"loaded", "a", 2},
		{"loaded", "b", 1},
		{"unloaded", "a", 0},
		{"unloaded", "b", 0},
		{"loaded", "c", 0},
	}, *events)

}

func TestSceneManagerEditorTransitions(t *testing.T) {

	sm := NewSceneManager(nil)
	events, unsub := recordSceneEvents(sm)

	a := NewScene("a")
	a.AddRoots(NewNode("a1"))

	sm.OpenScene(a)
	assert.True(t, a.Loaded())
	sm.CloseScene(a)
	assert.False(t, a.Loaded())

	unsub()
	sm.OpenScene(a)

	assert.Equal(t, []sceneEvent{
		{"opened", "a", 1},
		{"closed", "a", 0},
	}, *events)

}

func TestSceneManagerIgnoresRedundantTransitions(t *testing.T) {

	core, logs := observer.New(zapcore.WarnLevel)
	sm := NewSceneManager(zap.New(core))
	events, _ := recordSceneEvents(sm)

	a := NewScene("a")
	sm.LoadScene(a, LoadAdditive)
	sm.LoadScene(a, LoadAdditive)
	sm.LoadScene(sm.Persistent(), LoadAdditive)
	sm.UnloadScene(sm.Persistent())
	sm.UnloadScene(NewScene("never loaded"))

	assert.Len(t, *events, 1)
	assert.Equal(t, 2, logs.Len())
	assert.True(t, sm.Persistent().Loaded())

}

func TestSceneManagerMainCamera(t *testing.T) {

	sm := NewSceneManager(nil)

	a := NewScene("a")
	rig := NewNode("rig")
	other := NewCamera("other")
	main := NewCamera("main")
	main.SetTag(DefaultMainCameraTag)
	rig.AddChildren(other, main)
	a.AddRoots(rig)

	assert.Nil(t, sm.MainCamera(), "unloaded scenes aren't searched")

	sm.LoadScene(a, LoadAdditive)
	assert.Same(t, main, sm.MainCamera())

	rig.SetActive(false)
	assert.Nil(t, sm.MainCamera())

	rig.SetActive(true)
	sm.MainCameraTag = "Other"
	assert.Nil(t, sm.MainCamera())

}

func TestSceneManagerDontDestroyOnLoad(t *testing.T) {

	core, logs := observer.New(zapcore.WarnLevel)
	sm := NewSceneManager(zap.New(core))

	a := NewScene("a")
	keep := NewNode("keep")
	child := NewNode("child")
	keep.AddChildren(child)
	a.AddRoots(keep)
	sm.LoadScene(a, LoadSingle)

	assert.False(t, sm.DontDestroyOnLoad(child))
	require.Equal(t, 1, logs.Len())

	assert.True(t, sm.DontDestroyOnLoad(keep))
	assert.Same(t, sm.Persistent(), keep.Scene())
	assert.Empty(t, a.Roots())

	sm.LoadScene(NewScene("b"), LoadSingle)
	assert.True(t, child.Valid())
	assert.Contains(t, sm.SearchTree(), child)

}
