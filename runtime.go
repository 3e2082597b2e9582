package tetraxr

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Runtime owns one SceneManager along with the Playspace, Dispatcher, and Teleporter built over it. A host application
// creates one Runtime, calls Init once, and then calls Tick once per frame from its update goroutine.
type Runtime struct {
	Config     Config
	Scenes     *SceneManager
	Playspace  *Playspace
	Dispatcher *Dispatcher
	Teleporter *Teleporter
	Metrics    *Metrics

	logger *zap.Logger
}

// NewRuntime creates a new Runtime from the Config given. A nil logger disables logging, and a nil Registerer
// leaves the Runtime's metrics unregistered.
func NewRuntime(cfg Config, logger *zap.Logger, reg prometheus.Registerer) (*Runtime, error) {

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new runtime: %w", err)
	}

	easing, err := cfg.Teleport.EasingFunc()
	if err != nil {
		return nil, fmt.Errorf("new runtime: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := NewMetrics(reg)

	scenes := NewSceneManager(logger.Named("scenes"))
	scenes.MainCameraTag = cfg.Camera.Tag

	playspace := NewPlayspace(scenes, &PlayspaceOptions{
		Name:    cfg.Playspace.Name,
		Logger:  logger.Named("playspace"),
		Metrics: metrics,
	})

	dispatcher := NewDispatcher(scenes, &DispatcherOptions{
		Name:    cfg.Dispatcher.Name,
		Logger:  logger.Named("dispatcher"),
		Metrics: metrics,
	})

	teleporter := NewTeleporter(playspace, TeleportOptions{
		Duration: float32(cfg.Teleport.Duration.Seconds()),
		Easing:   easing,
	})

	return &Runtime{
		Config:     cfg,
		Scenes:     scenes,
		Playspace:  playspace,
		Dispatcher: dispatcher,
		Teleporter: teleporter,
		Metrics:    metrics,
		logger:     logger,
	}, nil

}

// Init subscribes the Playspace to scene transitions and sets up the Dispatcher's host Node.
func (rt *Runtime) Init() {
	rt.Playspace.Init()
	rt.Dispatcher.Init()
	rt.logger.Info("runtime initialized",
		zap.String("playspace", rt.Config.Playspace.Name),
		zap.String("dispatcher", rt.Config.Dispatcher.Name))
}

// Reset returns the Runtime to a clean state: every Scene is unloaded, the Playspace forgets its Node,
// queued actions are dropped, and any teleport in progress is cancelled. Init is called again afterwards.
func (rt *Runtime) Reset() {
	rt.Teleporter.Cancel()
	rt.Dispatcher.Reset()
	rt.Playspace.Close()
	rt.Scenes.UnloadAll()
	rt.Playspace.Reset()
	rt.Init()
}

// Tick advances the Runtime by one frame of dt seconds: deferred actions are run first, then the teleport in progress is advanced.
func (rt *Runtime) Tick(dt float64) {
	rt.Dispatcher.Update()
	rt.Teleporter.Update(float32(dt))
}

// TeleportTo asks the Teleporter to move the playspace to the world position given. It is safe to call from any goroutine;
// the teleport starts on the next Tick.
func (rt *Runtime) TeleportTo(target Vector) {
	rt.Dispatcher.Post(func() {
		rt.Teleporter.TeleportTo(target)
	})
}

// LoadGLTFFile loads the glTF file at path and loads its exported scene with the LoadMode given.
func (rt *Runtime) LoadGLTFFile(path string, mode LoadMode) (*Library, error) {

	lib, err := LoadGLTFFile(path, &GLTFLoadOptions{CameraTag: rt.Config.Camera.Tag})
	if err != nil {
		return nil, err
	}

	if lib.ExportedScene == nil {
		return nil, fmt.Errorf("load %s: no scenes", path)
	}

	rt.Scenes.LoadScene(lib.ExportedScene, mode)
	return lib, nil

}

// HierarchyAsString returns the hierarchy of every loaded Scene.
func (rt *Runtime) HierarchyAsString() string {
	return rt.Scenes.HierarchyAsString()
}
