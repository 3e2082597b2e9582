package tetraxr

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"go.uber.org/zap"
)

// DefaultDispatcherName is the name of the Node hosting the Dispatcher's pump.
const DefaultDispatcherName = "DeferredActionPump"

// DispatcherOptions alters how a Dispatcher finds its host Node and reports on its work.
type DispatcherOptions struct {
	Name    string      // The name of the host Node.
	Logger  *zap.Logger // nil disables logging.
	Metrics *Metrics    // nil creates unregistered collectors.
}

// DefaultDispatcherOptions creates an instance of DispatcherOptions with sensible defaults.
func DefaultDispatcherOptions() *DispatcherOptions {
	return &DispatcherOptions{
		Name: DefaultDispatcherName,
	}
}

// Dispatcher is a FIFO of deferred actions that are posted from any goroutine and run on the update goroutine,
// once per frame, by Update(). The pump lives on a host Node kept in the SceneManager's persistent Scene; while
// that Node is inactive, nothing is drained.
type Dispatcher struct {
	scenes  *SceneManager
	name    string
	logger  *zap.Logger
	metrics *Metrics

	mu         sync.Mutex
	actions    *queue.Queue
	generation uint64 // bumped by Clear; a drain stops once it changes

	host    *Node
	running atomic.Bool
}

// NewDispatcher creates a new Dispatcher over the SceneManager given. Passing nil for options uses DefaultDispatcherOptions().
func NewDispatcher(scenes *SceneManager, options *DispatcherOptions) *Dispatcher {

	if options == nil {
		options = DefaultDispatcherOptions()
	}

	d := &Dispatcher{
		scenes:  scenes,
		name:    options.Name,
		logger:  options.Logger,
		metrics: options.Metrics,
		actions: queue.New(),
	}

	if d.name == "" {
		d.name = DefaultDispatcherName
	}

	if d.logger == nil {
		d.logger = zap.NewNop()
	}

	if d.metrics == nil {
		d.metrics = NewMetrics(nil)
	}

	return d

}

// Init finds the pump's host Node by name across the loaded Scenes, or creates it. A host found below another Node
// is moved to the root, a disabled host is re-enabled, and the host is then moved into the persistent Scene.
// Init must be called from the update goroutine; Update calls it if it hasn't been called yet.
func (d *Dispatcher) Init() *Node {

	host := d.scenes.SearchTree().ByName(d.name).First()

	if host == nil {
		host = NewNode(d.name)
		d.logger.Debug("created dispatcher host", zap.String("name", d.name))
	}

	if host.Parent() != nil {
		d.logger.Warn("dispatcher host isn't a root; moving it to the root",
			zap.String("parent", host.Parent().Name()))
		host.Unparent()
	}

	if !host.Active() {
		d.logger.Warn("dispatcher host was disabled; re-enabling it")
		host.SetActive(true)
	}

	d.scenes.DontDestroyOnLoad(host)

	d.host = host
	d.running.Store(host.ActiveInHierarchy())

	return host

}

// Host returns the pump's host Node, or nil before Init.
func (d *Dispatcher) Host() *Node {
	return d.host
}

// Post appends the action given to the end of the queue. It is safe to call from any goroutine, including from within
// an action being run by Update. Nil actions are ignored.
func (d *Dispatcher) Post(action func()) {

	if action == nil {
		return
	}

	d.mu.Lock()
	d.actions.Add(action)
	d.metrics.QueueDepth.Set(float64(d.actions.Length()))
	d.mu.Unlock()

}

// Len returns the number of actions waiting to be run.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.actions.Length()
}

// Update runs the actions that were queued when it was called, in the order they were posted, and returns how many
// ran. Actions posted while Update is running wait for the next call. If the queue is cleared while Update is
// running, whether by an action or by another goroutine, the drain stops there. A panicking action is not recovered;
// actions behind it stay queued.
func (d *Dispatcher) Update() int {

	if d.host == nil {
		d.Init()
	}

	if !d.host.Valid() || !d.host.ActiveInHierarchy() {
		d.running.Store(false)
		return 0
	}

	d.running.Store(true)

	d.mu.Lock()
	count := d.actions.Length()
	generation := d.generation
	d.mu.Unlock()

	ran := 0

	for ran < count {

		d.mu.Lock()

		if d.generation != generation || d.actions.Length() == 0 {
			d.mu.Unlock()
			break
		}

		action := d.actions.Remove().(func())
		d.metrics.QueueDepth.Set(float64(d.actions.Length()))
		d.mu.Unlock()

		ran++
		action()
		d.metrics.ActionsExecuted.Inc()

	}

	return ran

}

// Running returns whether the pump's host Node was active as of the last Init or Update. It is safe to call from any goroutine.
func (d *Dispatcher) Running() bool {
	return d.running.Load()
}

const (
	callPending int32 = iota
	callTaken
	callAbandoned
)

// Call posts fn and blocks until it has run on the update goroutine, returning nil, or until ctx is done before the
// pump reaches fn, in which case fn is skipped and ctx's error is returned. Once the pump has started fn, Call waits
// for it to return even if ctx ends meanwhile, so a non-nil error always means fn never ran.
//
// Call must not be given a context that never ends when called from the update goroutine: the pump can't drain while
// Call waits on it, so Call would block forever.
func (d *Dispatcher) Call(ctx context.Context, fn func()) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	var state atomic.Int32

	d.Post(func() {
		defer close(done)
		if ctx.Err() != nil || !state.CompareAndSwap(callPending, callTaken) {
			return
		}
		fn()
	})

	select {
	case <-done:
		if state.Load() == callTaken {
			return nil
		}
		return ctx.Err()
	case <-ctx.Done():
		if state.CompareAndSwap(callPending, callAbandoned) {
			return ctx.Err()
		}
		<-done
		return nil
	}

}

// Clear drops every queued action without running it. It is safe to call from any goroutine, including from within
// an action being run by Update.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	d.actions = queue.New()
	d.generation++
	d.metrics.QueueDepth.Set(0)
	d.mu.Unlock()
}

// Reset clears the queue and forgets the host Node; the next Update looks it up again.
func (d *Dispatcher) Reset() {
	d.Clear()
	d.host = nil
	d.running.Store(false)
}
