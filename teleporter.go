package tetraxr

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TeleportOptions alters how a Teleporter moves the playspace.
type TeleportOptions struct {
	Duration float32        // How long a teleport takes, in seconds. 0 or less moves the playspace instantly.
	Easing   ease.TweenFunc // The easing applied over the duration; nil means linear.
}

// Teleporter moves the Playspace, and so the whole camera rig, to a world position over time.
// Like the Playspace, it belongs to the update goroutine; other goroutines reach it through a Dispatcher.
type Teleporter struct {
	playspace *Playspace
	options   TeleportOptions

	tween    *gween.Tween
	from, to Vector

	// OnArrive, if set, is called when a teleport reaches its target.
	OnArrive func(target Vector)
}

// NewTeleporter creates a new Teleporter for the Playspace given.
func NewTeleporter(playspace *Playspace, options TeleportOptions) *Teleporter {
	if options.Easing == nil {
		options.Easing = ease.Linear
	}
	return &Teleporter{
		playspace: playspace,
		options:   options,
	}
}

// TeleportTo starts moving the playspace towards the world position given, replacing any teleport in progress.
func (tp *Teleporter) TeleportTo(target Vector) {

	tp.from = tp.playspace.Position()
	tp.to = target

	if tp.options.Duration <= 0 {
		tp.tween = nil
		tp.arrive()
		return
	}

	tp.tween = gween.New(0, 1, tp.options.Duration, tp.options.Easing)

}

// Update advances the teleport in progress by dt seconds.
func (tp *Teleporter) Update(dt float32) {

	if tp.tween == nil {
		return
	}

	progress, finished := tp.tween.Update(dt)

	if finished {
		tp.tween = nil
		tp.arrive()
		return
	}

	tp.playspace.SetPosition(tp.from.Lerp(tp.to, float64(progress)))

}

func (tp *Teleporter) arrive() {
	tp.playspace.SetPosition(tp.to)
	if tp.OnArrive != nil {
		tp.OnArrive(tp.to)
	}
}

// Busy returns whether a teleport is in progress.
func (tp *Teleporter) Busy() bool {
	return tp.tween != nil
}

// Target returns the target of the last teleport.
func (tp *Teleporter) Target() Vector {
	return tp.to
}

// Cancel stops the teleport in progress, leaving the playspace where it is.
func (tp *Teleporter) Cancel() {
	tp.tween = nil
}
