package tetraxr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestTeleporterTweensPlayspace(t *testing.T) {

	ps := NewPlayspace(NewSceneManager(nil), nil)
	tp := NewTeleporter(ps, TeleportOptions{Duration: 1, Easing: ease.Linear})

	arrivals := []Vector{}
	tp.OnArrive = func(target Vector) { arrivals = append(arrivals, target) }

	tp.TeleportTo(NewVector(10, 0, -4))
	require.True(t, tp.Busy())

	tp.Update(0.5)
	assert.InDelta(t, 5, ps.Position().X, 1e-4)
	assert.InDelta(t, -2, ps.Position().Z, 1e-4)
	assert.Empty(t, arrivals)

	tp.Update(0.6)
	assert.False(t, tp.Busy())
	assert.True(t, ps.Position().Equals(NewVector(10, 0, -4)), ps.Position().String())
	assert.Equal(t, []Vector{NewVector(10, 0, -4)}, arrivals)

	// Updating while idle does nothing.
	tp.Update(1)
	assert.Len(t, arrivals, 1)

}

func TestTeleporterInstant(t *testing.T) {

	ps := NewPlayspace(NewSceneManager(nil), nil)
	tp := NewTeleporter(ps, TeleportOptions{})

	tp.TeleportTo(NewVector(1, 2, 3))

	assert.False(t, tp.Busy())
	assert.True(t, ps.Position().Equals(NewVector(1, 2, 3)))
	assert.True(t, tp.Target().Equals(NewVector(1, 2, 3)))

}

func TestTeleporterCancelAndRetarget(t *testing.T) {

	ps := NewPlayspace(NewSceneManager(nil), nil)
	tp := NewTeleporter(ps, TeleportOptions{Duration: 2, Easing: ease.InOutQuad})

	tp.TeleportTo(NewVector(8, 0, 0))
	tp.Update(1)
	midway := ps.Position()
	assert.InDelta(t, 4, midway.X, 1e-4, "in-out-quad is halfway at half time")

	tp.Cancel()
	tp.Update(1)
	assert.False(t, tp.Busy())
	assert.True(t, ps.Position().Equals(midway), "cancelling leaves the playspace where it was")

	// A new teleport starts from where the playspace is now.
	tp.TeleportTo(NewVector(0, 0, 0))
	tp.Update(1)
	assert.InDelta(t, midway.X/2, ps.Position().X, 1e-4)

}
