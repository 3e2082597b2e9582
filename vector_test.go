package tetraxr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkAllocateVectorStructs(b *testing.B) {

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		vecs := make([]Vector, 0, 100)
		vecs = append(vecs, Vector{0, 0, 0})
		_ = vecs
	}

}

func BenchmarkMathInternalVector(b *testing.B) {

	b.StopTimer()

	maxSize := 1200

	vecs := make([]Vector, 0, maxSize)

	for i := 0; i < maxSize; i++ {
		vecs = append(vecs, Vector{X: rand.Float64(), Y: rand.Float64(), Z: rand.Float64()})
	}

	b.ReportAllocs()
	b.StartTimer()

	// Main point of benchmarking
	for z := 0; z < b.N; z++ {
		for i := 0; i < maxSize-1; i++ {
			vecs[i] = vecs[i].Add(vecs[i+1]).Cross(vecs[i+1])
		}
	}

}

func TestVectorCross(t *testing.T) {
	assert.True(t, VecX.Cross(VecY).Equals(VecZ))
	assert.True(t, VecY.Cross(VecZ).Equals(VecX))
	assert.True(t, VecZ.Cross(VecX).Equals(VecY))
}

func TestVectorUnit(t *testing.T) {
	assert.InDelta(t, 1, NewVector(3, -4, 12).Unit().Magnitude(), 1e-12)
	assert.True(t, NewVectorZero().Unit().IsZero(), "the zero vector stays zero")
}

func TestVectorLerp(t *testing.T) {
	a := NewVector(0, 10, -4)
	b := NewVector(10, 0, 4)
	assert.True(t, a.Lerp(b, 0).Equals(a))
	assert.True(t, a.Lerp(b, 1).Equals(b))
	assert.True(t, a.Lerp(b, 0.5).Equals(NewVector(5, 5, 0)))
}

func TestVectorRotate(t *testing.T) {
	rotated := NewVector(0, 0, 1).Rotate(VecX, math.Pi/2)
	assert.True(t, rotated.Equals(NewVector(0, -1, 0)), rotated.String())
}

func TestVectorString(t *testing.T) {
	assert.Equal(t, "[1.00, -2.50, 0.33]", NewVector(1, -2.5, 1.0/3).String())
}
