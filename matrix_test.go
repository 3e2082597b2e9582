package tetraxr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkMatrixInversion(b *testing.B) {

	b.ReportAllocs()

	mat := NewMatrix4Rotate(0, 1, 0.2, 0.24).Mult(NewMatrix4Translate(1, 4, -12))

	for i := 0; i < b.N; i++ {
		mat.Inverted()
	}

}

func TestMatrixInversion(t *testing.T) {

	matrices := []Matrix4{
		NewMatrix4Rotate(0, 1, 0, 0.1),
		NewMatrix4Translate(-10, 0.1, 3232.1976),
		NewMatrix4Scale(10, 0.1, -0.45),
		NewMatrix4Translate(-1, -1, -1).Mult(NewMatrix4Rotate(1, 0, 0.1, 0.334)).Mult(NewMatrix4Scale(10, 1, 2)),
	}

	for i, mat := range matrices {
		// A matrix multiplied by its inverse gives the identity matrix.
		assert.True(t, mat.Mult(mat.Inverted()).IsIdentity(), "matrix #%d * matrix.Inverted() is not identity", i)
	}

}

func TestMatrixRotateCounterClockwise(t *testing.T) {

	rot := NewMatrix4Rotate(0, 1, 0, math.Pi/2)

	assert.True(t, rot.MultVec(VecX).Equals(NewVector(0, 0, -1)), rot.MultVec(VecX).String())
	assert.True(t, rot.MultVec(VecZ).Equals(NewVector(1, 0, 0)), rot.MultVec(VecZ).String())
	assert.True(t, rot.MultVec(VecY).Equals(VecY))

	// Directions ignore translation.
	moved := rot.Mult(NewMatrix4Translate(5, 5, 5))
	assert.True(t, moved.MultVecDir(VecX).Equals(NewVector(0, 0, -1)))
	assert.True(t, moved.MultVec(VecX).Equals(NewVector(5, 5, 4)))

}

func TestMatrixDecompose(t *testing.T) {

	rot := NewMatrix4Rotate(1, 1, 0, 0.7)
	mat := NewMatrix4Scale(2, 3, 4).Mult(rot).Mult(NewMatrix4Translate(1, -2, 3))

	position, scale, rotation := mat.Decompose()

	assert.True(t, position.Equals(NewVector(1, -2, 3)), position.String())
	assert.True(t, scale.Equals(NewVector(2, 3, 4)), scale.String())
	assert.True(t, rotation.Equals(rot), rotation.String())

}

func TestQuaternionMatchesAxisAngle(t *testing.T) {

	axes := []Vector{VecX, VecY, VecZ, NewVector(1, 2, -3)}
	angles := []float64{0, 0.3, math.Pi / 2, 2.5, math.Pi}

	for _, axis := range axes {
		for _, angle := range angles {

			quat := NewQuaternionFromAxisAngle(axis, angle)
			mat := NewMatrix4Rotate(axis.X, axis.Y, axis.Z, angle)

			require.True(t, quat.ToMatrix4().Equals(mat), "axis %s angle %f", axis, angle)
			require.True(t, mat.ToQuaternion().Equals(quat), "axis %s angle %f: got %v", axis, angle, mat.ToQuaternion())

		}
	}

}

func TestQuaternionZeroIsIdentity(t *testing.T) {
	assert.True(t, Quaternion{}.ToMatrix4().IsIdentity())
	assert.True(t, NewMatrix4().ToQuaternion().Equals(NewQuaternion(0, 0, 0, 1)))
}
