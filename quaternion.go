package tetraxr

import "math"

// Quaternion represents a rotation as a unit quaternion, the form rotations take when loaded from glTF files.
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion returns a new Quaternion with the given components.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionFromAxisAngle returns a Quaternion rotating by angle (in radians) around the axis given.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {
	axis = axis.Unit()
	s := math.Sin(angle / 2)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(angle / 2)}
}

// Dot returns the dot product of the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Unit returns a normalized copy of the Quaternion.
func (quat Quaternion) Unit() Quaternion {
	l := math.Sqrt(quat.Dot(quat))
	if l < 1e-8 {
		return Quaternion{W: 1}
	}
	return Quaternion{quat.X / l, quat.Y / l, quat.Z / l, quat.W / l}
}

// Equals returns true if both Quaternions represent the same rotation (q and -q are considered equal).
func (quat Quaternion) Equals(other Quaternion) bool {
	return math.Abs(math.Abs(quat.Unit().Dot(other.Unit()))-1) < 1e-6
}

// ToMatrix4 returns a rotation Matrix4 for the Quaternion.
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Unit()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y*y+z*z)
	mat[0][1] = 2 * (x*y + z*w)
	mat[0][2] = 2 * (x*z - y*w)

	mat[1][0] = 2 * (x*y - z*w)
	mat[1][1] = 1 - 2*(x*x+z*z)
	mat[1][2] = 2 * (y*z + x*w)

	mat[2][0] = 2 * (x*z + y*w)
	mat[2][1] = 2 * (y*z - x*w)
	mat[2][2] = 1 - 2*(x*x+y*y)

	return mat

}

// ToQuaternion returns a Quaternion representative of the Matrix4's rotation (assuming it is just a purely rotational Matrix4).
func (matrix Matrix4) ToQuaternion() Quaternion {

	trace := matrix[0][0] + matrix[1][1] + matrix[2][2]

	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		return Quaternion{
			X: (matrix[1][2] - matrix[2][1]) / s,
			Y: (matrix[2][0] - matrix[0][2]) / s,
			Z: (matrix[0][1] - matrix[1][0]) / s,
			W: s / 4,
		}.Unit()
	case matrix[0][0] > matrix[1][1] && matrix[0][0] > matrix[2][2]:
		s := math.Sqrt(1+matrix[0][0]-matrix[1][1]-matrix[2][2]) * 2
		return Quaternion{
			X: s / 4,
			Y: (matrix[0][1] + matrix[1][0]) / s,
			Z: (matrix[2][0] + matrix[0][2]) / s,
			W: (matrix[1][2] - matrix[2][1]) / s,
		}.Unit()
	case matrix[1][1] > matrix[2][2]:
		s := math.Sqrt(1+matrix[1][1]-matrix[0][0]-matrix[2][2]) * 2
		return Quaternion{
			X: (matrix[0][1] + matrix[1][0]) / s,
			Y: s / 4,
			Z: (matrix[1][2] + matrix[2][1]) / s,
			W: (matrix[2][0] - matrix[0][2]) / s,
		}.Unit()
	default:
		s := math.Sqrt(1+matrix[2][2]-matrix[0][0]-matrix[1][1]) * 2
		return Quaternion{
			X: (matrix[2][0] + matrix[0][2]) / s,
			Y: (matrix[1][2] + matrix[2][1]) / s,
			Z: s / 4,
			W: (matrix[0][1] - matrix[1][0]) / s,
		}.Unit()
	}

}
