package orientation

import (
	"math"
)

// Quaternion is a rotation quaternion (w, x, y, z). The filter keeps it at
// unit norm after every successful update.
type Quaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Identity returns the no-rotation quaternion (1, 0, 0, 0).
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// Norm returns the Euclidean norm of q.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns q scaled to unit length. The division is not guarded:
// callers must not pass a zero quaternion.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}
