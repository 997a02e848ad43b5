// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"
)

// DefaultBeta is the filter gain used when nothing else is configured.
// Higher values track the accelerometer faster at the cost of passing
// more linear-acceleration noise into the attitude.
const DefaultBeta = 0.1

// Filter is the IMU-only variant of Madgwick's gradient-descent orientation
// filter: gyro integration with an accelerometer-based gravity correction,
// no magnetic heading. Yaw therefore drifts; roll and pitch are bounded.
//
// A Filter is owned by a single goroutine. It is not safe for concurrent use.
type Filter struct {
	beta float64
	q    Quaternion
}

// NewFilter returns a filter at the identity attitude with the given gain.
func NewFilter(beta float64) *Filter {
	return &Filter{beta: beta, q: Identity()}
}

// Quaternion returns the current attitude estimate.
func (f *Filter) Quaternion() Quaternion {
	return f.q
}

// Update fuses one gyroscope reading (degrees/s) and one accelerometer
// reading taken dt seconds after the previous sample.
//
// A zero-magnitude accelerometer reading or corrective gradient is a no-op:
// the attitude is left unchanged rather than divided by zero. The final
// renormalization is intentionally unguarded; the two earlier no-op paths
// cover every input that can collapse the quaternion under real sensor data.
func (f *Filter) Update(gx, gy, gz, ax, ay, az, dt float64) {
	// Gyroscope degrees/s to radians/s.
	gx *= math.Pi / 180.0
	gy *= math.Pi / 180.0
	gz *= math.Pi / 180.0

	q0, q1, q2, q3 := f.q.W, f.q.X, f.q.Y, f.q.Z

	// Normalize accelerometer measurement.
	norm := math.Sqrt(ax*ax + ay*ay + az*az)
	if norm == 0 {
		return
	}
	ax /= norm
	ay /= norm
	az /= norm

	// Auxiliary variables to avoid repeated arithmetic.
	_2q0 := 2.0 * q0
	_2q1 := 2.0 * q1
	_2q2 := 2.0 * q2
	_2q3 := 2.0 * q3

	// Gradient descent corrective step against the gravity objective.
	f1 := _2q1*q3 - _2q0*q2 - ax
	f2 := _2q0*q1 + _2q2*q3 - ay
	f3 := 1.0 - _2q1*q1 - _2q2*q2 - az

	s0 := -_2q2*f1 + _2q1*f3
	s1 := _2q3*f1 + _2q0*f3 - 4.0*q1*f2
	s2 := -_2q0*f1 + _2q3*f2 - 4.0*q2*f3
	s3 := _2q1*f1 + _2q2*f2

	norm = math.Sqrt(s0*s0 + s1*s1 + s2*s2 + s3*s3)
	if norm == 0 {
		return
	}
	s0 /= norm
	s1 /= norm
	s2 /= norm
	s3 /= norm

	// Rate of change of quaternion: gyro term minus gain-scaled correction.
	qDot0 := 0.5*(-q1*gx-q2*gy-q3*gz) - f.beta*s0
	qDot1 := 0.5*(q0*gx+q2*gz-q3*gy) - f.beta*s1
	qDot2 := 0.5*(q0*gy-q1*gz+q3*gx) - f.beta*s2
	qDot3 := 0.5*(q0*gz+q1*gy-q2*gx) - f.beta*s3

	// Integrate and renormalize.
	q0 += qDot0 * dt
	q1 += qDot1 * dt
	q2 += qDot2 * dt
	q3 += qDot3 * dt

	f.q = Quaternion{W: q0, X: q1, Y: q2, Z: q3}.Normalized()
}

// Euler converts the current quaternion to roll/pitch/yaw in degrees.
// Pitch saturates at exactly ±90° when the arcsine argument leaves [-1, 1]
// (gimbal lock).
func (f *Filter) Euler() Pose {
	q0, q1, q2, q3 := f.q.W, f.q.X, f.q.Y, f.q.Z

	sinrCosp := 2.0 * (q0*q1 + q2*q3)
	cosrCosp := 1.0 - 2.0*(q1*q1+q2*q2)
	roll := math.Atan2(sinrCosp, cosrCosp) * 180.0 / math.Pi

	var pitch float64
	sinp := 2.0 * (q0*q2 - q3*q1)
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp) * 180.0 / math.Pi
	} else {
		pitch = math.Asin(sinp) * 180.0 / math.Pi
	}

	sinyCosp := 2.0 * (q0*q3 + q1*q2)
	cosyCosp := 1.0 - 2.0*(q2*q2+q3*q3)
	yaw := math.Atan2(sinyCosp, cosyCosp) * 180.0 / math.Pi

	return Pose{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// GravityVector returns the gravity direction expressed in the sensor frame,
// i.e. the global [0, 0, 1] gravity rotated by the current quaternion.
func (f *Filter) GravityVector() Gravity {
	q0, q1, q2, q3 := f.q.W, f.q.X, f.q.Y, f.q.Z
	return Gravity{
		X: 2.0 * (q1*q3 - q0*q2),
		Y: 2.0 * (q0*q1 + q2*q3),
		Z: q0*q0 - q1*q1 - q2*q2 + q3*q3,
	}
}
