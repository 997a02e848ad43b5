package activity

import (
	"github.com/relabs-tech/activity_recognizer/internal/imu"
	"github.com/relabs-tech/activity_recognizer/internal/orientation"
)

// FeatureLen is the fixed width of the classifier input vector.
const FeatureLen = 16

// FeatureVector is the fixed-order classifier input:
//
//	[roll, pitch, yaw, gravity_x, gravity_y, gravity_z,
//	 gx, gy, gz, ax, ay, az, mx, my, mz, temperature]
//
// Every model was trained against this layout. Reordering breaks them.
type FeatureVector [FeatureLen]float64

// Features assembles the feature vector from the filter's derived pose and
// gravity plus the raw sample the filter just consumed.
func Features(pose orientation.Pose, grav orientation.Gravity, s imu.RawSample) FeatureVector {
	return FeatureVector{
		pose.Roll, pose.Pitch, pose.Yaw,
		grav.X, grav.Y, grav.Z,
		s.Gx, s.Gy, s.Gz,
		s.Ax, s.Ay, s.Az,
		s.Mx, s.My, s.Mz,
		s.Temperature,
	}
}
