package orientation

// Pose is the canonical representation of orientation for your app,
// Euler angles in degrees.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Gravity is the gravity direction expressed in the sensor frame,
// unit length when derived from a unit quaternion.
type Gravity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
