package imu

// RawSample represents one scaled IMU+mag reading.
type RawSample struct {
	Gx float64 `json:"gx"` // gyro, degrees/s
	Gy float64 `json:"gy"`
	Gz float64 `json:"gz"`

	Ax float64 `json:"ax"` // accel, g
	Ay float64 `json:"ay"`
	Az float64 `json:"az"`

	Mx float64 `json:"mx"` // magnetometer, µT
	My float64 `json:"my"`
	Mz float64 `json:"mz"`

	Temperature float64 `json:"temperature"` // die temperature, °C
}

// Source is anything that can provide raw samples over time:
// the real MPU9250, the mock source, maybe a replay source from file.
type Source interface {
	Read() (RawSample, error)
}
