// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"math"
	"time"
)

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock sample source that generates smooth changing
// values resembling a gently moving wearer. Useful without hardware.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) Read() (RawSample, error) {
	elapsed := time.Since(m.start).Seconds()

	return RawSample{
		Gx: 8 * math.Sin(elapsed*2.1),
		Gy: 6 * math.Cos(elapsed*1.7),
		Gz: 4 * math.Sin(elapsed*0.9),

		Ax: 0.05 * math.Sin(elapsed*2.3),
		Ay: 0.05 * math.Cos(elapsed*1.3),
		Az: 1.0 + 0.02*math.Sin(elapsed*3.1),

		Mx: 22 + 2*math.Sin(elapsed*0.2),
		My: -4 + 2*math.Cos(elapsed*0.2),
		Mz: 41,

		Temperature: 24.5 + 0.5*math.Sin(elapsed*0.05),
	}, nil
}
