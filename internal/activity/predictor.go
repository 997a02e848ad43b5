// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package activity

import (
	"log"
	"time"

	"github.com/relabs-tech/activity_recognizer/internal/imu"
	"github.com/relabs-tech/activity_recognizer/internal/orientation"
)

// FilterScope controls how long one orientation filter lives.
type FilterScope string

const (
	// FilterScopeSample builds a fresh filter for every sample, so gyro
	// integration never accumulates across a batch. This matches the
	// behavior the deployed models were tuned against; effectively each
	// sample's attitude is a one-step correction from identity.
	FilterScopeSample FilterScope = "sample"

	// FilterScopeBatch keeps one filter across the whole batch, letting the
	// attitude estimate actually integrate over the 30 samples.
	FilterScopeBatch FilterScope = "batch"
)

// Display surfaces short status text to the wearer. Show is fire and
// forget: implementations log failures and never block the caller on them.
type Display interface {
	Show(text string)
}

// nopDisplay stands in when no physical display is attached.
type nopDisplay struct{}

func (nopDisplay) Show(string) {}

// PredictorConfig carries the tunables of one prediction batch.
type PredictorConfig struct {
	Beta        float64       // filter gain, DefaultBeta when zero
	SampleCount int           // samples per batch, 30 when zero
	SampleDelay time.Duration // pause between samples, 50ms when zero
	FilterScope FilterScope   // FilterScopeSample when empty
}

// Predictor drives the filter + cascade over a fixed batch of samples and
// resolves the batch to one activity label by majority vote.
//
// Predict runs strictly sequentially: one blocking sensor read at a time,
// filter update and cascade evaluation inline, then the fixed delay. Only
// one Predict may be in flight; the predictor owns its filter state and
// tally exclusively for the duration of a batch.
type Predictor struct {
	sensor  imu.Source
	clock   Clock
	cascade *Cascade
	device  *DeviceState
	display Display
	cfg     PredictorConfig

	lastTicks int64

	lastPose    orientation.Pose
	lastGravity orientation.Gravity
	lastSample  imu.RawSample
	haveSample  bool
}

// NewPredictor wires a predictor. display may be nil.
func NewPredictor(sensor imu.Source, clock Clock, models Models, device *DeviceState, display Display, cfg PredictorConfig) *Predictor {
	if cfg.Beta == 0 {
		cfg.Beta = orientation.DefaultBeta
	}
	if cfg.SampleCount == 0 {
		cfg.SampleCount = 30
	}
	if cfg.SampleDelay == 0 {
		cfg.SampleDelay = 50 * time.Millisecond
	}
	if cfg.FilterScope == "" {
		cfg.FilterScope = FilterScopeSample
	}
	if display == nil {
		display = nopDisplay{}
	}
	return &Predictor{
		sensor:  sensor,
		clock:   clock,
		cascade: NewCascade(models),
		device:  device,
		display: display,
		cfg:     cfg,
		// Seed the previous-sample timestamp so the first batch has a
		// defined dt.
		lastTicks: clock.TicksMs(),
	}
}

// Predict collects one batch of samples and returns the winning activity
// label, or a sentinel: SentinelDeviceOff when the device is switched off
// (no sampling happens), SentinelSensorError when any sample read fails
// (the batch is abandoned immediately, no partial tally is used).
func (p *Predictor) Predict() string {
	if !p.device.On() {
		p.display.Show("System is OFF")
		return SentinelDeviceOff
	}

	var tally Tally
	filter := orientation.NewFilter(p.cfg.Beta)

	for c := 0; c < p.cfg.SampleCount; c++ {
		s, err := p.sensor.Read()
		if err != nil {
			log.Printf("predictor: sample read error: %v", err)
			return SentinelSensorError
		}

		now := p.clock.TicksMs()
		dt := float64(TicksDiff(now, p.lastTicks)) / 1000.0
		p.lastTicks = now

		if p.cfg.FilterScope == FilterScopeSample {
			filter = orientation.NewFilter(p.cfg.Beta)
		}
		filter.Update(s.Gx, s.Gy, s.Gz, s.Ax, s.Ay, s.Az, dt)

		pose := filter.Euler()
		grav := filter.GravityVector()
		tally.Add(p.cascade.Classify(Features(pose, grav, s)))

		p.lastPose = pose
		p.lastGravity = grav
		p.lastSample = s
		p.haveSample = true

		time.Sleep(p.cfg.SampleDelay)
	}

	label := Label(tally.Winner())
	p.display.Show(label)
	return label
}

// LastPose returns the pose derived for the most recent sample and whether
// one exists yet. Only valid between Predict calls on the owning goroutine.
func (p *Predictor) LastPose() (orientation.Pose, bool) {
	return p.lastPose, p.haveSample
}

// LastSample returns the most recent raw sample, for republishing.
func (p *Predictor) LastSample() (imu.RawSample, bool) {
	return p.lastSample, p.haveSample
}
