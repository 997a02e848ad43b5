package activity

import (
	"errors"
	"testing"

	"github.com/relabs-tech/activity_recognizer/internal/imu"
)

// fakeSensor replays one constant sample and can be armed to fail on a
// given read.
type fakeSensor struct {
	sample imu.RawSample
	reads  int
	failOn int // 1-based read index that errors; 0 = never
}

func (s *fakeSensor) Read() (imu.RawSample, error) {
	s.reads++
	if s.failOn != 0 && s.reads >= s.failOn {
		return imu.RawSample{}, errors.New("i2c read failed")
	}
	return s.sample, nil
}

// fakeClock advances a fixed number of ticks per reading.
type fakeClock struct {
	now  int64
	step int64
}

func (c *fakeClock) TicksMs() int64 {
	c.now += c.step
	return c.now
}

// recordingDisplay captures Show calls.
type recordingDisplay struct {
	texts []string
}

func (d *recordingDisplay) Show(text string) {
	d.texts = append(d.texts, text)
}

func steadySample() imu.RawSample {
	return imu.RawSample{Az: 1, Temperature: 25}
}

func surfaceModels() Models {
	// Deterministic route to the surface leaf with walking on top.
	return Models{
		Motion:    fixed(0, 1),
		Steady:    panicky("steady"),
		Unsteady:  fixed(5, 4),
		Staircase: panicky("staircase"),
		Surface:   fixed(3, 1),
	}
}

func newTestPredictor(sensor imu.Source, models Models, device *DeviceState, display Display) *Predictor {
	return NewPredictor(sensor, &fakeClock{step: 50}, models, device, display, PredictorConfig{
		SampleCount: 30,
		SampleDelay: 1, // keep the test fast; 0 would fall back to the default
	})
}

func TestPredict_BatchResolvesToWalking(t *testing.T) {
	sensor := &fakeSensor{sample: steadySample()}
	display := &recordingDisplay{}
	p := newTestPredictor(sensor, surfaceModels(), NewDeviceState(true), display)

	if got := p.Predict(); got != "Walking" {
		t.Fatalf("got=%q want Walking", got)
	}
	if sensor.reads != 30 {
		t.Fatalf("reads=%d want 30", sensor.reads)
	}
	if len(display.texts) != 1 || display.texts[0] != "Walking" {
		t.Fatalf("display=%v want [Walking]", display.texts)
	}
}

func TestPredict_DeviceOffShortCircuits(t *testing.T) {
	sensor := &fakeSensor{sample: steadySample()}
	display := &recordingDisplay{}
	p := newTestPredictor(sensor, surfaceModels(), NewDeviceState(false), display)

	if got := p.Predict(); got != SentinelDeviceOff {
		t.Fatalf("got=%q want %q", got, SentinelDeviceOff)
	}
	if sensor.reads != 0 {
		t.Fatalf("reads=%d want 0: off state must not sample", sensor.reads)
	}
	if len(display.texts) != 1 || display.texts[0] != "System is OFF" {
		t.Fatalf("display=%v want [System is OFF]", display.texts)
	}
}

func TestPredict_SensorErrorAbortsImmediately(t *testing.T) {
	sensor := &fakeSensor{sample: steadySample(), failOn: 1}
	p := newTestPredictor(sensor, surfaceModels(), NewDeviceState(true), nil)

	if got := p.Predict(); got != SentinelSensorError {
		t.Fatalf("got=%q want %q", got, SentinelSensorError)
	}
	if sensor.reads != 1 {
		t.Fatalf("reads=%d want 1: batch must abort on first failure", sensor.reads)
	}
}

func TestPredict_SensorErrorMidBatch(t *testing.T) {
	sensor := &fakeSensor{sample: steadySample(), failOn: 12}
	p := newTestPredictor(sensor, surfaceModels(), NewDeviceState(true), nil)

	if got := p.Predict(); got != SentinelSensorError {
		t.Fatalf("got=%q want %q", got, SentinelSensorError)
	}
	if sensor.reads != 12 {
		t.Fatalf("reads=%d want 12", sensor.reads)
	}
}

func TestPredict_SteadyTieCountsBothCategories(t *testing.T) {
	// Sitting and standing tie at the max on every sample; the tie rule
	// gives both a vote and the lower index wins the batch.
	models := Models{
		Motion:    fixed(1, 1),
		Steady:    fixed(2, 2, 0),
		Unsteady:  panicky("unsteady"),
		Staircase: panicky("staircase"),
		Surface:   panicky("surface"),
	}
	p := newTestPredictor(&fakeSensor{sample: steadySample()}, models, NewDeviceState(true), nil)

	if got := p.Predict(); got != "Sitting" {
		t.Fatalf("got=%q want Sitting", got)
	}
}

func TestPredict_BatchFilterScope(t *testing.T) {
	sensor := &fakeSensor{sample: steadySample()}
	p := NewPredictor(sensor, &fakeClock{step: 50}, surfaceModels(), NewDeviceState(true), nil, PredictorConfig{
		SampleCount: 5,
		SampleDelay: 1,
		FilterScope: FilterScopeBatch,
	})
	if got := p.Predict(); got != "Walking" {
		t.Fatalf("got=%q want Walking", got)
	}
	if sensor.reads != 5 {
		t.Fatalf("reads=%d want 5", sensor.reads)
	}
}

func TestPredict_LastPoseAvailableAfterBatch(t *testing.T) {
	p := newTestPredictor(&fakeSensor{sample: steadySample()}, surfaceModels(), NewDeviceState(true), nil)

	if _, ok := p.LastPose(); ok {
		t.Fatalf("pose before any batch")
	}
	p.Predict()
	if _, ok := p.LastPose(); !ok {
		t.Fatalf("no pose after a successful batch")
	}
	if s, ok := p.LastSample(); !ok || s.Az != 1 {
		t.Fatalf("sample=%+v ok=%v want az=1", s, ok)
	}
}
