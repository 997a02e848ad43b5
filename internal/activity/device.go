package activity

import (
	"sync"
)

// DeviceState is the wearer-facing on/off toggle. The button watcher mutates
// it; the predictor only consults it. Safe for concurrent use.
type DeviceState struct {
	mu sync.Mutex
	on bool
}

// NewDeviceState returns a state starting out as given.
func NewDeviceState(on bool) *DeviceState {
	return &DeviceState{on: on}
}

// On reports whether the device is currently on.
func (d *DeviceState) On() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.on
}

// Toggle flips the state and returns the new value.
func (d *DeviceState) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = !d.on
	return d.on
}
