package app

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/relabs-tech/activity_recognizer/internal/activity"
)

const buttonDebounce = 500 * time.Millisecond

// WatchButton blocks on the power button GPIO and toggles the device state
// on each confirmed falling edge. Run it on its own goroutine.
func WatchButton(pinName string, device *activity.DeviceState, display *Display) error {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return fmt.Errorf("button: no GPIO pin named %q", pinName)
	}
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("button: configure %s: %w", pinName, err)
	}
	log.Printf("button: watching %s (active low)", pinName)

	for {
		if !pin.WaitForEdge(-1) {
			continue
		}
		// Cheap glitch filter: the pin must still be low shortly after the
		// edge to count as a press.
		time.Sleep(20 * time.Millisecond)
		if pin.Read() != gpio.Low {
			continue
		}

		if device.Toggle() {
			log.Println("button: device switched ON")
			display.Show("Device ON")
		} else {
			log.Println("button: device switched OFF")
			display.Show("Device OFF")
		}

		time.Sleep(buttonDebounce)
	}
}
