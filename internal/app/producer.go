// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/activity_recognizer/internal/activity"
	"github.com/relabs-tech/activity_recognizer/internal/config"
	"github.com/relabs-tech/activity_recognizer/internal/gps"
	"github.com/relabs-tech/activity_recognizer/internal/imu"
	"github.com/relabs-tech/activity_recognizer/internal/sensors"
)

// RunActivityProducer owns the sensor, display, button, and predictor. It
// runs prediction batches on a fixed interval and publishes the resulting
// activity report, the last pose, and the last raw sample over MQTT.
func RunActivityProducer() error {
	log.Println("starting activity producer")

	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("producer: periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("producer: open I2C bus: %w", err)
	}
	defer bus.Close()

	// --- Choose IMU source (mock vs real) ---
	var source imu.Source
	if cfg.IMUSource == "mock" {
		log.Println("producer: using mock IMU source")
		source = imu.NewMockSource()
	} else {
		source, err = sensors.NewMPU9250(bus, cfg.IMUI2CAddr)
		if err != nil {
			return fmt.Errorf("producer: IMU init: %w", err)
		}
	}

	// Display bring-up is non-fatal; a headless unit keeps working.
	display, err := NewDisplay(bus, cfg.DisplayI2CAddr)
	if err != nil {
		log.Printf("producer: no display (continuing headless): %v", err)
		display = nil
	} else {
		display.ShowSplash()
	}

	device := activity.NewDeviceState(cfg.DeviceStartOn)
	go func() {
		if err := WatchButton(cfg.ButtonGPIOPin, device, display); err != nil {
			log.Printf("producer: button watcher stopped: %v", err)
		}
	}()

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("producer: MQTT connect: %w", token.Error())
	}
	defer client.Disconnect(250)
	log.Println("producer: connected to MQTT, starting prediction loop")

	// Latest GPS fix, attached to outgoing reports when present.
	var (
		fixMu   sync.RWMutex
		lastFix *gps.Fix
	)
	gpsToken := client.Subscribe(cfg.TopicGPS, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("producer: gps unmarshal error: %v", err)
			return
		}
		fixMu.Lock()
		lastFix = &f
		fixMu.Unlock()
	})
	if gpsToken.Wait() && gpsToken.Error() != nil {
		log.Printf("producer: gps subscribe error (continuing without fixes): %v", gpsToken.Error())
	}

	predictor := activity.NewPredictor(
		source,
		activity.NewMonotonicClock(),
		activity.DefaultModels(),
		device,
		display,
		activity.PredictorConfig{
			Beta:        cfg.FilterBeta,
			SampleCount: cfg.SampleCount,
			SampleDelay: time.Duration(cfg.SampleDelayMS) * time.Millisecond,
			FilterScope: activity.FilterScope(cfg.FilterScope),
		},
	)

	ticker := time.NewTicker(time.Duration(cfg.PredictIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for t := range ticker.C {
		label := predictor.Predict()

		fixMu.RLock()
		fix := lastFix
		fixMu.RUnlock()

		report := activity.Report{
			Status:   "success",
			Activity: label,
			Time:     t.Format(time.RFC3339),
			Fix:      fix,
		}
		if payload, err := json.Marshal(report); err != nil {
			log.Printf("producer: report marshal error: %v", err)
		} else if token := client.Publish(cfg.TopicActivity, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("producer: MQTT publish error (activity): %v", token.Error())
		}

		if pose, ok := predictor.LastPose(); ok {
			if payload, err := json.Marshal(pose); err != nil {
				log.Printf("producer: pose marshal error: %v", err)
			} else if token := client.Publish(cfg.TopicPose, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("producer: MQTT publish error (pose): %v", token.Error())
			}
		}

		if sample, ok := predictor.LastSample(); ok {
			if payload, err := json.Marshal(sample); err != nil {
				log.Printf("producer: sample marshal error: %v", err)
			} else if token := client.Publish(cfg.TopicIMURaw, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("producer: MQTT publish error (imu/raw): %v", token.Error())
			}
		}

		log.Printf("%s tick: activity=%q", t.Format(time.RFC3339), label)
	}
	return nil
}
