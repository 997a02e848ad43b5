package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/activity_recognizer/internal/activity"
	"github.com/relabs-tech/activity_recognizer/internal/config"
	"github.com/relabs-tech/activity_recognizer/internal/gps"
	"github.com/relabs-tech/activity_recognizer/internal/imu"
	"github.com/relabs-tech/activity_recognizer/internal/orientation"
)

// RunConsole subscribes to the activity, pose, raw IMU, and GPS topics and
// prints each message, one line per topic, until interrupted.
func RunConsole() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to activity reports
	actToken := client.Subscribe(cfg.TopicActivity, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r activity.Report
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("console: report unmarshal error: %v", err)
			return
		}
		fmt.Printf("[ACT ]  %-14s status=%s time=%s\n", r.Activity, r.Status, r.Time)
	})
	actToken.Wait()
	if actToken.Error() != nil {
		return actToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicActivity)

	// Subscribe to pose
	poseToken := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p orientation.Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("console: pose unmarshal error: %v", err)
			return
		}
		fmt.Printf("[POSE]  ROLL=%6.2f  PITCH=%6.2f  YAW=%6.2f\n", p.Roll, p.Pitch, p.Yaw)
	})
	poseToken.Wait()
	if poseToken.Error() != nil {
		return poseToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicPose)

	// Subscribe to raw IMU samples
	imuToken := client.Subscribe(cfg.TopicIMURaw, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s imu.RawSample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: imu unmarshal error: %v", err)
			return
		}
		fmt.Printf(
			"[IMU ]  ax=%7.3f ay=%7.3f az=%7.3f  gx=%8.2f gy=%8.2f gz=%8.2f  mx=%7.2f my=%7.2f mz=%7.2f  t=%.1f°C\n",
			s.Ax, s.Ay, s.Az, s.Gx, s.Gy, s.Gz, s.Mx, s.My, s.Mz, s.Temperature,
		)
	})
	imuToken.Wait()
	if imuToken.Error() != nil {
		return imuToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicIMURaw)

	// Subscribe to GPS
	gpsToken := client.Subscribe(cfg.TopicGPS, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("console: gps unmarshal error: %v", err)
			return
		}
		fmt.Printf(
			"[GPS ]  time=%s date=%s lat=%.6f lon=%.6f speed=%.1fkn course=%.1f° validity=%s\n",
			f.Time, f.Date, f.Latitude, f.Longitude, f.SpeedKnots, f.CourseDeg, f.Validity,
		)
	})
	gpsToken.Wait()
	if gpsToken.Error() != nil {
		return gpsToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicGPS)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
