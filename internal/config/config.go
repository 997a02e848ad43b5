package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDGPS      string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string

	// Topics
	TopicActivity string
	TopicPose     string
	TopicIMURaw   string
	TopicGPS      string

	// Hardware
	I2CBus         string // I2C bus name; empty selects the first available bus
	IMUI2CAddr     uint16
	DisplayI2CAddr uint16
	ButtonGPIOPin  string

	// IMU Sensor Ranges
	// Accelerometer: 0=±2g, 1=±4g, 2=±8g, 3=±16g
	IMUAccelRange byte
	// Gyroscope: 0=±250°/s, 1=±500°/s, 2=±1000°/s, 3=±2000°/s
	IMUGyroRange byte

	// IMU Sample Rate Configuration
	IMUDLPFConfig    byte // Digital Low Pass Filter configuration (0-7)
	IMUSampleRateDiv byte // Sample rate divider (output rate = internal rate / (1 + div))

	// IMU source: "real" or "mock"
	IMUSource string

	// Predictor
	SampleCount       int     // samples per voting batch
	SampleDelayMS     int     // pause between samples, milliseconds
	FilterBeta        float64 // orientation filter gain
	FilterScope       string  // "sample" (fresh filter per sample) or "batch"
	PredictIntervalMS int     // pause between prediction batches
	DeviceStartOn     bool    // initial on/off state before any button press

	// GPS
	GPSSerialPort string
	GPSBaudRate   int

	// Web Server
	WebServerPort int
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access. Write lock for initialization,
//     read lock for Get() allows multiple concurrent readers.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaults returns a Config pre-filled with the device-independent defaults.
// Hardware and broker keys stay empty and go through validation.
func defaults() *Config {
	return &Config{
		TopicActivity: "activity/state",
		TopicPose:     "activity/pose",
		TopicIMURaw:   "activity/imu/raw",
		TopicGPS:      "activity/gps",

		IMUI2CAddr:     0x68,
		DisplayI2CAddr: 0x3C,

		IMUSource: "real",

		SampleCount:       30,
		SampleDelayMS:     50,
		FilterBeta:        0.1,
		FilterScope:       "sample",
		PredictIntervalMS: 1000,

		GPSBaudRate: 9600,

		WebServerPort: 8080,
	}
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value

	// Topics
	case "TOPIC_ACTIVITY":
		c.TopicActivity = value
	case "TOPIC_POSE":
		c.TopicPose = value
	case "TOPIC_IMU_RAW":
		c.TopicIMURaw = value
	case "TOPIC_GPS":
		c.TopicGPS = value

	// Hardware
	case "I2C_BUS":
		c.I2CBus = value
	case "IMU_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid IMU_I2C_ADDR %q: %w", value, err)
		}
		c.IMUI2CAddr = uint16(addr)
	case "DISPLAY_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_I2C_ADDR %q: %w", value, err)
		}
		c.DisplayI2CAddr = uint16(addr)
	case "BUTTON_GPIO_PIN":
		c.ButtonGPIOPin = value

	// IMU Sensor Ranges
	case "IMU_ACCEL_RANGE":
		rangeVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_ACCEL_RANGE %q: %w", value, err)
		}
		if rangeVal < 0 || rangeVal > 3 {
			return fmt.Errorf("IMU_ACCEL_RANGE must be 0-3 (0=±2g, 1=±4g, 2=±8g, 3=±16g), got %d", rangeVal)
		}
		c.IMUAccelRange = byte(rangeVal)
	case "IMU_GYRO_RANGE":
		rangeVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_GYRO_RANGE %q: %w", value, err)
		}
		if rangeVal < 0 || rangeVal > 3 {
			return fmt.Errorf("IMU_GYRO_RANGE must be 0-3 (0=±250°/s, 1=±500°/s, 2=±1000°/s, 3=±2000°/s), got %d", rangeVal)
		}
		c.IMUGyroRange = byte(rangeVal)

	// IMU Sample Rate Configuration
	case "IMU_DLPF_CFG":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_DLPF_CFG %q: %w", value, err)
		}
		if val < 0 || val > 7 {
			return fmt.Errorf("IMU_DLPF_CFG must be 0-7, got %d", val)
		}
		c.IMUDLPFConfig = byte(val)
	case "IMU_SMPLRT_DIV":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_SMPLRT_DIV %q: %w", value, err)
		}
		if val < 0 || val > 255 {
			return fmt.Errorf("IMU_SMPLRT_DIV must be 0-255, got %d", val)
		}
		c.IMUSampleRateDiv = byte(val)

	// IMU source
	case "IMU_SOURCE":
		if value != "real" && value != "mock" {
			return fmt.Errorf("IMU_SOURCE must be \"real\" or \"mock\", got %q", value)
		}
		c.IMUSource = value

	// Predictor
	case "SAMPLE_COUNT":
		count, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_COUNT %q: %w", value, err)
		}
		if count <= 0 {
			return fmt.Errorf("SAMPLE_COUNT must be positive, got %d", count)
		}
		c.SampleCount = count
	case "SAMPLE_DELAY_MS":
		delay, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_DELAY_MS %q: %w", value, err)
		}
		if delay < 0 {
			return fmt.Errorf("SAMPLE_DELAY_MS must be non-negative, got %d", delay)
		}
		c.SampleDelayMS = delay
	case "FILTER_BETA":
		beta, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid FILTER_BETA %q: %w", value, err)
		}
		if beta <= 0 {
			return fmt.Errorf("FILTER_BETA must be positive, got %v", beta)
		}
		c.FilterBeta = beta
	case "FILTER_SCOPE":
		if value != "sample" && value != "batch" {
			return fmt.Errorf("FILTER_SCOPE must be \"sample\" or \"batch\", got %q", value)
		}
		c.FilterScope = value
	case "PREDICT_INTERVAL_MS":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid PREDICT_INTERVAL_MS %q: %w", value, err)
		}
		c.PredictIntervalMS = interval
	case "DEVICE_START_ON":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DEVICE_START_ON %q: %w", value, err)
		}
		c.DeviceStartOn = on

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.IMUSource == "real" && c.IMUI2CAddr == 0 {
		return fmt.Errorf("IMU_I2C_ADDR is required")
	}
	if c.ButtonGPIOPin == "" {
		return fmt.Errorf("BUTTON_GPIO_PIN is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
