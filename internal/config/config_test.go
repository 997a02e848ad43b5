package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity_config.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
# comment lines and blanks are skipped
MQTT_BROKER=tcp://localhost:1883
BUTTON_GPIO_PIN=GPIO0
`

func TestLoad_MinimalWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Fatalf("broker=%q", cfg.MQTTBroker)
	}
	if cfg.SampleCount != 30 {
		t.Fatalf("sample count=%d want default 30", cfg.SampleCount)
	}
	if cfg.SampleDelayMS != 50 {
		t.Fatalf("sample delay=%d want default 50", cfg.SampleDelayMS)
	}
	if cfg.FilterBeta != 0.1 {
		t.Fatalf("beta=%v want default 0.1", cfg.FilterBeta)
	}
	if cfg.FilterScope != "sample" {
		t.Fatalf("scope=%q want default sample", cfg.FilterScope)
	}
	if cfg.IMUI2CAddr != 0x68 || cfg.DisplayI2CAddr != 0x3C {
		t.Fatalf("addrs=%#x/%#x want 0x68/0x3c", cfg.IMUI2CAddr, cfg.DisplayI2CAddr)
	}
	if cfg.TopicActivity != "activity/state" {
		t.Fatalf("topic=%q", cfg.TopicActivity)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
IMU_SOURCE=mock
FILTER_SCOPE=batch
FILTER_BETA=0.033
SAMPLE_COUNT=10
IMU_I2C_ADDR=0x69
DEVICE_START_ON=true
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IMUSource != "mock" || cfg.FilterScope != "batch" {
		t.Fatalf("source=%q scope=%q", cfg.IMUSource, cfg.FilterScope)
	}
	if cfg.FilterBeta != 0.033 || cfg.SampleCount != 10 {
		t.Fatalf("beta=%v count=%d", cfg.FilterBeta, cfg.SampleCount)
	}
	if cfg.IMUI2CAddr != 0x69 {
		t.Fatalf("addr=%#x want 0x69", cfg.IMUI2CAddr)
	}
	if !cfg.DeviceStartOn {
		t.Fatalf("expected DeviceStartOn")
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing broker", "BUTTON_GPIO_PIN=GPIO0\n"},
		{"missing button pin", "MQTT_BROKER=tcp://localhost:1883\n"},
		{"unknown key", minimalConfig + "NOT_A_KEY=1\n"},
		{"bad line", minimalConfig + "no equals sign\n"},
		{"bad scope", minimalConfig + "FILTER_SCOPE=forever\n"},
		{"bad source", minimalConfig + "IMU_SOURCE=simulated\n"},
		{"zero samples", minimalConfig + "SAMPLE_COUNT=0\n"},
		{"negative beta", minimalConfig + "FILTER_BETA=-1\n"},
		{"accel range", minimalConfig + "IMU_ACCEL_RANGE=4\n"},
	}
	for _, c := range cases {
		if _, err := Load(writeConfig(t, c.content)); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}
