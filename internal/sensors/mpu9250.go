// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/relabs-tech/activity_recognizer/internal/config"
	"github.com/relabs-tech/activity_recognizer/internal/imu"
)

// MPU9250 registers (gyro/accel die).
const (
	regSmplrtDiv   = 0x19 // Sample Rate = Internal_Sample_Rate / (1 + SMPLRT_DIV)
	regConfig      = 0x1A // DLPF_CFG in bits 2:0
	regGyroConfig  = 0x1B // GYRO_FS_SEL in bits 4:3
	regAccelConfig = 0x1C // ACCEL_FS_SEL in bits 4:3
	regIntPinCfg   = 0x37 // BYPASS_EN in bit 1
	regAccelXoutH  = 0x3B // 14-byte burst: accel, temp, gyro
	regPwrMgmt1    = 0x6B
	regWhoAmI      = 0x75

	whoAmIMPU9250 = 0x71
	whoAmIMPU9255 = 0x73
)

// AK8963 magnetometer registers, reached directly once the MPU9250's I2C
// bypass is enabled.
const (
	ak8963Addr = 0x0C

	regAkWia   = 0x00
	regAkSt1   = 0x02 // DRDY in bit 0
	regAkHxl   = 0x03 // 7-byte burst: x/y/z little-endian + ST2
	regAkCntl1 = 0x0A
	regAkAsax  = 0x10 // factory sensitivity adjustment, 3 bytes

	akModePowerDown = 0x00
	akModeFuseROM   = 0x0F
	akModeCont100Hz = 0x16 // continuous measurement 2, 16-bit output
	akOverflowBit   = 0x08 // HOFL in ST2
	whoAmIAK8963    = 0x48
	akMicroteslaLSB = 4912.0 / 32760.0 // µT per LSB at 16-bit resolution
	tempSensitivity = 333.87           // LSB per °C
	tempRoomOffsetC = 21.0
)

// MPU9250 drives the IMU over I2C and implements imu.Source with scaled
// readings: gyro in degrees/s, accel in g, magnetometer in µT, die
// temperature in °C.
type MPU9250 struct {
	dev i2c.Dev
	mag i2c.Dev

	gyroScale  float64 // deg/s per LSB
	accelScale float64 // g per LSB

	magAdj   [3]float64 // AK8963 factory sensitivity adjustment
	magReady bool
	lastMag  [3]float64 // last good reading, reused on overflow
}

// NewMPU9250 probes and configures the IMU at addr on bus using the global
// config's ranges and sample-rate settings. Magnetometer bring-up is
// non-fatal: the device stays usable without it, with zeroed mag readings.
func NewMPU9250(bus i2c.Bus, addr uint16) (*MPU9250, error) {
	cfg := config.Get()

	m := &MPU9250{
		dev: i2c.Dev{Bus: bus, Addr: addr},
		mag: i2c.Dev{Bus: bus, Addr: ak8963Addr},
	}

	id, err := m.readReg(regWhoAmI)
	if err != nil {
		return nil, fmt.Errorf("imu: WHO_AM_I read: %w", err)
	}
	if id != whoAmIMPU9250 && id != whoAmIMPU9255 {
		return nil, fmt.Errorf("imu: unexpected WHO_AM_I 0x%02X", id)
	}
	log.Printf("imu: MPU9250 id 0x%02X at 0x%02X", id, addr)

	// Wake from sleep, auto-select the best clock source.
	if err := m.writeReg(regPwrMgmt1, 0x80); err != nil { // H_RESET
		return nil, fmt.Errorf("imu: reset: %w", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := m.writeReg(regPwrMgmt1, 0x01); err != nil {
		return nil, fmt.Errorf("imu: wake: %w", err)
	}

	// Full-scale ranges from config (FS_SEL in bits 4:3).
	if err := m.writeReg(regGyroConfig, cfg.IMUGyroRange<<3); err != nil {
		return nil, fmt.Errorf("imu: set gyro range: %w", err)
	}
	m.gyroScale = 250.0 * float64(int(1)<<cfg.IMUGyroRange) / 32768.0
	log.Printf("imu: gyroscope range set to %d (±%d°/s)", cfg.IMUGyroRange, []int{250, 500, 1000, 2000}[cfg.IMUGyroRange])

	if err := m.writeReg(regAccelConfig, cfg.IMUAccelRange<<3); err != nil {
		return nil, fmt.Errorf("imu: set accel range: %w", err)
	}
	m.accelScale = 2.0 * float64(int(1)<<cfg.IMUAccelRange) / 32768.0
	log.Printf("imu: accelerometer range set to %d (±%dg)", cfg.IMUAccelRange, []int{2, 4, 8, 16}[cfg.IMUAccelRange])

	// DLPF and output rate.
	if err := m.writeReg(regConfig, cfg.IMUDLPFConfig); err != nil {
		return nil, fmt.Errorf("imu: set DLPF config: %w", err)
	}
	if err := m.writeReg(regSmplrtDiv, cfg.IMUSampleRateDiv); err != nil {
		return nil, fmt.Errorf("imu: set sample rate divider: %w", err)
	}
	internalRate := 1000 // 1kHz for DLPF modes 0-6
	if cfg.IMUDLPFConfig == 7 {
		internalRate = 8000 // 8kHz when DLPF disabled
	}
	log.Printf("imu: output rate %d Hz (DLPF %d, divider %d)",
		internalRate/(1+int(cfg.IMUSampleRateDiv)), cfg.IMUDLPFConfig, cfg.IMUSampleRateDiv)

	if err := m.initMag(); err != nil {
		log.Printf("imu: magnetometer initialization failed (will continue without mag): %v", err)
	} else {
		m.magReady = true
		log.Printf("imu: mag sensitivity adj: X=%.4f Y=%.4f Z=%.4f", m.magAdj[0], m.magAdj[1], m.magAdj[2])
	}

	return m, nil
}

// initMag enables the I2C bypass and configures the AK8963 for continuous
// 16-bit measurement, loading the factory sensitivity adjustment first.
func (m *MPU9250) initMag() error {
	// BYPASS_EN: wire the AK8963 straight onto the host bus.
	if err := m.writeReg(regIntPinCfg, 0x02); err != nil {
		return fmt.Errorf("bypass enable: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	id, err := m.readMagReg(regAkWia)
	if err != nil {
		return fmt.Errorf("WIA read: %w", err)
	}
	if id != whoAmIAK8963 {
		return fmt.Errorf("unexpected WIA 0x%02X", id)
	}

	// Fuse ROM access mode to read the per-axis sensitivity adjustment.
	if err := m.writeMagReg(regAkCntl1, akModePowerDown); err != nil {
		return fmt.Errorf("power down: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := m.writeMagReg(regAkCntl1, akModeFuseROM); err != nil {
		return fmt.Errorf("fuse ROM mode: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	var asa [3]byte
	if err := m.mag.Tx([]byte{regAkAsax}, asa[:]); err != nil {
		return fmt.Errorf("ASA read: %w", err)
	}
	for i, a := range asa {
		m.magAdj[i] = (float64(a)-128.0)/256.0 + 1.0
	}

	if err := m.writeMagReg(regAkCntl1, akModePowerDown); err != nil {
		return fmt.Errorf("power down: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := m.writeMagReg(regAkCntl1, akModeCont100Hz); err != nil {
		return fmt.Errorf("continuous mode: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

// Read returns one scaled sample. Gyro/accel/temperature come from a single
// 14-byte burst; the magnetometer is read separately and holds its last
// good value on overflow or when data is not ready yet.
func (m *MPU9250) Read() (imu.RawSample, error) {
	var buf [14]byte
	if err := m.dev.Tx([]byte{regAccelXoutH}, buf[:]); err != nil {
		return imu.RawSample{}, fmt.Errorf("imu: burst read: %w", err)
	}

	ax := int16(uint16(buf[0])<<8 | uint16(buf[1]))
	ay := int16(uint16(buf[2])<<8 | uint16(buf[3]))
	az := int16(uint16(buf[4])<<8 | uint16(buf[5]))
	t := int16(uint16(buf[6])<<8 | uint16(buf[7]))
	gx := int16(uint16(buf[8])<<8 | uint16(buf[9]))
	gy := int16(uint16(buf[10])<<8 | uint16(buf[11]))
	gz := int16(uint16(buf[12])<<8 | uint16(buf[13]))

	s := imu.RawSample{
		Gx: float64(gx) * m.gyroScale,
		Gy: float64(gy) * m.gyroScale,
		Gz: float64(gz) * m.gyroScale,

		Ax: float64(ax) * m.accelScale,
		Ay: float64(ay) * m.accelScale,
		Az: float64(az) * m.accelScale,

		Temperature: float64(t)/tempSensitivity + tempRoomOffsetC,
	}

	if m.magReady {
		if err := m.readMag(); err != nil {
			return imu.RawSample{}, err
		}
	}
	s.Mx, s.My, s.Mz = m.lastMag[0], m.lastMag[1], m.lastMag[2]

	return s, nil
}

// readMag refreshes lastMag when the AK8963 has new, non-overflowed data.
func (m *MPU9250) readMag() error {
	st1, err := m.readMagReg(regAkSt1)
	if err != nil {
		return fmt.Errorf("imu: mag status: %w", err)
	}
	if st1&0x01 == 0 {
		return nil // not ready, keep previous reading
	}

	// Reading through ST2 latches the next measurement.
	var buf [7]byte
	if err := m.mag.Tx([]byte{regAkHxl}, buf[:]); err != nil {
		return fmt.Errorf("imu: mag read: %w", err)
	}
	if buf[6]&akOverflowBit != 0 {
		log.Printf("imu: magnetometer overflow detected")
		return nil
	}

	// AK8963 data is little-endian, unlike the MPU registers.
	mx := int16(uint16(buf[1])<<8 | uint16(buf[0]))
	my := int16(uint16(buf[3])<<8 | uint16(buf[2]))
	mz := int16(uint16(buf[5])<<8 | uint16(buf[4]))

	m.lastMag[0] = float64(mx) * akMicroteslaLSB * m.magAdj[0]
	m.lastMag[1] = float64(my) * akMicroteslaLSB * m.magAdj[1]
	m.lastMag[2] = float64(mz) * akMicroteslaLSB * m.magAdj[2]
	return nil
}

func (m *MPU9250) readReg(reg byte) (byte, error) {
	var b [1]byte
	if err := m.dev.Tx([]byte{reg}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *MPU9250) writeReg(reg, val byte) error {
	return m.dev.Tx([]byte{reg, val}, nil)
}

func (m *MPU9250) readMagReg(reg byte) (byte, error) {
	var b [1]byte
	if err := m.mag.Tx([]byte{reg}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *MPU9250) writeMagReg(reg, val byte) error {
	return m.mag.Tx([]byte{reg, val}, nil)
}
