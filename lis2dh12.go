// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis2dh12

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultAddress is the I²C address with the SA0 pad tied low. With
	// SA0 high the device answers at 0x19.
	DefaultAddress uint16 = 0x18

	// DeviceID is the content of the WHO_AM_I register on a healthy
	// LIS2DH12 (decimal 51).
	DeviceID byte = 0x33

	regWhoAmI byte = 0x0F // WHO_AM_I identity register
	regCtrl1  byte = 0x20 // Data rate, low-power enable, axis enable
	regCtrl2  byte = 0x21 // High-pass filter configuration
	regCtrl3  byte = 0x22 // Interrupt routing on INT1
	regCtrl4  byte = 0x23 // BDU, full-scale selection, high resolution enable
	regCtrl5  byte = 0x24 // FIFO enable, interrupt latching
	regCtrl6  byte = 0x25 // Interrupt routing on INT2, pin polarity
	regOutXL  byte = 0x28 // OUT_X_L, first of the six output registers

	// Set on the register sub-address to auto-increment the register
	// pointer during multi-byte transfers.
	autoIncrement byte = 0x80

	ctrl1LowPower byte = 1 << 3
	ctrl4BDU      byte = 1 << 7
	ctrl4HighRes  byte = 1 << 3

	// Conversion factor from g to m/s².
	earthGravity = 9.80665
)

// Axis is a bitmask selecting the accelerometer axes to enable.
type Axis byte

const (
	AxisX   Axis = 1 << 0
	AxisY   Axis = 1 << 1
	AxisZ   Axis = 1 << 2
	AxisAll Axis = AxisX | AxisY | AxisZ
)

// Resolution selects the number of significant bits per axis sample and
// with it the device power mode.
type Resolution uint8

const (
	Resolution8Bit  Resolution = iota // low-power mode
	Resolution10Bit                   // normal mode
	Resolution12Bit                   // high resolution mode
)

// shift is the number of padding bits below a left-justified sample.
func (r Resolution) shift() uint {
	switch r {
	case Resolution8Bit:
		return 8
	case Resolution12Bit:
		return 4
	default:
		return 6
	}
}

// DataRate selects the frequency at which the device refreshes the
// output registers. Not every rate is available at every resolution:
// Rate1620Hz and Rate1344Hz require Resolution8Bit, Rate5376Hz requires
// Resolution10Bit or Resolution12Bit.
type DataRate uint8

const (
	RatePowerDown DataRate = iota
	Rate1Hz
	Rate10Hz
	Rate25Hz
	Rate50Hz
	Rate100Hz
	Rate200Hz
	Rate400Hz
	Rate1620Hz
	Rate1344Hz
	Rate5376Hz
)

// FullScale selects the measurable range, trading range for precision.
type FullScale uint8

const (
	Range2G FullScale = iota
	Range4G
	Range8G
	Range16G
)

// Unit selects the unit of the converted acceleration values.
type Unit uint8

const (
	UnitG               Unit = iota // gravitational units
	UnitMeterPerSecond2             // SI
)

// Opts holds the device configuration. The whole value is applied at
// once; there is no per-field update.
type Opts struct {
	Axes       Axis
	Resolution Resolution
	DataRate   DataRate
	Range      FullScale
	Unit       Unit
}

// DefaultOpts is the configuration applied when New is called with nil
// Opts: all axes at 10 bit, 10 Hz, ±2g, readings in g.
var DefaultOpts = Opts{
	Axes:       AxisAll,
	Resolution: Resolution10Bit,
	DataRate:   Rate10Hz,
	Range:      Range2G,
	Unit:       UnitG,
}

// odrBits returns the CTRL_REG1 data rate selector, enforcing the rate
// restrictions of each resolution.
func odrBits(rate DataRate, res Resolution) (byte, error) {
	switch rate {
	case RatePowerDown, Rate1Hz, Rate10Hz, Rate25Hz, Rate50Hz, Rate100Hz, Rate200Hz, Rate400Hz:
		return byte(rate), nil
	case Rate1620Hz:
		if res != Resolution8Bit {
			return 0, &InvalidConfigurationError{Reason: "1.620kHz data rate requires 8 bit resolution"}
		}
		return 0x8, nil
	case Rate1344Hz:
		if res != Resolution8Bit {
			return 0, &InvalidConfigurationError{Reason: "1.344kHz data rate requires 8 bit resolution"}
		}
		return 0x9, nil
	case Rate5376Hz:
		if res == Resolution8Bit {
			return 0, &InvalidConfigurationError{Reason: "5.376kHz data rate requires 10 or 12 bit resolution"}
		}
		return 0x9, nil
	default:
		return 0, &InvalidConfigurationError{Reason: fmt.Sprintf("unknown data rate %d", rate)}
	}
}

// controlBytes encodes the configuration into the values of CTRL_REG1
// through CTRL_REG6. Encoding is pure: the same Opts always produce the
// same bytes, and nothing is written to the device.
func controlBytes(o *Opts) ([6]byte, error) {
	var regs [6]byte
	if o.Axes == 0 {
		return regs, &InvalidConfigurationError{Reason: "no axes enabled"}
	}
	if o.Axes&^AxisAll != 0 {
		return regs, &InvalidConfigurationError{Reason: fmt.Sprintf("unknown axis selection %#02x", byte(o.Axes))}
	}
	switch o.Resolution {
	case Resolution8Bit, Resolution10Bit, Resolution12Bit:
	default:
		return regs, &InvalidConfigurationError{Reason: fmt.Sprintf("unknown resolution %d", o.Resolution)}
	}
	switch o.Range {
	case Range2G, Range4G, Range8G, Range16G:
	default:
		return regs, &InvalidConfigurationError{Reason: fmt.Sprintf("unknown full-scale range %d", o.Range)}
	}
	switch o.Unit {
	case UnitG, UnitMeterPerSecond2:
	default:
		return regs, &InvalidConfigurationError{Reason: fmt.Sprintf("unknown output unit %d", o.Unit)}
	}
	odr, err := odrBits(o.DataRate, o.Resolution)
	if err != nil {
		return regs, err
	}
	regs[0] = odr<<4 | byte(o.Axes)
	if o.Resolution == Resolution8Bit {
		regs[0] |= ctrl1LowPower
	}
	regs[3] = ctrl4BDU | byte(o.Range)<<4
	if o.Resolution == Resolution12Bit {
		regs[3] |= ctrl4HighRes
	}
	return regs, nil
}

// sensitivities holds the acceleration in g represented by one count
// after right-justification, indexed by FullScale. The values are the
// fixed mg/digit constants from the datasheet mechanical
// characteristics table.
var sensitivities = map[Resolution][4]float64{
	Resolution8Bit:  {0.016, 0.032, 0.064, 0.192},
	Resolution10Bit: {0.004, 0.008, 0.016, 0.048},
	Resolution12Bit: {0.001, 0.002, 0.004, 0.012},
}

// sensitivity looks up the per-count factor for a resolution and range.
// Configurations are validated before this lookup ever runs, so a
// failure here is a driver bug, not bad input.
func sensitivity(res Resolution, fs FullScale) (float64, error) {
	table, ok := sensitivities[res]
	if !ok || int(fs) >= len(table) {
		return 0, &UnsupportedCombinationError{Resolution: res, Range: fs}
	}
	return table[fs], nil
}

// Acceleration holds one converted sample per axis, in the unit the
// device was configured with. Disabled axes read as zero.
type Acceleration struct {
	X float64
	Y float64
	Z float64
}

// String returns a string representation of the Acceleration.
func (a Acceleration) String() string {
	return fmt.Sprintf("X:%.3f Y:%.3f Z:%.3f", a.X, a.Y, a.Z)
}

// DebugF is the diagnostics output function type.
type DebugF func(format string, v ...interface{})

func noop(string, ...interface{}) {}

// Dev is a driver for the LIS2DH12 accelerometer.
//
// The driver is synchronous and performs no locking; it assumes
// exclusive ownership of the device address for its lifetime. If
// several owners share the device, serialize access externally.
type Dev struct {
	d         *i2c.Dev
	opts      Opts
	scale     float64 // g per count for the current configuration
	debug     DebugF
	backlight bool
	closed    bool
}

// NewI2C returns a device on the given bus configured with opts. A nil
// opts applies DefaultOpts. The configuration is validated and encoded
// before anything is written, so an invalid one leaves the device
// untouched.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, debug: noop}
	if err := d.apply(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("lis2dh12: %s", d.d.String())
}

// EnableDebug sets the diagnostics output function. The driver reports
// the control register bytes it is about to write and the raw output
// register content of every readout.
func (d *Dev) EnableDebug(f DebugF) {
	if f == nil {
		f = noop
	}
	d.debug = f
}

// apply encodes opts, refreshes the scaling factor and rewrites all six
// control registers in a single auto-incremented transaction. The
// current backlight state is preserved through CTRL_REG6.
func (d *Dev) apply(opts *Opts) error {
	regs, err := controlBytes(opts)
	if err != nil {
		return err
	}
	scale, err := sensitivity(opts.Resolution, opts.Range)
	if err != nil {
		return err
	}
	if d.backlight {
		regs[5] = 0xFF
	}
	w := make([]byte, 0, 7)
	w = append(w, regCtrl1|autoIncrement)
	w = append(w, regs[:]...)
	d.debug("write control registers % #x", w[1:])
	if err := d.d.Tx(w, nil); err != nil {
		return err
	}
	d.opts = *opts
	d.scale = scale
	return nil
}

// Reconfigure replaces the whole configuration and rewrites all control
// registers. When validation fails the device keeps its previous
// configuration; when the bus write itself fails the register state is
// undefined and should be considered invalid until a later Reconfigure
// succeeds.
func (d *Dev) Reconfigure(opts *Opts) error {
	if d.closed {
		return &ClosedError{}
	}
	if opts == nil {
		return &InvalidConfigurationError{Reason: "nil Opts"}
	}
	return d.apply(opts)
}

// ReadRaw reads the six output registers in one burst and returns the
// right-justified counts in X, Y, Z order. The device streams all three
// register pairs regardless of which axes are enabled.
func (d *Dev) ReadRaw() ([3]int16, error) {
	var raw [3]int16
	if d.closed {
		return raw, &ClosedError{}
	}
	r := make([]byte, 6)
	if err := d.d.Tx([]byte{regOutXL | autoIncrement}, r); err != nil {
		return raw, err
	}
	d.debug("output registers % #x", r)
	shift := d.opts.Resolution.shift()
	for i := range raw {
		raw[i] = int16(binary.LittleEndian.Uint16(r[2*i:])) >> shift
		d.debug("axis %d bytes %#02x %#02x count %d", i, r[2*i], r[2*i+1], raw[i])
	}
	return raw, nil
}

// ReadAcceleration reads one sample and converts it with the
// sensitivity of the current configuration. Axes that are not enabled
// report zero.
func (d *Dev) ReadAcceleration() (Acceleration, error) {
	var a Acceleration
	raw, err := d.ReadRaw()
	if err != nil {
		return a, err
	}
	factor := d.scale
	if d.opts.Unit == UnitMeterPerSecond2 {
		factor *= earthGravity
	}
	if d.opts.Axes&AxisX != 0 {
		a.X = float64(raw[0]) * factor
	}
	if d.opts.Axes&AxisY != 0 {
		a.Y = float64(raw[1]) * factor
	}
	if d.opts.Axes&AxisZ != 0 {
		a.Z = float64(raw[2]) * factor
	}
	return a, nil
}

// WhoAmI reads the identity register and reports its content verbatim.
// A healthy device answers DeviceID; the comparison is left to the
// caller.
func (d *Dev) WhoAmI() (byte, error) {
	if d.closed {
		return 0, &ClosedError{}
	}
	r := make([]byte, 1)
	if err := d.d.Tx([]byte{regWhoAmI}, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

// EnableBacklight repurposes the INT2 pin as a general purpose output
// and drives it high or low. Interrupt generation on that pin is
// unavailable while the backlight output is in use.
func (d *Dev) EnableBacklight(on bool) error {
	if d.closed {
		return &ClosedError{}
	}
	var v byte
	if on {
		v = 0xFF
	}
	if err := d.d.Tx([]byte{regCtrl6, v}, nil); err != nil {
		return err
	}
	d.backlight = on
	return nil
}

// Halt drives the backlight pin low if it is still high and closes the
// device. Halt is idempotent; any other operation on a halted device
// fails with ClosedError. Implements conn.Resource.
func (d *Dev) Halt() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.backlight {
		if err := d.d.Tx([]byte{regCtrl6, 0x00}, nil); err != nil {
			return err
		}
		d.backlight = false
	}
	return nil
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = Acceleration{}
