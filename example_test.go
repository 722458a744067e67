// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis2dh12

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// ExampleNewI2C reads the acceleration every 100ms for 10 seconds from a
// lis2dh12 connected by I²C. You can use `i2c-tools` to find the I²C bus
// number:
//
//	sudo apt-get install i2c-tools
//	sudo i2cdetect -y 1
func ExampleNewI2C() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg to find the first available I²C bus. Generally I2C1 on
	// a raspberry pi.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := NewI2C(b, DefaultAddress, &DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	if id, err := d.WhoAmI(); err != nil || id != DeviceID {
		log.Fatalf("unexpected device: id=%#02x err=%v", id, err)
	}

	for deadline := time.Now().Add(10 * time.Second); time.Now().Before(deadline); {
		a, err := d.ReadAcceleration()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%5.2f - %5.2f - %5.2f\n", a.X, a.Y, a.Z)
		time.Sleep(100 * time.Millisecond)
	}
}

// ExampleDev_EnableBacklight switches the badge backlight, which is wired
// to the INT2 pin of the accelerometer.
func ExampleDev_EnableBacklight() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := NewI2C(b, DefaultAddress, nil)
	if err != nil {
		log.Fatal(err)
	}
	// Halt drives the backlight low again.
	defer d.Halt()

	if err := d.EnableBacklight(true); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Second)
}
