// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package example

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/lis2dh12"
)

// Example prints formatted acceleration readings every 100ms for 3
// seconds, the way the badge firmware polls the sensor.
func Example() {

	// Initialize the host.
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := lis2dh12.NewI2C(b, lis2dh12.DefaultAddress, &lis2dh12.DefaultOpts)
	if err != nil {
		panic(err)
	}
	defer d.Halt()

	fmt.Println(d.String())

	// Use a ticker to read the acceleration values every 100ms.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	// Stop after 3 seconds.
	stop := time.After(3 * time.Second)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a, err := d.ReadAcceleration()
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%5.2f - %5.2f - %5.2f\n", a.X, a.Y, a.Z)
		}
	}
}
