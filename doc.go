// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lis2dh12 controls an ST LIS2DH12 3-axis MEMS accelerometer over
// an I²C bus.
//
// The driver covers axis selection, 8/10/12 bit resolution, the output
// data rates supported at each resolution, ±2g to ±16g full-scale range
// and readout in g or m/s². As a secondary feature the INT2 pin can be
// repurposed as a general purpose output; on badge boards it switches the
// display backlight.
//
// # Datasheet
//
// https://www.st.com/resource/en/datasheet/lis2dh12.pdf
package lis2dh12
