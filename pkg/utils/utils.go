// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0
//

package utils

import (
	"math"
	"os"
)

// Boltzmann constant [J/K]
const Boltzmann = 1.38e-23

// ReferenceTemperature used for thermal noise [K]
const ReferenceTemperature = 290.0

// SpeedOfLight in vacuum [m/s]
const SpeedOfLight = 299792458.0

// RoundToDecimal rounds value to the given number of decimals
func RoundToDecimal(value float64, decimals int) float64 {
	intValue := value * math.Pow10(decimals)
	return math.Round(intValue) / math.Pow10(decimals)
}

func GetEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// DbToLinear converts a power ratio in dB to a linear ratio
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearToDb converts a linear power ratio to dB
func LinearToDb(linear float64) float64 {
	return 10 * math.Log10(linear)
}

// DbmToW converts dBm to watts
func DbmToW(dbm float64) float64 {
	return math.Pow(10, (dbm-30)/10)
}

// WToDbm converts watts to dBm
func WToDbm(w float64) float64 {
	return 10*math.Log10(w) + 30
}

// ThermalNoisePsd returns kT in W/Hz at the reference temperature
func ThermalNoisePsd() float64 {
	return Boltzmann * ReferenceTemperature
}

func If[T any](cond bool, vtrue, vfalse T) T {
	if cond {
		return vtrue
	}
	return vfalse
}
