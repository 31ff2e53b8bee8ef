// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"math"
	"time"

	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// Model run configuration; read-only once the run has started
type Model struct {
	Scenario       string        `mapstructure:"scenario" yaml:"scenario"`
	SimTime        time.Duration `mapstructure:"simTime" yaml:"simTime"`
	TimeStep       time.Duration `mapstructure:"timeStep" yaml:"timeStep"`
	TxPower        float64       `mapstructure:"txPower" yaml:"txPower"`
	NoiseFigure    float64       `mapstructure:"noiseFigure" yaml:"noiseFigure"`
	Bandwidth      float64       `mapstructure:"bandwidth" yaml:"bandwidth"`
	NumBins        int           `mapstructure:"numBins" yaml:"numBins"`
	Frequency      float64       `mapstructure:"frequency" yaml:"frequency"`
	EnbAntenna     Antenna       `mapstructure:"enbAntenna" yaml:"enbAntenna"`
	UeAntenna      Antenna       `mapstructure:"ueAntenna" yaml:"ueAntenna"`
	CbUpdatePeriod time.Duration `mapstructure:"cbUpdatePeriod" yaml:"cbUpdatePeriod"`
	OutputDir      string        `mapstructure:"outputDir" yaml:"outputDir"`
	JobID          string        `mapstructure:"jobID" yaml:"jobID"`
	LogLevel       string        `mapstructure:"logLevel" yaml:"logLevel"`
	Redis          Redis         `mapstructure:"redis" yaml:"redis"`
	MetricsFile    string        `mapstructure:"metricsFile" yaml:"metricsFile"`
	PlotFile       string        `mapstructure:"plotFile" yaml:"plotFile"`

	// Nodes keyed by scenario node name ("enb0", "ue1", ...)
	Nodes map[string]Node `mapstructure:"nodes" yaml:"nodes"`
}

// Antenna describes a uniform planar array
type Antenna struct {
	Rows    uint32 `mapstructure:"rows" yaml:"rows"`
	Columns uint32 `mapstructure:"columns" yaml:"columns"`
	Element string `mapstructure:"element" yaml:"element"`
}

// Redis store connection parameters
type Redis struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// Node overrides the scenario placement of a single participant
type Node struct {
	Position Vector  `mapstructure:"position" yaml:"position"`
	Bearing  float64 `mapstructure:"bearing" yaml:"bearing"`
	Downtilt float64 `mapstructure:"downtilt" yaml:"downtilt"`
}

// Vector is a Cartesian point or direction in meters
type Vector struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
	Z float64 `mapstructure:"z" yaml:"z"`
}

// Sub returns v - o
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Length returns the Euclidean norm
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the straight-line distance between two points
func Distance(a, b Vector) float64 {
	return a.Sub(b).Length()
}

// NumSamples returns how many ticks fit in the run
func (m *Model) NumSamples() int {
	if m.TimeStep <= 0 {
		return 0
	}
	return int(m.SimTime / m.TimeStep)
}

// Validate checks the values a run cannot do without.
func (m *Model) Validate() error {
	if m.TimeStep <= 0 {
		return errors.NewInvalid("timeStep must be positive, got %v", m.TimeStep)
	}
	if m.SimTime < 0 {
		return errors.NewInvalid("simTime must not be negative, got %v", m.SimTime)
	}
	if m.NumBins <= 0 {
		return errors.NewInvalid("numBins must be positive, got %d", m.NumBins)
	}
	if m.Bandwidth <= 0 {
		return errors.NewInvalid("bandwidth must be positive, got %v", m.Bandwidth)
	}
	if m.Frequency <= 0 {
		return errors.NewInvalid("frequency must be positive, got %v", m.Frequency)
	}
	for name, a := range map[string]Antenna{"enbAntenna": m.EnbAntenna, "ueAntenna": m.UeAntenna} {
		if a.Rows == 0 || a.Columns == 0 {
			return errors.NewInvalid("%s needs at least one row and one column, got %dx%d", name, a.Rows, a.Columns)
		}
	}
	return nil
}
