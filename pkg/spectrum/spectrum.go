// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package spectrum holds power spectral densities sampled on equally wide frequency bins.
package spectrum

import (
	"github.com/nfvri/ran-beam-sampler/pkg/utils"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Value is a power spectral density: one W/Hz value per bin of BinWidth Hz
type Value struct {
	Bins     []float64
	BinWidth float64
}

// New returns an all-zero PSD of numBins bins covering bandwidthHz
func New(bandwidthHz float64, numBins int) (Value, error) {
	if numBins <= 0 || bandwidthHz <= 0 {
		return Value{}, errors.NewInvalid("invalid spectrum model: %d bins over %v Hz", numBins, bandwidthHz)
	}
	return Value{Bins: make([]float64, numBins), BinWidth: bandwidthHz / float64(numBins)}, nil
}

// NewTxPsd spreads txPowerDbm evenly over the active bins; an empty activeBins activates all of them.
func NewTxPsd(txPowerDbm, bandwidthHz float64, numBins int, activeBins []int) (Value, error) {
	v, err := New(bandwidthHz, numBins)
	if err != nil {
		return Value{}, err
	}
	if len(activeBins) == 0 {
		activeBins = make([]int, numBins)
		for i := range activeBins {
			activeBins[i] = i
		}
	}
	psd := utils.DbmToW(txPowerDbm) / (float64(len(activeBins)) * v.BinWidth)
	for _, b := range activeBins {
		if b < 0 || b >= numBins {
			return Value{}, errors.NewInvalid("active bin %d outside [0,%d)", b, numBins)
		}
		v.Bins[b] = psd
	}
	return v, nil
}

// NewNoisePsd returns the thermal noise floor kT raised by the receiver noise figure
func NewNoisePsd(noiseFigureDb, bandwidthHz float64, numBins int) (Value, error) {
	v, err := New(bandwidthHz, numBins)
	if err != nil {
		return Value{}, err
	}
	psd := utils.ThermalNoisePsd() * utils.DbToLinear(noiseFigureDb)
	for i := range v.Bins {
		v.Bins[i] = psd
	}
	return v, nil
}

// Sum adds the values of all bins
func (v Value) Sum() float64 {
	return floats.Sum(v.Bins)
}

// Power integrates the PSD over the band, in W
func (v Value) Power() float64 {
	return v.Sum() * v.BinWidth
}

// Scale returns a copy with every bin multiplied by gain
func (v Value) Scale(gain float64) Value {
	out := Value{Bins: make([]float64, len(v.Bins)), BinWidth: v.BinWidth}
	copy(out.Bins, v.Bins)
	floats.Scale(gain, out.Bins)
	return out
}

// Len returns the number of bins
func (v Value) Len() int {
	return len(v.Bins)
}
