// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package channel provides the propagation models used by the sampler.
package channel

import (
	"math"

	"github.com/nfvri/ran-beam-sampler/pkg/angles"
	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/nfvri/ran-beam-sampler/pkg/spectrum"
	"github.com/nfvri/ran-beam-sampler/pkg/utils"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Radiator is a participant with a directional antenna.
// Participants that do not implement it are treated as isotropic.
type Radiator interface {
	sampler.Participant
	AntennaGain(direction angles.Angles) float64
}

// FreeSpace is a line-of-sight Friis channel with antenna gains on both ends
type FreeSpace struct {
	Frequency float64 // Hz
}

// NewFreeSpace returns a free-space channel at the given carrier frequency
func NewFreeSpace(frequencyHz float64) (*FreeSpace, error) {
	if frequencyHz <= 0 {
		return nil, errors.NewInvalid("carrier frequency must be positive, got %v", frequencyHz)
	}
	return &FreeSpace{Frequency: frequencyHz}, nil
}

// FreeSpacePathLoss returns the Friis path loss in dB.
// 20log10(4*pi*d*f/c)
func FreeSpacePathLoss(distance, frequency float64) float64 {
	return 20*math.Log10(distance) + 20*math.Log10(frequency) + 20*math.Log10(4*math.Pi/utils.SpeedOfLight)
}

// CalcRxPowerSpectralDensity scales txPsd by the antenna gains and the path loss between tx and rx
func (c *FreeSpace) CalcRxPowerSpectralDensity(txPsd spectrum.Value, tx, rx sampler.Participant) (spectrum.Value, error) {
	txPos, err := tx.Position()
	if err != nil {
		return spectrum.Value{}, err
	}
	rxPos, err := rx.Position()
	if err != nil {
		return spectrum.Value{}, err
	}
	toRx, err := angles.FromVectorWithOrigin(rxPos, txPos)
	if err != nil {
		return spectrum.Value{}, errors.NewInvalid("%s and %s are co-located", tx.ID(), rx.ID())
	}
	toTx, err := angles.FromVectorWithOrigin(txPos, rxPos)
	if err != nil {
		return spectrum.Value{}, errors.NewInvalid("%s and %s are co-located", tx.ID(), rx.ID())
	}

	txGain := gain(tx, toRx)
	rxGain := gain(rx, toTx)
	pathLoss := FreeSpacePathLoss(txPos.Sub(rxPos).Length(), c.Frequency)
	// no gain from the channel itself in the near field
	pathLoss = math.Max(pathLoss, 0)

	totalDb := txGain + rxGain - pathLoss
	log.Debugf("%s->%s txGain: %v rxGain: %v pathLoss: %v", tx.ID(), rx.ID(), txGain, rxGain, pathLoss)
	return txPsd.Scale(utils.DbToLinear(totalDb)), nil
}

func gain(p sampler.Participant, direction angles.Angles) float64 {
	if r, ok := p.(Radiator); ok {
		return r.AntennaGain(direction)
	}
	return 0
}
