// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package sampler computes the SNR and SINR of a directional link in the
// presence of one interfering link, once per scheduler tick.
package sampler

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/nfvri/ran-beam-sampler/pkg/spectrum"
	"github.com/nfvri/ran-beam-sampler/pkg/utils"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// PowerFloor is the smallest PSD bin sum (W/Hz summed over the bins) fed to a logarithm.
// Anything below it, including an all-zero PSD, is clamped to it.
const PowerFloor = 1e-30

// Participant is anything with a resolvable position
type Participant interface {
	ID() string
	Position() (model.Vector, error)
}

// Orientable is a participant whose antenna can be pointed at a target
type Orientable interface {
	Participant
	ConfigureBeamforming(target Participant) error
}

// PropagationModel produces the PSD received at rx when tx transmits txPsd
type PropagationModel interface {
	CalcRxPowerSpectralDensity(txPsd spectrum.Value, tx, rx Participant) (spectrum.Value, error)
}

// Clock reports the current simulated time
type Clock interface {
	Now() time.Duration
}

// Sink receives every sample, in tick order
type Sink interface {
	Append(ctx context.Context, sample Sample) error
}

// Sample is the link quality measured at one tick
type Sample struct {
	Time          time.Duration
	SnrDb         float64
	SinrDb        float64
	SignalW       float64
	NoiseW        float64
	InterferenceW float64
}

// Link groups the serving pair and the interfering pair
type Link struct {
	ServingTx Orientable
	ServingRx Orientable
	InterfTx  Orientable
	InterfRx  Orientable
}

// Sampler computes samples for one Link
type Sampler struct {
	link     Link
	channel  PropagationModel
	txPsd    spectrum.Value
	noisePsd spectrum.Value
	clock    Clock
	sinks    []Sink
}

// NewSampler returns a sampler; the PSDs and the link are fixed for its lifetime.
func NewSampler(link Link, channel PropagationModel, txPsd, noisePsd spectrum.Value, clock Clock, sinks ...Sink) *Sampler {
	return &Sampler{
		link:     link,
		channel:  channel,
		txPsd:    txPsd,
		noisePsd: noisePsd,
		clock:    clock,
		sinks:    sinks,
	}
}

// Tick measures the link at the current simulated time and hands the sample to every sink.
// Any error is a configuration error and ends the run.
func (s *Sampler) Tick(ctx context.Context) error {
	sample, err := s.Compute()
	if err != nil {
		return err
	}
	for _, sink := range s.sinks {
		if err := sink.Append(ctx, sample); err != nil {
			return fmt.Errorf("unable to record sample at %v: %w", sample.Time, err)
		}
	}
	return nil
}

// Compute measures the link without recording the sample.
func (s *Sampler) Compute() (Sample, error) {
	l := s.link
	for _, p := range []Participant{l.ServingTx, l.ServingRx, l.InterfTx, l.InterfRx} {
		if isNil(p) {
			return Sample{}, errors.NewInvalid("link participant is missing")
		}
		if _, err := p.Position(); err != nil {
			return Sample{}, errors.NewInvalid("participant %s has no position: %v", p.ID(), err)
		}
	}

	// only the transmitters are steered
	if err := l.ServingTx.ConfigureBeamforming(l.ServingRx); err != nil {
		return Sample{}, errors.NewInvalid("unable to steer %s toward %s: %v", l.ServingTx.ID(), l.ServingRx.ID(), err)
	}
	if err := l.InterfTx.ConfigureBeamforming(l.InterfRx); err != nil {
		return Sample{}, errors.NewInvalid("unable to steer %s toward %s: %v", l.InterfTx.ID(), l.InterfRx.ID(), err)
	}

	rxPsd, err := s.channel.CalcRxPowerSpectralDensity(s.txPsd, l.ServingTx, l.ServingRx)
	if err != nil {
		return Sample{}, fmt.Errorf("signal %s->%s: %w", l.ServingTx.ID(), l.ServingRx.ID(), err)
	}
	interfPsd, err := s.channel.CalcRxPowerSpectralDensity(s.txPsd, l.InterfTx, l.ServingRx)
	if err != nil {
		return Sample{}, fmt.Errorf("interference %s->%s: %w", l.InterfTx.ID(), l.ServingRx.ID(), err)
	}

	signal := rxPsd.Sum()
	noise := s.noisePsd.Sum()
	interference := interfPsd.Sum()
	snr, sinr := LinkQuality(signal, noise, interference)

	sample := Sample{
		Time:          s.clock.Now(),
		SnrDb:         snr,
		SinrDb:        sinr,
		SignalW:       signal * rxPsd.BinWidth,
		NoiseW:        noise * s.noisePsd.BinWidth,
		InterferenceW: interference * interfPsd.BinWidth,
	}
	log.Debugf("t=%v signal=%v noise=%v interference=%v snr=%v sinr=%v", sample.Time, signal, noise, interference, snr, sinr)
	return sample, nil
}

// LinkQuality returns SNR and SINR in dB from the PSD bin sums of signal, noise and interference:
// SNR = 10log10(S/N), SINR = 10log10(S/(N+I)).
// The bin width cancels out of both ratios. Sums below PowerFloor are clamped
// so the result is always finite; with zero interference SINR equals SNR.
func LinkQuality(signal, noise, interference float64) (snrDb float64, sinrDb float64) {
	signal = floorPower("signal", signal)
	noise = floorPower("noise", noise)
	if interference < 0 || math.IsNaN(interference) {
		log.Warnf("interference power %v is invalid, using 0", interference)
		interference = 0
	}
	snrDb = utils.LinearToDb(signal / noise)
	sinrDb = utils.LinearToDb(signal / (noise + interference))
	return snrDb, sinrDb
}

func floorPower(name string, p float64) float64 {
	if p < PowerFloor || math.IsNaN(p) {
		log.Warnf("%s power %v is below the floor, clamping to %v", name, p, PowerFloor)
		return PowerFloor
	}
	return p
}

// isNil also catches a nil pointer stored in the interface
func isNil(p Participant) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
