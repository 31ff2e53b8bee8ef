// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package device models the radios of a run: a position and a steerable antenna array.
package device

import (
	"time"

	"github.com/nfvri/ran-beam-sampler/pkg/angles"
	"github.com/nfvri/ran-beam-sampler/pkg/antenna"
	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Kind distinguishes base stations from user equipment
type Kind string

const (
	Enb Kind = "enb"
	Ue  Kind = "ue"
)

// Device is a radio with a fixed position and a beamforming antenna array
type Device struct {
	id       string
	kind     Kind
	position model.Vector
	array    *antenna.Array
	beam     angles.Angles

	clock        sampler.Clock
	updatePeriod time.Duration
	lastUpdate   time.Duration
	lastTarget   string
	steered      bool
}

// Option configures a Device
type Option func(*Device)

// WithBeamUpdatePeriod skips beam refreshes toward the same target that are
// closer than period to the previous one, as measured by clock.
func WithBeamUpdatePeriod(period time.Duration, clock sampler.Clock) Option {
	return func(d *Device) {
		d.updatePeriod = period
		d.clock = clock
	}
}

// NewDevice returns a device whose beam initially points along the array boresight
func NewDevice(id string, kind Kind, position model.Vector, array *antenna.Array, opts ...Option) *Device {
	d := &Device{
		id:       id,
		kind:     kind,
		position: position,
		array:    array,
	}
	if array != nil {
		d.beam = angles.New(array.Bearing, angles.Default().Theta+array.Downtilt)
	} else {
		d.beam = angles.Default()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) ID() string {
	return d.id
}

func (d *Device) Kind() Kind {
	return d.kind
}

func (d *Device) Position() (model.Vector, error) {
	return d.position, nil
}

// Array returns the antenna array; nil for a device without one
func (d *Device) Array() *antenna.Array {
	return d.array
}

// Beam returns the direction the array is currently steered toward
func (d *Device) Beam() angles.Angles {
	return d.beam
}

// ConfigureBeamforming steers the array toward target
func (d *Device) ConfigureBeamforming(target sampler.Participant) error {
	if d.array == nil {
		return errors.NewInvalid("device %s has no antenna array", d.id)
	}
	if d.clock != nil && d.steered && d.lastTarget == target.ID() && d.clock.Now()-d.lastUpdate < d.updatePeriod {
		return nil
	}
	to, err := target.Position()
	if err != nil {
		return err
	}
	beam, err := angles.FromVectorWithOrigin(to, d.position)
	if err != nil {
		return errors.NewInvalid("device %s cannot steer toward %s: %v", d.id, target.ID(), err)
	}
	d.beam = beam
	d.steered = true
	d.lastTarget = target.ID()
	if d.clock != nil {
		d.lastUpdate = d.clock.Now()
	}
	log.Debugf("%s beam toward %s: %v", d.id, target.ID(), beam)
	return nil
}

// AntennaGain returns the gain in dB toward direction with the current beam;
// a device without an array radiates isotropically.
func (d *Device) AntennaGain(direction angles.Angles) float64 {
	if d.array == nil {
		return 0
	}
	return d.array.Gain(direction, d.beam)
}
