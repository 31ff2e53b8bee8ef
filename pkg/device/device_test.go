// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"math"
	"testing"
	"time"

	"github.com/nfvri/ran-beam-sampler/pkg/angles"
	"github.com/nfvri/ran-beam-sampler/pkg/antenna"
	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	now time.Duration
}

func (c *manualClock) Now() time.Duration { return c.now }

func newArray() *antenna.Array {
	return &antenna.Array{Rows: 4, Columns: 4, Element: antenna.Isotropic{}}
}

func TestInitialBeam(t *testing.T) {
	array := newArray()
	array.Bearing = math.Pi / 2
	array.Downtilt = angles.DegreesToRadians(12)
	d := NewDevice("enb0", Enb, model.Vector{}, array)
	assert.InDelta(t, math.Pi/2, d.Beam().Phi, 1e-12)
	assert.InDelta(t, math.Pi/2+array.Downtilt, d.Beam().Theta, 1e-12)
	assert.Equal(t, Enb, d.Kind())
}

func TestConfigureBeamforming(t *testing.T) {
	tx := NewDevice("enb0", Enb, model.Vector{X: 0, Y: 0, Z: 3}, newArray())
	rx := NewDevice("ue0", Ue, model.Vector{X: 0, Y: 10, Z: 3}, nil)

	require.NoError(t, tx.ConfigureBeamforming(rx))
	assert.InDelta(t, math.Pi/2, tx.Beam().Phi, 1e-12)
	assert.InDelta(t, math.Pi/2, tx.Beam().Theta, 1e-12)

	// full array gain toward the target, less elsewhere
	toward, err := angles.FromVectorWithOrigin(model.Vector{X: 0, Y: 10, Z: 3}, model.Vector{X: 0, Y: 0, Z: 3})
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log10(16), tx.AntennaGain(toward), 1e-9)
	assert.Less(t, tx.AntennaGain(angles.Default()), tx.AntennaGain(toward))

	// no array: isotropic and not steerable
	assert.Equal(t, 0.0, rx.AntennaGain(toward))
	assert.True(t, errors.IsInvalid(rx.ConfigureBeamforming(tx)))
}

func TestConfigureBeamformingColocated(t *testing.T) {
	tx := NewDevice("enb0", Enb, model.Vector{X: 1, Y: 1, Z: 1}, newArray())
	rx := NewDevice("ue0", Ue, model.Vector{X: 1, Y: 1, Z: 1}, nil)
	assert.True(t, errors.IsInvalid(tx.ConfigureBeamforming(rx)))
}

func TestBeamUpdatePeriod(t *testing.T) {
	clock := &manualClock{}
	tx := NewDevice("enb0", Enb, model.Vector{}, newArray(), WithBeamUpdatePeriod(time.Millisecond, clock))
	east := NewDevice("ue0", Ue, model.Vector{X: 10}, nil)
	north := NewDevice("ue1", Ue, model.Vector{Y: 10}, nil)

	require.NoError(t, tx.ConfigureBeamforming(east))
	assert.InDelta(t, 0.0, tx.Beam().Phi, 1e-12)

	// the target moved but the codebook is not refreshed yet
	east.position = model.Vector{X: -10}
	clock.now = 500 * time.Microsecond
	require.NoError(t, tx.ConfigureBeamforming(east))
	assert.InDelta(t, 0.0, tx.Beam().Phi, 1e-12)

	// a new target is always honoured
	require.NoError(t, tx.ConfigureBeamforming(north))
	assert.InDelta(t, math.Pi/2, tx.Beam().Phi, 1e-12)

	clock.now = 2 * time.Millisecond
	require.NoError(t, tx.ConfigureBeamforming(east))
	assert.InDelta(t, math.Pi, tx.Beam().Phi, 1e-12)
}
