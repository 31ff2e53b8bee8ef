// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"testing"

	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	assert.Equal(t, []string{"L-Room", "ParkingLot-old", "ParkingLotCars"}, Names())

	s, err := Get("ParkingLotCars")
	require.NoError(t, err)
	assert.Len(t, s.Nodes, 4)
	assert.Equal(t, model.Vector{X: 40, Y: 55, Z: 3}, s.Nodes[ServingEnb].Position)
	assert.Equal(t, model.Vector{X: 20, Y: 15, Z: 1.5}, s.Nodes[InterferUe].Position)
	assert.Equal(t, -76.2107, s.Nodes[ServingEnb].Bearing)
	assert.Equal(t, 12.0, s.Nodes[InterferEnb].Downtilt)

	room, err := Get("L-Room")
	require.NoError(t, err)
	assert.Equal(t, -90.0, room.Nodes[ServingEnb].Bearing)
	assert.Equal(t, 0.0, room.Nodes[InterferEnb].Bearing)

	_, err = Get("Highway")
	assert.True(t, errors.IsNotFound(err))
}

func TestGetReturnsCopy(t *testing.T) {
	s, err := Get("L-Room")
	require.NoError(t, err)
	s.Nodes[ServingUe] = model.Node{}

	again, err := Get("L-Room")
	require.NoError(t, err)
	assert.Equal(t, model.Vector{X: 0.5, Y: 3, Z: 1.5}, again.Nodes[ServingUe].Position)
}

func TestLoad(t *testing.T) {
	m := &model.Model{
		Scenario: "L-Room",
		Nodes: map[string]model.Node{
			InterferUe: {Position: model.Vector{X: 8, Y: 3, Z: 1.5}},
		},
	}
	s, err := Load(m)
	require.NoError(t, err)
	assert.Equal(t, model.Vector{X: 8, Y: 3, Z: 1.5}, s.Nodes[InterferUe].Position)
	assert.Equal(t, model.Vector{X: 0.5, Y: 3, Z: 1.5}, s.Nodes[ServingUe].Position)

	m.Nodes = map[string]model.Node{"ue7": {}}
	_, err = Load(m)
	assert.True(t, errors.IsNotFound(err))

	assert.True(t, IsEnb(ServingEnb))
	assert.False(t, IsEnb(InterferUe))
}
