// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package scenario holds the named two-cell geometries a run can be placed in.
package scenario

import (
	"sort"

	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Node names; enb0 serves ue0 while enb1 serves ue1 and interferes with ue0
const (
	ServingEnb  = "enb0"
	ServingUe   = "ue0"
	InterferEnb = "enb1"
	InterferUe  = "ue1"
)

const defaultDowntilt = 12.0

// Scenario is a placement of two eNBs and two UEs.
// Bearing and downtilt are in degrees.
type Scenario struct {
	Name  string
	Nodes map[string]model.Node
}

var scenarios = map[string]Scenario{
	"ParkingLot-old": {
		Name: "ParkingLot-old",
		Nodes: map[string]model.Node{
			ServingEnb:  {Position: model.Vector{X: 22, Y: 32, Z: 3}, Bearing: -76.2107, Downtilt: defaultDowntilt},
			InterferEnb: {Position: model.Vector{X: 32, Y: -37, Z: 3}, Bearing: 105.826, Downtilt: defaultDowntilt},
			ServingUe:   {Position: model.Vector{X: 40, Y: 50, Z: 1.6}},
			InterferUe:  {Position: model.Vector{X: 0, Y: 0, Z: 1.5}},
		},
	},
	"ParkingLotCars": {
		Name: "ParkingLotCars",
		Nodes: map[string]model.Node{
			ServingEnb:  {Position: model.Vector{X: 40, Y: 55, Z: 3}, Bearing: -76.2107, Downtilt: defaultDowntilt},
			InterferEnb: {Position: model.Vector{X: 55, Y: -13, Z: 3}, Bearing: 105.826, Downtilt: defaultDowntilt},
			ServingUe:   {Position: model.Vector{X: 40, Y: 56, Z: 1.5}},
			InterferUe:  {Position: model.Vector{X: 20, Y: 15, Z: 1.5}},
		},
	},
	"L-Room": {
		Name: "L-Room",
		Nodes: map[string]model.Node{
			ServingEnb:  {Position: model.Vector{X: 0.1, Y: 3, Z: 2.5}, Bearing: -90, Downtilt: defaultDowntilt},
			InterferEnb: {Position: model.Vector{X: 8, Y: 18.8, Z: 2.5}, Bearing: 0, Downtilt: defaultDowntilt},
			ServingUe:   {Position: model.Vector{X: 0.5, Y: 3, Z: 1.5}},
			InterferUe:  {Position: model.Vector{X: 8, Y: 2.5, Z: 1.5}},
		},
	},
}

// Names lists the supported scenarios
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the named scenario
func Get(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, errors.NewNotFound("Unsupported scenario %q, expected one of %v", name, Names())
	}
	nodes := make(map[string]model.Node, len(s.Nodes))
	for id, n := range s.Nodes {
		nodes[id] = n
	}
	return Scenario{Name: s.Name, Nodes: nodes}, nil
}

// Load returns the scenario named in m with the node placements of m applied on top
func Load(m *model.Model) (Scenario, error) {
	s, err := Get(m.Scenario)
	if err != nil {
		return Scenario{}, err
	}
	for id, n := range m.Nodes {
		if _, ok := s.Nodes[id]; !ok {
			return Scenario{}, errors.NewNotFound("scenario %s has no node %s", s.Name, id)
		}
		log.Infof("Overriding %s placement in %s: %+v", id, s.Name, n)
		s.Nodes[id] = n
	}
	return s, nil
}

// IsEnb reports whether the node is a base station
func IsEnb(id string) bool {
	return id == ServingEnb || id == InterferEnb
}
