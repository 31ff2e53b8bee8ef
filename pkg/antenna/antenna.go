// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package antenna

import (
	"math"
	"sort"

	"github.com/nfvri/ran-beam-sampler/pkg/angles"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MinGainDb floors the gain in the nulls of the array factor
const MinGainDb = -200.0

// ElementPattern is the radiation power pattern of a single antenna element.
// Gain takes a direction in the element's local frame and returns dBi.
type ElementPattern interface {
	Gain(local angles.Angles) float64
}

// Isotropic radiates equally in all directions
type Isotropic struct{}

func (Isotropic) Gain(angles.Angles) float64 {
	return 0
}

// ThreeGpp is the element of ETSI TR 138 901 Table 7.3-1
type ThreeGpp struct {
	H3dBAngle              float64
	V3dBAngle              float64
	MaxGain                float64
	MaxAttenuationDB       float64
	VSideLobeAttenuationDB float64
}

// NewThreeGpp returns the element with the Table 7.3-1 parameters
func NewThreeGpp() ThreeGpp {
	return ThreeGpp{
		H3dBAngle:              65,
		V3dBAngle:              65,
		MaxGain:                8,
		MaxAttenuationDB:       30,
		VSideLobeAttenuationDB: 30,
	}
}

func (e ThreeGpp) Gain(local angles.Angles) float64 {
	verticalCut := zenithAttenuation(local.InclinationDegrees(), e.V3dBAngle, e.VSideLobeAttenuationDB)
	horizontalCut := azimuthAttenuation(local.AzimuthDegrees(), e.H3dBAngle, e.MaxAttenuationDB)
	return e.MaxGain - math.Min(-(verticalCut+horizontalCut), e.MaxAttenuationDB)
}

// ETSI TR 138 901 V16.1.0
// Vertical cut of the radiation power pattern (dB)
// Table 7.3-1: Radiation power pattern of a single antenna element
func zenithAttenuation(zenithAngle, theta3dB float64, slav float64) float64 {
	angleRatio := (zenithAngle - 90) / theta3dB
	a := 12 * math.Pow(angleRatio, 2)
	return -math.Min(a, slav)
}

// ETSI TR 138 901 V16.1.0
// Horizontal cut of the radiation power pattern (dB)
// Table 7.3-1: Radiation power pattern of a single antenna element
func azimuthAttenuation(azimuthAngle, phi3dB float64, aMax float64) float64 {
	angleRatio := azimuthAngle / phi3dB
	azAtt := 12 * math.Pow(angleRatio, 2)
	return -math.Min(azAtt, aMax)
}

// Cosine element; the exponents follow from the horizontal and vertical beamwidths in degrees
type Cosine struct {
	HorizontalBeamwidth float64
	VerticalBeamwidth   float64
	MaxGain             float64
}

// NewCosine returns a cosine element with 180 degree beamwidths
func NewCosine() Cosine {
	return Cosine{HorizontalBeamwidth: 180, VerticalBeamwidth: 180}
}

func (e Cosine) Gain(local angles.Angles) float64 {
	hExp := cosineExponent(e.HorizontalBeamwidth)
	vExp := cosineExponent(e.VerticalBeamwidth)
	h := math.Pow(math.Abs(math.Cos(local.Phi/2)), hExp)
	v := math.Pow(math.Abs(math.Cos((local.Theta-math.Pi/2)/2)), vExp)
	gain := 20 * math.Log10(h*v)
	return e.MaxGain + math.Max(gain, MinGainDb)
}

// exponent giving -3 dB at half the beamwidth
func cosineExponent(beamwidthDegrees float64) float64 {
	return -3 / (20 * math.Log10(math.Cos(angles.DegreesToRadians(beamwidthDegrees)/4)))
}

var elements = map[string]func() ElementPattern{
	"isotropic": func() ElementPattern { return Isotropic{} },
	"3gpp":      func() ElementPattern { return NewThreeGpp() },
	"cosine":    func() ElementPattern { return NewCosine() },
}

// NewElement returns the named element pattern
func NewElement(name string) (ElementPattern, error) {
	ctor, ok := elements[name]
	if !ok {
		return nil, errors.NewNotFound("unknown antenna element %q, expected one of %v", name, ElementNames())
	}
	return ctor(), nil
}

// ElementNames lists the supported element pattern names
func ElementNames() []string {
	names := make([]string, 0, len(elements))
	for name := range elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Array is a uniform planar array with half-wavelength spacing.
// Columns lie along the horizontal axis, rows along the vertical one.
type Array struct {
	Rows     uint32
	Columns  uint32
	Element  ElementPattern
	Bearing  float64 // rad, azimuth of the boresight
	Downtilt float64 // rad, positive tilts the boresight below the horizon
}

// NumElements returns rows x columns
func (a *Array) NumElements() int {
	return int(a.Rows * a.Columns)
}

// ToLocal returns a global direction expressed in the array frame,
// where the boresight is (0, π/2).
func (a *Array) ToLocal(global angles.Angles) angles.Angles {
	return angles.New(global.Phi-a.Bearing, global.Theta-a.Downtilt)
}

// Gain returns the gain in dBi toward direction when the beam is steered toward beam.
func (a *Array) Gain(direction, beam angles.Angles) float64 {
	local := a.ToLocal(direction)
	steer := a.ToLocal(beam)
	elementGain := a.Element.Gain(local)

	psiH := math.Pi * (math.Sin(local.Theta)*math.Sin(local.Phi) - math.Sin(steer.Theta)*math.Sin(steer.Phi))
	psiV := math.Pi * (math.Cos(local.Theta) - math.Cos(steer.Theta))
	af := float64(a.NumElements()) * arrayFactor(psiH, int(a.Columns)) * arrayFactor(psiV, int(a.Rows))
	if af <= 0 {
		return MinGainDb
	}
	gain := elementGain + 10*math.Log10(af)
	log.Debugf("element gain: %v array factor: %v direction: %v beam: %v", elementGain, af, direction, beam)
	return math.Max(gain, MinGainDb)
}

// normalized power array factor of n isotropic elements with phase difference psi
func arrayFactor(psi float64, n int) float64 {
	if n <= 1 {
		return 1
	}
	den := float64(n) * math.Sin(psi/2)
	if math.Abs(den) < 1e-12 {
		return 1
	}
	r := math.Sin(float64(n)*psi/2) / den
	return r * r
}
