// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package angles represents directions in 3-D space as an azimuth/inclination
// pair and provides degree/radian conversions.
package angles

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nfvri/ran-beam-sampler/pkg/model"
)

var (
	// ErrZeroVector is returned when a direction is requested for a zero-length displacement.
	ErrZeroVector = errors.New("direction vector must be non-zero")

	// ErrParse is returned when the textual form is not "phi:theta".
	ErrParse = errors.New("angles: expected \"phi:theta\"")
)

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// DegreesToRadiansSlice converts every element; the result has the same length and order.
func DegreesToRadiansSlice(degrees []float64) []float64 {
	radians := make([]float64, 0, len(degrees))
	for _, d := range degrees {
		radians = append(radians, DegreesToRadians(d))
	}
	return radians
}

// RadiansToDegreesSlice converts every element; the result has the same length and order.
func RadiansToDegreesSlice(radians []float64) []float64 {
	degrees := make([]float64, 0, len(radians))
	for _, r := range radians {
		degrees = append(degrees, RadiansToDegrees(r))
	}
	return degrees
}

// Angles is a direction given by azimuth Phi and inclination Theta, both in radians.
// Phi is kept in (-π, π]. Theta is measured from the z axis and is not normalized.
type Angles struct {
	Phi   float64 `mapstructure:"phi"`
	Theta float64 `mapstructure:"theta"`
}

// Default returns the equatorial direction (0, π/2).
func Default() Angles {
	return New(0, math.Pi/2)
}

// New returns Angles with phi normalized.
func New(phi, theta float64) Angles {
	a := Angles{Phi: phi, Theta: theta}
	a.Normalize()
	return a
}

// FromVector returns the direction of v seen from the origin.
// v must be non-zero, otherwise ErrZeroVector is returned.
func FromVector(v model.Vector) (Angles, error) {
	return FromVectorWithOrigin(v, model.Vector{})
}

// FromVectorWithOrigin returns the direction of v seen from o.
// v and o must differ, otherwise ErrZeroVector is returned.
func FromVectorWithOrigin(v, o model.Vector) (Angles, error) {
	d := v.Sub(o)
	dist := d.Length()
	if dist == 0 {
		return Angles{}, ErrZeroVector
	}
	return New(math.Atan2(d.Y, d.X), math.Acos(d.Z/dist)), nil
}

// Normalize maps Phi into (-π, π].
func (a *Angles) Normalize() {
	phi := math.Mod(a.Phi+math.Pi, 2*math.Pi)
	if phi < 0 {
		phi += math.Pi
	} else {
		phi -= math.Pi
	}
	// fmod lands exact multiples of 2π on -π
	if phi <= -math.Pi {
		phi += 2 * math.Pi
	}
	a.Phi = phi
}

// SetPhi assigns the azimuth and re-normalizes.
func (a *Angles) SetPhi(phi float64) {
	a.Phi = phi
	a.Normalize()
}

// SetTheta assigns the inclination and re-normalizes.
func (a *Angles) SetTheta(theta float64) {
	a.Theta = theta
	a.Normalize()
}

// Sub returns the angular offset a - b with the azimuth difference wrapped into (-π, π].
func (a Angles) Sub(b Angles) Angles {
	return New(a.Phi-b.Phi, a.Theta-b.Theta)
}

// AzimuthDegrees returns Phi in degrees
func (a Angles) AzimuthDegrees() float64 {
	return RadiansToDegrees(a.Phi)
}

// InclinationDegrees returns Theta in degrees
func (a Angles) InclinationDegrees() float64 {
	return RadiansToDegrees(a.Theta)
}

func (a Angles) String() string {
	return fmt.Sprintf("(%v, %v)", a.Phi, a.Theta)
}

// Parse reads the "phi:theta" form. Any separator other than ':' is an ErrParse.
func Parse(s string) (Angles, error) {
	phiStr, thetaStr, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return Angles{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	phi, err := strconv.ParseFloat(strings.TrimSpace(phiStr), 64)
	if err != nil {
		return Angles{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	theta, err := strconv.ParseFloat(strings.TrimSpace(thetaStr), 64)
	if err != nil {
		return Angles{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	return New(phi, theta), nil
}

// MarshalText writes the "phi:theta" form accepted by Parse.
func (a Angles) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.Phi, 'g', -1, 64) + ":" + strconv.FormatFloat(a.Theta, 'g', -1, 64)), nil
}

// UnmarshalText reads the "phi:theta" form.
func (a *Angles) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
