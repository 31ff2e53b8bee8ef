// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package angles

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nfvri/ran-beam-sampler/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func TestDefault(t *testing.T) {
	a := Default()
	assert.Equal(t, 0.0, a.Phi)
	assert.Equal(t, math.Pi/2, a.Theta)
}

func TestConversionRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 45, 90, 180, -180, 360, 720.5, -76.2107, 105.826, 1e-9, 1e12}
	for _, x := range values {
		tol := 1e-9 * math.Max(1, math.Abs(x))
		assert.InDelta(t, x, RadiansToDegrees(DegreesToRadians(x)), tol, "degrees %v", x)
		assert.InDelta(t, x, DegreesToRadians(RadiansToDegrees(x)), tol, "radians %v", x)
	}
	assert.InDelta(t, math.Pi, DegreesToRadians(180), eps)
	assert.InDelta(t, 90.0, RadiansToDegrees(math.Pi/2), eps)
}

func TestSliceConversions(t *testing.T) {
	assert.Len(t, DegreesToRadiansSlice(nil), 0)
	assert.NotNil(t, DegreesToRadiansSlice([]float64{}))
	assert.Len(t, RadiansToDegreesSlice([]float64{}), 0)

	degrees := []float64{0, 90, -180, 12}
	radians := DegreesToRadiansSlice(degrees)
	require.Len(t, radians, len(degrees))
	for i := range degrees {
		assert.Equal(t, DegreesToRadians(degrees[i]), radians[i])
	}
	back := RadiansToDegreesSlice(radians)
	require.Len(t, back, len(degrees))
	for i := range degrees {
		assert.InDelta(t, degrees[i], back[i], 1e-9)
	}
}

func TestNormalizeRange(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	values := []float64{0, math.Pi, -math.Pi, 2 * math.Pi, -2 * math.Pi, 3 * math.Pi, -3 * math.Pi, 1e6, -1e6, math.Pi / 2, -math.Pi / 2}
	for i := 0; i < 1000; i++ {
		values = append(values, (r.Float64()-0.5)*200)
	}
	for _, phi := range values {
		a := New(phi, 0)
		assert.Greater(t, a.Phi, -math.Pi, "phi %v", phi)
		assert.LessOrEqual(t, a.Phi, math.Pi, "phi %v", phi)
		// same direction
		assert.InDelta(t, math.Cos(phi), math.Cos(a.Phi), 1e-6, "phi %v", phi)
		assert.InDelta(t, math.Sin(phi), math.Sin(a.Phi), 1e-6, "phi %v", phi)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := New((r.Float64()-0.5)*100, r.Float64()*math.Pi)
		b := a
		b.Normalize()
		assert.InDelta(t, a.Phi, b.Phi, eps)
		assert.Equal(t, a.Theta, b.Theta)
	}
	a := New(math.Pi, 1)
	assert.Equal(t, math.Pi, a.Phi)
	a.Normalize()
	assert.Equal(t, math.Pi, a.Phi)
}

func TestNormalizeValues(t *testing.T) {
	assert.InDelta(t, -math.Pi/2, New(3*math.Pi/2, 0).Phi, eps)
	assert.InDelta(t, math.Pi/2, New(-3*math.Pi/2, 0).Phi, eps)
	assert.InDelta(t, math.Pi, New(-math.Pi, 0).Phi, eps)
	assert.InDelta(t, 0.0, New(4*math.Pi, 0).Phi, eps)
	// theta is left alone
	assert.Equal(t, 7.0, New(0, 7).Theta)
}

func TestSetters(t *testing.T) {
	a := Default()
	a.SetPhi(5 * math.Pi / 2)
	assert.InDelta(t, math.Pi/2, a.Phi, eps)
	a.Phi = 3 * math.Pi
	a.SetTheta(0.25)
	assert.InDelta(t, math.Pi, a.Phi, eps)
	assert.Equal(t, 0.25, a.Theta)
}

func TestFromVector(t *testing.T) {
	a, err := FromVector(model.Vector{X: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, a.Phi, eps)
	assert.InDelta(t, math.Pi/2, a.Theta, eps)

	a, err = FromVector(model.Vector{Z: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, a.Theta, eps)

	a, err = FromVector(model.Vector{X: -1})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, a.Phi, eps)
	assert.InDelta(t, math.Pi/2, a.Theta, eps)

	a, err = FromVector(model.Vector{Y: -2})
	require.NoError(t, err)
	assert.InDelta(t, -math.Pi/2, a.Phi, eps)

	a, err = FromVector(model.Vector{X: 1, Y: 1, Z: -math.Sqrt2})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, a.Phi, eps)
	assert.InDelta(t, 3*math.Pi/4, a.Theta, eps)
}

func TestFromVectorWithOrigin(t *testing.T) {
	a, err := FromVectorWithOrigin(model.Vector{X: 1, Y: 1, Z: 1}, model.Vector{X: 1, Y: 1})
	require.NoError(t, err)
	b, err := FromVector(model.Vector{Z: 1})
	require.NoError(t, err)
	assert.InDelta(t, b.Phi, a.Phi, eps)
	assert.InDelta(t, b.Theta, a.Theta, eps)

	a, err = FromVectorWithOrigin(model.Vector{X: 40, Y: 56, Z: 1.5}, model.Vector{X: 40, Y: 55, Z: 3})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, a.Phi, eps)
	assert.Greater(t, a.Theta, math.Pi/2)
}

func TestFromZeroVector(t *testing.T) {
	_, err := FromVector(model.Vector{})
	assert.ErrorIs(t, err, ErrZeroVector)

	p := model.Vector{X: 3, Y: -2, Z: 1}
	_, err = FromVectorWithOrigin(p, p)
	assert.ErrorIs(t, err, ErrZeroVector)
}

func TestString(t *testing.T) {
	assert.Equal(t, "(0, 1.5)", New(0, 1.5).String())
	assert.Equal(t, "(-1, 2)", New(-1, 2).String())
}

func TestParse(t *testing.T) {
	a, err := Parse("1.0:2.0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a.Phi)
	assert.Equal(t, 2.0, a.Theta)

	a, err = Parse(" -0.5 : 0.25 ")
	require.NoError(t, err)
	assert.Equal(t, -0.5, a.Phi)
	assert.Equal(t, 0.25, a.Theta)

	a, err = Parse("4:1")
	require.NoError(t, err)
	assert.InDelta(t, 4-2*math.Pi, a.Phi, eps)

	for _, bad := range []string{"1.0,2.0", "1.0 2.0", "1.0;2.0", "", "a:b", "1.0:", ":2"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrParse, "input %q", bad)
	}
}

func TestTextRoundTrip(t *testing.T) {
	a := New(-2.5, 0.75)
	text, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "-2.5:0.75", string(text))

	var b Angles
	require.NoError(t, b.UnmarshalText(text))
	assert.Equal(t, a, b)

	c := Default()
	assert.Error(t, c.UnmarshalText([]byte("1.0,2.0")))
}

func TestSub(t *testing.T) {
	d := New(math.Pi-0.1, 1).Sub(New(-math.Pi+0.1, 0.5))
	assert.InDelta(t, -0.2, d.Phi, 1e-9)
	assert.InDelta(t, 0.5, d.Theta, eps)
	assert.InDelta(t, 90.0, New(math.Pi/2, math.Pi/4).AzimuthDegrees(), 1e-9)
	assert.InDelta(t, 45.0, New(math.Pi/2, math.Pi/4).InclinationDegrees(), 1e-9)
}
