// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package statistics

import (
	"math"
	"sort"

	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultOutageThresholdDb is the SINR below which a sample counts as an outage
const DefaultOutageThresholdDb = 0.0

// Summary of the samples of a run; all values in dB except Count and Outage
type Summary struct {
	Count      int     `json:"count" yaml:"count"`
	SnrMean    float64 `json:"snrMean" yaml:"snrMean"`
	SnrStdDev  float64 `json:"snrStdDev" yaml:"snrStdDev"`
	SinrMean   float64 `json:"sinrMean" yaml:"sinrMean"`
	SinrStdDev float64 `json:"sinrStdDev" yaml:"sinrStdDev"`
	SinrMin    float64 `json:"sinrMin" yaml:"sinrMin"`
	SinrMax    float64 `json:"sinrMax" yaml:"sinrMax"`
	SinrP5     float64 `json:"sinrP5" yaml:"sinrP5"`
	SinrMedian float64 `json:"sinrMedian" yaml:"sinrMedian"`
	// Outage is the fraction of samples whose SINR is below the threshold
	Outage float64 `json:"outage" yaml:"outage"`
}

// Summarize computes the statistics of samples
func Summarize(samples []sampler.Sample, outageThresholdDb float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, errors.NewInvalid("no samples to summarize")
	}
	snr := make([]float64, len(samples))
	sinr := make([]float64, len(samples))
	outages := 0
	for i, s := range samples {
		snr[i] = s.SnrDb
		sinr[i] = s.SinrDb
		if s.SinrDb < outageThresholdDb {
			outages++
		}
	}

	sorted := make([]float64, len(sinr))
	copy(sorted, sinr)
	sort.Float64s(sorted)

	return Summary{
		Count:      len(samples),
		SnrMean:    stat.Mean(snr, nil),
		SnrStdDev:  stdDev(snr),
		SinrMean:   stat.Mean(sinr, nil),
		SinrStdDev: stdDev(sinr),
		SinrMin:    floats.Min(sinr),
		SinrMax:    floats.Max(sinr),
		SinrP5:     stat.Quantile(0.05, stat.Empirical, sorted, nil),
		SinrMedian: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Outage:     float64(outages) / float64(len(samples)),
	}, nil
}

// sample standard deviation, zero for a single value
func stdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	sd := stat.StdDev(x, nil)
	if math.IsNaN(sd) {
		return 0
	}
	return sd
}
