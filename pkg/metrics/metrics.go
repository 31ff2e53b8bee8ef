// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes the link quality of a run as Prometheus metrics.
package metrics

import (
	"context"

	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// SinrBuckets spans deep fade to line of sight, in dB
var SinrBuckets = prometheus.LinearBuckets(-20, 5, 13)

// Collector records every sample handed to it as a sampler.Sink
type Collector struct {
	registry *prometheus.Registry

	Samples  prometheus.Counter
	SnrDb    prometheus.Gauge
	SinrDb   prometheus.Gauge
	SinrHist prometheus.Histogram
	SimTime  prometheus.Gauge
}

// NewCollector registers the run metrics, labelled with the job ID, on a dedicated registry
func NewCollector(jobID string) (*Collector, error) {
	labels := prometheus.Labels{"job": jobID}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "sampler_samples_total",
			Help:        "Number of link quality samples taken.",
			ConstLabels: labels,
		}),
		SnrDb: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "sampler_snr_db",
			Help:        "SNR of the serving link at the last sample.",
			ConstLabels: labels,
		}),
		SinrDb: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "sampler_sinr_db",
			Help:        "SINR of the serving link at the last sample.",
			ConstLabels: labels,
		}),
		SinrHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "sampler_sinr_distribution_db",
			Help:        "Distribution of the SINR of the serving link.",
			Buckets:     SinrBuckets,
			ConstLabels: labels,
		}),
		SimTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "sampler_simulated_time_seconds",
			Help:        "Simulated time of the last sample.",
			ConstLabels: labels,
		}),
	}
	for _, collector := range []prometheus.Collector{c.Samples, c.SnrDb, c.SinrDb, c.SinrHist, c.SimTime} {
		if err := c.registry.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Gatherer returns the registry the metrics live in
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// Append updates the metrics with one sample
func (c *Collector) Append(ctx context.Context, sample sampler.Sample) error {
	c.Samples.Inc()
	c.SnrDb.Set(sample.SnrDb)
	c.SinrDb.Set(sample.SinrDb)
	c.SinrHist.Observe(sample.SinrDb)
	c.SimTime.Set(sample.Time.Seconds())
	return nil
}

// WriteToTextfile dumps the metrics in the text exposition format, for the node exporter textfile collector
func (c *Collector) WriteToTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, c.registry); err != nil {
		return err
	}
	log.Infof("Metrics written to %s", filename)
	return nil
}
