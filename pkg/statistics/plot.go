// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package statistics

import (
	"image/color"

	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotTrace draws SNR and SINR against time; the image format follows the file extension
func PlotTrace(samples []sampler.Sample, title, filename string) error {
	if len(samples) == 0 {
		return errors.NewInvalid("no samples to plot")
	}
	snr := make(plotter.XYs, len(samples))
	sinr := make(plotter.XYs, len(samples))
	for i, s := range samples {
		snr[i].X = s.Time.Seconds()
		snr[i].Y = s.SnrDb
		sinr[i].X = s.Time.Seconds()
		sinr[i].Y = s.SinrDb
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time [s]"
	p.Y.Label.Text = "[dB]"
	p.Add(plotter.NewGrid())

	snrLine, err := plotter.NewLine(snr)
	if err != nil {
		return err
	}
	snrLine.Color = color.RGBA{B: 255, A: 255}
	sinrLine, err := plotter.NewLine(sinr)
	if err != nil {
		return err
	}
	sinrLine.Color = color.RGBA{R: 255, A: 255}

	p.Add(snrLine, sinrLine)
	p.Legend.Add("SNR", snrLine)
	p.Legend.Add("SINR", sinrLine)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, filename); err != nil {
		return err
	}
	log.Infof("Trace plot saved to %s", filename)
	return nil
}

// PlotSinrDistribution draws the SINR histogram
func PlotSinrDistribution(samples []sampler.Sample, bins int, filename string) error {
	if len(samples) == 0 {
		return errors.NewInvalid("no samples to plot")
	}
	distribution := make(plotter.Values, len(samples))
	for i, s := range samples {
		distribution[i] = s.SinrDb
	}

	p := plot.New()
	p.Title.Text = "SINR distribution"
	p.X.Label.Text = "SINR [dB]"
	p.Y.Label.Text = "samples"

	h, err := plotter.NewHist(distribution, bins)
	if err != nil {
		return err
	}
	p.Add(h)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, filename); err != nil {
		return err
	}
	log.Infof("SINR distribution saved to %s", filename)
	return nil
}
