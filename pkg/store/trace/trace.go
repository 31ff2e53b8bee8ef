// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package trace writes and reads the plain-text SNR/SINR trace of a run.
package trace

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Header is the first line of every trace file
const Header = "time[s] snr[dB] sinr[dB]"

// Writer appends samples to a trace file. The file is opened and closed on
// every append so a crashed run still leaves every sample written so far.
type Writer struct {
	path string
}

// NewWriter returns a writer for path; nothing is touched until Init
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the trace file path
func (w *Writer) Path() string {
	return w.path
}

// Init truncates the file and writes the header
func (w *Writer) Init() (err error) {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)
	if _, err := fmt.Fprintln(f, Header); err != nil {
		return err
	}
	log.Infof("Writing trace to %s", w.path)
	return nil
}

// Append writes one "<time> <snr> <sinr>" line
func (w *Writer) Append(ctx context.Context, sample sampler.Sample) (err error) {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)
	_, err = fmt.Fprintf(f, "%v %v %v\n", sample.Time.Seconds(), sample.SnrDb, sample.SinrDb)
	return err
}

// closeFile closes f and reports the close error unless an earlier one is pending
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("unable to close %s: %w", f.Name(), cerr)
	}
}

// ReadFile parses a trace file written by Writer. Only time, SNR and SINR are recovered.
func ReadFile(path string) ([]sampler.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNotFound("trace %s: %v", path, err)
	}
	defer f.Close()

	samples := []sampler.Sample{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			if line != Header {
				return nil, errors.NewInvalid("%s: unexpected header %q", path, line)
			}
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.NewInvalid("%s:%d: expected 3 fields, got %d", path, lineNo, len(fields))
		}
		var values [3]float64
		for i, field := range fields {
			values[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.NewInvalid("%s:%d: %v", path, lineNo, err)
			}
		}
		samples = append(samples, sampler.Sample{
			Time:   time.Duration(math.Round(values[0] * float64(time.Second))),
			SnrDb:  values[1],
			SinrDb: values[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if lineNo == 0 {
		return nil, errors.NewInvalid("%s: empty trace", path)
	}
	return samples, nil
}
