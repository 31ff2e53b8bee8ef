// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nfvri/ran-beam-sampler/pkg/utils"
)

// Progress keeps a one-line file with the simulated time reached so far, in
// seconds, for an external progress bar. Done resets it to 0.
type Progress struct {
	path string
}

func NewProgress(path string) *Progress {
	return &Progress{path: path}
}

func (p *Progress) Path() string {
	return p.path
}

// Update truncates the file and writes now
func (p *Progress) Update(now time.Duration) error {
	return p.write(strconv.FormatFloat(utils.RoundToDecimal(now.Seconds(), 6), 'f', -1, 64))
}

// Done marks the run as finished
func (p *Progress) Done() error {
	return p.write("0")
}

func (p *Progress) write(value string) (err error) {
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)
	_, err = fmt.Fprintln(f, value)
	return err
}

// ReadProgress returns the value last written to a progress file
func ReadProgress(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
