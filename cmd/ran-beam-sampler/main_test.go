// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunAndReport(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "--config", "../../pkg/model/test.yaml", "--output-dir", dir, "--job-id", "cli-job", "--plot", "trace.png")
	require.NoError(t, err)
	tracePath := filepath.Join(dir, "sinr-trace-cli-job.txt")
	assert.Contains(t, out, "trace: "+tracePath)
	assert.Contains(t, out, "samples: 3")
	assert.FileExists(t, filepath.Join(dir, "trace.png"))

	out, err = execute(t, "report", tracePath, "--histogram", filepath.Join(dir, "sinr.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "samples: 3")
	assert.FileExists(t, filepath.Join(dir, "sinr.png"))
}

func TestCoverage(t *testing.T) {
	out, err := execute(t, "coverage", "--config", "../../pkg/model/test.yaml", "--ref-snr", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "L-Room: SNR 10.00 dB at")
}

func TestUnsupportedScenario(t *testing.T) {
	_, err := execute(t, "run", "--config", "../../pkg/model/test.yaml", "--output-dir", t.TempDir(), "--scenario", "Highway")
	assert.Error(t, err)

	_, err = execute(t, "report")
	assert.Error(t, err)
}
