// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sinr-trace.txt")
	w := NewWriter(path)
	assert.Equal(t, path, w.Path())
	require.NoError(t, w.Init())

	require.NoError(t, w.Append(context.Background(), sampler.Sample{Time: 2500 * time.Microsecond, SnrDb: 20, SinrDb: 10}))
	require.NoError(t, w.Append(context.Background(), sampler.Sample{Time: 7500 * time.Microsecond, SnrDb: 19.5, SinrDb: -3.25}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, "0.0025 20 10", lines[1])
	assert.Equal(t, "0.0075 19.5 -3.25", lines[2])

	samples, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 7500*time.Microsecond, samples[1].Time)
	assert.Equal(t, -3.25, samples[1].SinrDb)
}

func TestInitTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	w := NewWriter(path)
	require.NoError(t, w.Init())
	require.NoError(t, w.Append(context.Background(), sampler.Sample{Time: time.Millisecond}))
	require.NoError(t, w.Init())

	samples, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestAppendWithoutInit(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing", "trace.txt"))
	assert.Error(t, w.Append(context.Background(), sampler.Sample{}))
}

func TestCloseError(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "trace.txt"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	err = nil
	closeFile(f, &err)
	assert.ErrorIs(t, err, os.ErrClosed)

	// an earlier error is kept
	first := errors.NewInvalid("write failed")
	err = first
	closeFile(f, &err)
	assert.Equal(t, first, err)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadFile(filepath.Join(dir, "none.txt"))
	assert.True(t, errors.IsNotFound(err))

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("time snr sinr\n0.1 2 3\n"), 0644))
	_, err = ReadFile(bad)
	assert.True(t, errors.IsInvalid(err))

	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(short, []byte(Header+"\n0.1 2\n"), 0644))
	_, err = ReadFile(short)
	assert.True(t, errors.IsInvalid(err))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = ReadFile(empty)
	assert.True(t, errors.IsInvalid(err))
}
