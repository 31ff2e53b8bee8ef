// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package redis

import (
	"context"
	"sync"

	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/nfvri/ran-beam-sampler/pkg/statistics"
	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// MockedRedisStore is an in-memory Store
type MockedRedisStore struct {
	mu        sync.RWMutex
	samples   map[string][]sampler.Sample
	summaries map[string]statistics.Summary
}

func (s *MockedRedisStore) AppendSample(ctx context.Context, jobID string, sample sampler.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.samples == nil {
		s.samples = map[string][]sampler.Sample{}
	}
	s.samples[jobID] = append(s.samples[jobID], sample)
	return nil
}

func (s *MockedRedisStore) GetSamples(ctx context.Context, jobID string) ([]sampler.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	samples, ok := s.samples[jobID]
	if !ok {
		return nil, errors.NewNotFound("samples for job %s do not exist", jobID)
	}
	out := make([]sampler.Sample, len(samples))
	copy(out, samples)
	return out, nil
}

func (s *MockedRedisStore) AddSummary(ctx context.Context, jobID string, summary statistics.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summaries == nil {
		s.summaries = map[string]statistics.Summary{}
	}
	s.summaries[jobID] = summary
	return nil
}

func (s *MockedRedisStore) GetSummary(ctx context.Context, jobID string) (statistics.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[jobID]
	if !ok {
		return statistics.Summary{}, errors.NewNotFound("summary for job %s does not exist", jobID)
	}
	return summary, nil
}

func (s *MockedRedisStore) DeleteRun(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.samples, jobID)
	delete(s.summaries, jobID)
	return nil
}
