// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nfvri/ran-beam-sampler/pkg/sampler"
	"github.com/nfvri/ran-beam-sampler/pkg/statistics"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Store keeps the samples and the summary of runs, keyed by job ID
type Store interface {
	AppendSample(ctx context.Context, jobID string, sample sampler.Sample) error
	GetSamples(ctx context.Context, jobID string) ([]sampler.Sample, error)
	AddSummary(ctx context.Context, jobID string, summary statistics.Summary) error
	GetSummary(ctx context.Context, jobID string) (statistics.Summary, error)
	DeleteRun(ctx context.Context, jobID string) error
}

type RedisStore struct {
	DB *goredis.Client
}

func samplesKey(jobID string) string { return jobID + "-Samples" }

func summaryKey(jobID string) string { return jobID + "-Summary" }

func InitClient(redisHost, redisPort string, db int, username, password string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Username: username,
		Password: password,
		DB:       db,
	})
}

// Connect pings the server with exponential backoff until it answers or maxElapsed passes
func Connect(ctx context.Context, client *goredis.Client, maxElapsed time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := client.Ping(ctx).Err()
		if err != nil {
			log.Warnf("redis %s not reachable (attempt %d): %v", client.Options().Addr, attempt, err)
		}
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return errors.NewUnavailable("redis %s unavailable: %v", client.Options().Addr, err)
	}
	log.Infof("Connected to redis %s", client.Options().Addr)
	return nil
}

func (s *RedisStore) AppendSample(ctx context.Context, jobID string, sample sampler.Sample) error {
	sampleBytes, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %v ", err)
	}
	return s.DB.RPush(ctx, samplesKey(jobID), sampleBytes).Err()
}

func (s *RedisStore) GetSamples(ctx context.Context, jobID string) ([]sampler.Sample, error) {
	entries, err := s.DB.LRange(ctx, samplesKey(jobID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error fetching samples for job %s: %v", jobID, err)
	}
	if len(entries) == 0 {
		return nil, errors.NewNotFound("samples for job %s do not exist", jobID)
	}

	samples := make([]sampler.Sample, 0, len(entries))
	for _, entry := range entries {
		sample := sampler.Sample{}
		if err := json.Unmarshal([]byte(entry), &sample); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sample: %v ", err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (s *RedisStore) AddSummary(ctx context.Context, jobID string, summary statistics.Summary) error {
	summaryBytes, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %v ", err)
	}
	return s.DB.Set(ctx, summaryKey(jobID), summaryBytes, time.Duration(0)).Err()
}

func (s *RedisStore) GetSummary(ctx context.Context, jobID string) (statistics.Summary, error) {
	summaryBytes, err := s.DB.Get(ctx, summaryKey(jobID)).Result()
	if err == goredis.Nil {
		return statistics.Summary{}, errors.NewNotFound("summary for job %s does not exist", jobID)
	}
	if err != nil {
		return statistics.Summary{}, fmt.Errorf("error fetching summary for job %s: %v", jobID, err)
	}

	summary := statistics.Summary{}
	if err := json.Unmarshal([]byte(summaryBytes), &summary); err != nil {
		return statistics.Summary{}, fmt.Errorf("failed to unmarshal summary: %v ", err)
	}
	return summary, nil
}

func (s *RedisStore) DeleteRun(ctx context.Context, jobID string) error {
	return s.DB.Del(ctx, samplesKey(jobID), summaryKey(jobID)).Err()
}

// Sink adapts a Store to a sampler.Sink for one job
type Sink struct {
	store Store
	jobID string
}

func NewSink(store Store, jobID string) *Sink {
	return &Sink{store: store, jobID: jobID}
}

func (s *Sink) Append(ctx context.Context, sample sampler.Sample) error {
	return s.store.AppendSample(ctx, s.jobID, sample)
}
