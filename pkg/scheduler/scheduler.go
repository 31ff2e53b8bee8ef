// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package scheduler is a single-threaded discrete-event scheduler driven by simulated time.
package scheduler

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Func is the body of an event; a non-nil error ends the run
type Func func(ctx context.Context) error

// Clock is an abstraction of the simulated time
type Clock interface {
	// Now returns the current simulated time
	Now() time.Duration
}

// Scheduler runs events in order of time, ties in order of registration.
// It is not safe for concurrent use; events must be registered from the
// goroutine that calls Run, or before it.
type Scheduler struct {
	now      time.Duration
	seq      uint64
	queue    eventQueue
	executed uint64
}

// NewScheduler returns a scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulated time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of events not run yet
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Executed returns the number of events run so far
func (s *Scheduler) Executed() uint64 {
	return s.executed
}

// Schedule registers fn at absolute time at
func (s *Scheduler) Schedule(at time.Duration, fn Func) error {
	if fn == nil {
		return errors.NewInvalid("nil event")
	}
	if at < s.now {
		return errors.NewInvalid("event at %v is in the past, now is %v", at, s.now)
	}
	heap.Push(&s.queue, &event{at: at, seq: s.seq, fn: fn})
	s.seq++
	return nil
}

// ScheduleAfter registers fn delay after the current time
func (s *Scheduler) ScheduleAfter(delay time.Duration, fn Func) error {
	return s.Schedule(s.now+delay, fn)
}

// SchedulePeriodic registers fn at offset + i*step for i in [0, count)
func (s *Scheduler) SchedulePeriodic(step time.Duration, count int, offset time.Duration, fn Func) error {
	if step <= 0 {
		return errors.NewInvalid("step must be positive, got %v", step)
	}
	for i := 0; i < count; i++ {
		if err := s.Schedule(offset+time.Duration(i)*step, fn); err != nil {
			return err
		}
	}
	return nil
}

// Run executes events until none is left at or before stop.
// The first event error ends the run and is returned; a cancelled context
// ends it between two events.
func (s *Scheduler) Run(ctx context.Context, stop time.Duration) error {
	for s.queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			log.Warnf("Run interrupted at %v: %v", s.now, err)
			return err
		}
		next := s.queue[0]
		if next.at > stop {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.at
		s.executed++
		if err := next.fn(ctx); err != nil {
			return fmt.Errorf("event at %v: %w", next.at, err)
		}
	}
	if s.now < stop {
		s.now = stop
	}
	log.Debugf("Run stopped at %v after %d events, %d pending", s.now, s.executed, s.queue.Len())
	return nil
}

type event struct {
	at  time.Duration
	seq uint64
	fn  Func
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(*event))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}
