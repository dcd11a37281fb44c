// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package cache provides the small mutable data structures shared by the
// enrichment subsystem: a bucketed sliding-window counter for per-source
// rate limiting and a TTL map for response caching. Both take an injectable
// clock so window and expiry behavior is deterministic under test.
package cache

import (
	"sync"
	"time"
)

// Clock abstracts time for deterministic tests. The zero value is not
// usable; use RealClock outside tests.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall-clock implementation of Clock.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }

// SlidingWindowCounter counts events over a trailing window by dividing
// time into buckets and summing them. Increment is O(1); Count is O(k)
// for k buckets.
type SlidingWindowCounter struct {
	mu         sync.Mutex
	buckets    []int64
	bucketSize time.Duration
	windowSize time.Duration
	numBuckets int
	current    int
	lastUpdate time.Time
	clock      Clock
}

// NewSlidingWindowCounter creates a counter over the given window divided
// into numBuckets buckets. A nil clock falls back to the wall clock.
func NewSlidingWindowCounter(windowSize time.Duration, numBuckets int, clock Clock) *SlidingWindowCounter {
	if numBuckets <= 0 {
		numBuckets = 12
	}
	if windowSize <= 0 {
		windowSize = time.Minute
	}
	if clock == nil {
		clock = RealClock{}
	}

	return &SlidingWindowCounter{
		buckets:    make([]int64, numBuckets),
		bucketSize: windowSize / time.Duration(numBuckets),
		windowSize: windowSize,
		numBuckets: numBuckets,
		lastUpdate: clock.Now(),
		clock:      clock,
	}
}

// Increment adds delta to the current bucket.
func (sw *SlidingWindowCounter) Increment(delta int64) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.advance()
	sw.buckets[sw.current] += delta
}

// IncrementOne adds 1 to the current bucket.
func (sw *SlidingWindowCounter) IncrementOne() {
	sw.Increment(1)
}

// Count returns the sum of all buckets in the window.
func (sw *SlidingWindowCounter) Count() int64 {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.advance()

	var total int64
	for _, count := range sw.buckets {
		total += count
	}
	return total
}

// Reset clears all buckets.
func (sw *SlidingWindowCounter) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	for i := range sw.buckets {
		sw.buckets[i] = 0
	}
	sw.current = 0
	sw.lastUpdate = sw.clock.Now()
}

// advance rotates the window forward based on elapsed time.
// Must be called with the lock held.
func (sw *SlidingWindowCounter) advance() {
	now := sw.clock.Now()
	elapsed := now.Sub(sw.lastUpdate)

	bucketsElapsed := int(elapsed / sw.bucketSize)
	if bucketsElapsed <= 0 {
		return
	}

	if bucketsElapsed >= sw.numBuckets {
		for i := range sw.buckets {
			sw.buckets[i] = 0
		}
		sw.current = 0
	} else {
		for i := 0; i < bucketsElapsed; i++ {
			sw.current = (sw.current + 1) % sw.numBuckets
			sw.buckets[sw.current] = 0
		}
	}

	sw.lastUpdate = now
}

// SlidingWindowStore manages sliding-window counters by key, one per
// external source or user. Keys are independent; there is no cross-key
// coordination.
type SlidingWindowStore struct {
	mu         sync.RWMutex
	counters   map[string]*SlidingWindowCounter
	windowSize time.Duration
	numBuckets int
	clock      Clock
}

// NewSlidingWindowStore creates a store of per-key counters.
func NewSlidingWindowStore(windowSize time.Duration, numBuckets int, clock Clock) *SlidingWindowStore {
	if clock == nil {
		clock = RealClock{}
	}
	return &SlidingWindowStore{
		counters:   make(map[string]*SlidingWindowCounter),
		windowSize: windowSize,
		numBuckets: numBuckets,
		clock:      clock,
	}
}

// Increment adds 1 to the counter for the given key, creating it if needed.
func (s *SlidingWindowStore) Increment(key string) {
	s.counter(key).IncrementOne()
}

// Count returns the trailing-window count for the given key.
func (s *SlidingWindowStore) Count(key string) int64 {
	s.mu.RLock()
	counter, exists := s.counters[key]
	s.mu.RUnlock()

	if !exists {
		return 0
	}
	return counter.Count()
}

// Len returns the number of tracked keys.
func (s *SlidingWindowStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.counters)
}

func (s *SlidingWindowStore) counter(key string) *SlidingWindowCounter {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, exists := s.counters[key]
	if !exists {
		counter = NewSlidingWindowCounter(s.windowSize, s.numBuckets, s.clock)
		s.counters[key] = counter
	}
	return counter
}
