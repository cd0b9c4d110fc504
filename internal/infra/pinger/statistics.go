package pinger

import (
	"sync"
	"time"
)

// stats accumulates ping results for one component.
type stats struct {
	mu                sync.Mutex
	lastRun           time.Time
	lastLatency       time.Duration
	maxLatency        time.Duration
	lastError         error
	lastErrorAt       time.Time
	successCount      int
	errorCount        int
	consecutiveErrors int
}

func (s *stats) observe(at time.Time, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = at
	s.lastLatency = latency
	s.maxLatency = max(s.maxLatency, latency)
	s.lastError = err

	if err != nil {
		s.lastErrorAt = at
		s.errorCount++
		s.consecutiveErrors++

		return
	}

	s.successCount++
	s.consecutiveErrors = 0
}

// Statistics is a point-in-time view of a pinger's results.
type Statistics struct {
	IsReady           bool
	IsHealthy         bool
	LastRun           time.Time
	LastLatency       time.Duration
	MaxLatency        time.Duration
	LastError         error
	LastErrorAt       time.Time
	SuccessCount      int
	ErrorCount        int
	ConsecutiveErrors int
}

func (i *pingerInfo) statistics() *Statistics {
	s := i.stats

	s.mu.Lock()
	defer s.mu.Unlock()

	failing := s.lastError != nil

	return &Statistics{
		IsReady:           !i.readyCritical || !failing,
		IsHealthy:         !i.healthCritical || !failing,
		LastRun:           s.lastRun,
		LastLatency:       s.lastLatency,
		MaxLatency:        s.maxLatency,
		LastError:         s.lastError,
		LastErrorAt:       s.lastErrorAt,
		SuccessCount:      s.successCount,
		ErrorCount:        s.errorCount,
		ConsecutiveErrors: s.consecutiveErrors,
	}
}
