package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	Fetched          int
	Stored           int
	Filtered         int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{StartTime: time.Now()}
}

// RecordStored adds written rows
func (m *IngestionMetrics) RecordStored(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stored += n
}

// RecordFiltered increments rows dropped on purpose
func (m *IngestionMetrics) RecordFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Filtered++
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// Finish stamps the run duration
func (m *IngestionMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.Fetched > 0 {
		successRate = float64(m.Stored) / float64(m.Fetched) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Fetched=%d, Stored=%d (%.1f%%), Filtered=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.Fetched,
		m.Stored,
		successRate,
		m.Filtered,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
