package metrics

import "time"

// NoopProvider discards every measurement. Used in tests and when metrics
// are disabled.
type NoopProvider struct{}

func NewNoopProvider() Provider {
	return &NoopProvider{}
}

func (p *NoopProvider) IncrementHTTPRequests(method, path, status string) {}

func (p *NoopProvider) RecordHTTPRequestDuration(method, path, status string, d time.Duration) {}

func (p *NoopProvider) IncrementUserOperations(operation string, success bool) {}

func (p *NoopProvider) IncrementPostOperations(operation string, success bool) {}

func (p *NoopProvider) IncrementTagOperations(operation string, success bool) {}

func (p *NoopProvider) SetServiceHealth(healthy bool) {}
