package metrics

import "time"

type Provider interface {
	IncrementHTTPRequests(method, path, status string)
	RecordHTTPRequestDuration(method, path, status string, duration time.Duration)
	IncrementUserOperations(operation string, success bool)
	IncrementPostOperations(operation string, success bool)
	IncrementTagOperations(operation string, success bool)
	SetServiceHealth(healthy bool)
}
