package metrics

import "github.com/docker/go-metrics"

const (
	// NamespacePrefix is the namespace of prometheus metrics
	NamespacePrefix = "integrity"
)

var (
	// ChainNamespace is the prometheus namespace of hash-chained store operations
	ChainNamespace = metrics.NewNamespace(NamespacePrefix, "chain", nil)

	// AppendCounter counts blocks appended to hash-chained stores
	AppendCounter = ChainNamespace.NewCounter("appends", "The number of blocks appended")

	// ValidationFailureCounter counts chain-integrity validation failures
	ValidationFailureCounter = ChainNamespace.NewCounter("validation_failures", "The number of block hash validation failures")

	// ValidationTimer tracks how long chain validation operations take
	ValidationTimer = ChainNamespace.NewLabeledTimer("validation", "The time it takes to validate blocks", "operation")
)

// Register exposes the namespace to the prometheus default registerer. It
// is the host application's call to make, once.
func Register() {
	metrics.Register(ChainNamespace)
}
