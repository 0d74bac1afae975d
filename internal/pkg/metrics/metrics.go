// Package metrics wraps the statsd client so handlers can increment request
// counters without caring whether a statsd daemon is configured.
package metrics

import (
	"github.com/cactus/go-statsd-client/v5/statsd"
	"github.com/rs/zerolog"
)

// Counter names, matching the counters the service emits per endpoint.
const (
	CounterHealth           = "Health"
	CounterCreateAssignment = "Create_Assignment"
	CounterUpdateAssignment = "Update_Assignment"
	CounterDeleteAssignment = "delete_Assignment"
	CounterGetAssignment    = "Get_Assignment"
	CounterListAssignments  = "Get_Assignment_List"
	CounterCreateSubmission = "Create_Submission"
)

// Client counts endpoint hits.
type Client interface {
	Incr(name string)
	Close() error
}

// statsdClient sends counters to a statsd daemon.
type statsdClient struct {
	statter statsd.Statter
	logger  zerolog.Logger
}

// NewStatsdClient connects to the statsd daemon at address. An empty address
// yields a no-op client so development setups need no daemon.
func NewStatsdClient(address, prefix string, logger zerolog.Logger) (Client, error) {
	if address == "" {
		logger.Info().Msg("Statsd address not configured, metrics disabled")
		return NoopClient{}, nil
	}

	statter, err := statsd.NewClientWithConfig(&statsd.ClientConfig{
		Address: address,
		Prefix:  prefix,
	})
	if err != nil {
		return nil, err
	}

	return &statsdClient{statter: statter, logger: logger}, nil
}

// Incr increments a counter by one. Send failures are logged and swallowed;
// metrics never fail a request.
func (c *statsdClient) Incr(name string) {
	if err := c.statter.Inc(name, 1, 1.0); err != nil {
		c.logger.Warn().Err(err).Str("counter", name).Msg("Failed to send statsd counter")
	}
}

// Close shuts down the underlying statsd connection.
func (c *statsdClient) Close() error {
	return c.statter.Close()
}

// NoopClient discards all counters.
type NoopClient struct{}

// Incr implements Client.
func (NoopClient) Incr(string) {}

// Close implements Client.
func (NoopClient) Close() error { return nil }
