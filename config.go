package reqflow

import "fmt"

// Config is a serialisable representation of the engine configuration. It
// can be populated from JSON, YAML, environment variables, etc. The
// zero-value is useful - all nested fields inherit their package defaults.

type Config struct {
	Sequence SequenceConfig `json:"sequence" yaml:"sequence"`
	Events   EventConfig    `json:"events" yaml:"events"`

	// DefinitionsURL optionally points at a YAML document replacing the
	// built-in workflow definitions.
	DefinitionsURL string `json:"definitionsURL,omitempty" yaml:"definitionsURL,omitempty"`
}

// Sequence allocation strategies.
const (
	SequenceCounter = "counter" // serialized allocator, safe under concurrency
	SequenceScan    = "scan"    // legacy read-max allocator, unsafe under concurrent creation
)

type SequenceConfig struct {
	Strategy string `json:"strategy" yaml:"strategy"`
}

type EventConfig struct {
	QueueBuffer int `json:"queueBuffer" yaml:"queueBuffer"`
}

// DefaultConfig returns a Config populated with the same defaults the
// constructors apply. Callers may modify the returned struct before
// passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Sequence: SequenceConfig{Strategy: SequenceCounter},
		Events:   EventConfig{QueueBuffer: 100},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Sequence.Strategy {
	case "", SequenceCounter, SequenceScan:
	default:
		return fmt.Errorf("sequence.strategy must be %q or %q", SequenceCounter, SequenceScan)
	}
	if c.Events.QueueBuffer < 0 {
		return fmt.Errorf("events.queueBuffer must be >= 0")
	}
	return nil
}
