package reqflow

import (
	"go.uber.org/zap"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/model/definition"
	"github.com/viant/reqflow/service/dao"
	"github.com/viant/reqflow/service/directory"
	"github.com/viant/reqflow/service/sequence"
)

// Option customises the engine façade.
type Option func(s *Service)

// WithConfig applies a serialisable configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithRegistry replaces the built-in workflow definition registry.
func WithRegistry(registry *definition.Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// WithDefinitions replaces the built-in workflow definitions.
func WithDefinitions(definitions ...*definition.Definition) Option {
	return func(s *Service) { s.definitions = definitions }
}

// WithRequestDAO sets the storage collaborator; defaults to the in-memory
// store.
func WithRequestDAO(requestDAO dao.Service[string, model.Request]) Option {
	return func(s *Service) { s.requestDAO = requestDAO }
}

// WithDirectory sets the role directory; defaults to the in-memory
// directory exposed via Service.Directory.
func WithDirectory(service directory.Service) Option {
	return func(s *Service) { s.directory = service }
}

// WithSequencer replaces the sequence-number allocator chosen by the
// configuration.
func WithSequencer(service sequence.Service) Option {
	return func(s *Service) { s.sequencer = service }
}

// WithLogger sets the structured logger used for integrity alerts.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}
