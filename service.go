package reqflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/model/definition"
	"github.com/viant/reqflow/policy"
	"github.com/viant/reqflow/service/coordinator"
	"github.com/viant/reqflow/service/dao"
	reqmemory "github.com/viant/reqflow/service/dao/request/memory"
	"github.com/viant/reqflow/service/directory"
	dirmemory "github.com/viant/reqflow/service/directory/memory"
	"github.com/viant/reqflow/service/messaging"
	qmemory "github.com/viant/reqflow/service/messaging/memory"
	"github.com/viant/reqflow/service/sequence"
)

// Service is the engine façade: it wires the definition registry, storage,
// role directory, sequence allocator and lifecycle coordinator, and
// re-exposes the coordinator's operations.
type Service struct {
	config      *Config
	registry    *definition.Registry
	definitions []*definition.Definition
	requestDAO  dao.Service[string, model.Request]
	directory   directory.Service
	members     *dirmemory.Service
	sequencer   sequence.Service
	logger      *zap.Logger
	coordinator *coordinator.Service
}

// New creates an engine façade.  Without options everything runs in-memory
// with the four built-in workflows.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.registry == nil {
		switch {
		case len(s.definitions) > 0:
			registry, err := definition.New(s.definitions...)
			if err != nil {
				return err
			}
			s.registry = registry
		case s.config.DefinitionsURL != "":
			registry, err := definition.NewLoader().Load(context.Background(), s.config.DefinitionsURL)
			if err != nil {
				return err
			}
			s.registry = registry
		default:
			s.registry = definition.Default()
		}
	}
	if s.requestDAO == nil {
		s.requestDAO = reqmemory.New()
	}
	if s.directory == nil {
		s.members = dirmemory.New()
		s.directory = s.members
	}
	if s.sequencer == nil {
		if s.config.Sequence.Strategy == SequenceScan {
			s.sequencer = sequence.NewScan(s.requestDAO)
		} else {
			s.sequencer = sequence.NewCounter(s.requestDAO)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	queue := qmemory.NewQueue[coordinator.Event](qmemory.Config{
		QueueBuffer: s.config.Events.QueueBuffer,
		MaxRetries:  qmemory.DefaultConfig().MaxRetries,
	})
	s.coordinator = coordinator.New(
		coordinator.WithRegistry(s.registry),
		coordinator.WithRequestDAO(s.requestDAO),
		coordinator.WithDirectory(s.directory),
		coordinator.WithSequencer(s.sequencer),
		coordinator.WithEventQueue(queue),
		coordinator.WithLogger(s.logger),
	)
	return nil
}

// Registry returns the workflow definition registry.
func (s *Service) Registry() *definition.Registry {
	return s.registry
}

// Directory returns the role directory in use.
func (s *Service) Directory() directory.Service {
	return s.directory
}

// Members returns the built-in in-memory directory for membership
// management, or nil when a custom directory was supplied.
func (s *Service) Members() *dirmemory.Service {
	return s.members
}

// Events exposes the lifecycle event queue.
func (s *Service) Events() messaging.Queue[coordinator.Event] {
	return s.coordinator.Events()
}

// Create validates and persists a new request in its type's initial stage.
func (s *Service) Create(ctx context.Context, t model.Type, actor *model.Actor, fields map[string]interface{}) (*model.Request, error) {
	return s.coordinator.Create(ctx, t, actor, fields)
}

// Update applies field changes and an optional approval decision to an
// existing request.
func (s *Service) Update(ctx context.Context, t model.Type, id string, actor *model.Actor, changes map[string]interface{}, decision model.Decision) (*model.Request, error) {
	return s.coordinator.Update(ctx, t, id, actor, changes, decision)
}

// Delete removes a request when the actor holds a deleting role.
func (s *Service) Delete(ctx context.Context, t model.Type, id string, actor *model.Actor) error {
	return s.coordinator.Delete(ctx, t, id, actor)
}

// Get returns a single request visible to the actor.
func (s *Service) Get(ctx context.Context, t model.Type, id string, actor *model.Actor) (*model.Request, error) {
	return s.coordinator.Get(ctx, t, id, actor)
}

// List returns the requests of a type visible to the actor.
func (s *Service) List(ctx context.Context, t model.Type, actor *model.Actor) ([]*model.Request, error) {
	return s.coordinator.List(ctx, t, actor)
}

// Can reports whether an operation would be permitted; used by the
// presentation layer to render affordances.
func (s *Service) Can(ctx context.Context, t model.Type, actor *model.Actor, operation policy.Operation, request *model.Request) (bool, error) {
	return s.coordinator.Can(ctx, t, actor, operation, request)
}
