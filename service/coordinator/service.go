// Package coordinator orchestrates a save end to end: the policy gate runs
// before any mutation, the transition engine advances the stage exactly
// once per persisted update, sequence numbers are assigned on first save,
// and the resulting record is persisted and announced on the event queue.
package coordinator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/viant/reqflow/internal/clock"
	"github.com/viant/reqflow/internal/idgen"
	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/model/definition"
	"github.com/viant/reqflow/policy"
	"github.com/viant/reqflow/service/dao"
	reqmemory "github.com/viant/reqflow/service/dao/request/memory"
	"github.com/viant/reqflow/service/directory"
	"github.com/viant/reqflow/service/messaging"
	qmemory "github.com/viant/reqflow/service/messaging/memory"
	"github.com/viant/reqflow/service/sequence"
	"github.com/viant/reqflow/service/transition"
	"github.com/viant/reqflow/tracing"
	"github.com/viant/toolbox"
)

// Service is the request lifecycle coordinator.
type Service struct {
	registry    *definition.Registry
	requestDAO  dao.Service[string, model.Request]
	transitions *transition.Service
	evaluator   *policy.Evaluator
	sequencer   sequence.Service
	directory   directory.Service
	events      messaging.Queue[Event]
	logger      *zap.Logger
}

// New creates a coordinator.  Without options it runs fully in-memory with
// the built-in workflow definitions.
func New(options ...Option) *Service {
	ret := &Service{
		registry:    definition.Default(),
		transitions: transition.New(),
		evaluator:   policy.New(),
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.requestDAO == nil {
		ret.requestDAO = reqmemory.New()
	}
	if ret.sequencer == nil {
		ret.sequencer = sequence.NewCounter(ret.requestDAO)
	}
	if ret.events == nil {
		ret.events = qmemory.NewQueue[Event](qmemory.DefaultConfig())
	}
	return ret
}

// Events exposes the lifecycle event queue.
func (s *Service) Events() messaging.Queue[Event] {
	return s.events
}

// Create validates and persists a new request in its type's initial stage.
func (s *Service) Create(ctx context.Context, t model.Type, actor *model.Actor, fields map[string]interface{}) (request *model.Request, err error) {
	ctx, span := tracing.StartSpan(ctx, "request.create")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"request.type": string(t)})

	def, err := s.registry.Lookup(t)
	if err != nil {
		return nil, err
	}
	if actor, err = s.hydrate(ctx, actor); err != nil {
		return nil, err
	}
	if !s.evaluator.CanCreate(def, actor) {
		return nil, fmt.Errorf("%w: actor %q may not create %v requests", policy.ErrPermissionDenied, actorID(actor), t)
	}

	fields = def.ApplyDefaults(cloneFields(fields))
	if err = def.ValidateFields(fields, false); err != nil {
		return nil, err
	}
	owner, err := s.resolveOwner(ctx, def, actor, fields)
	if err != nil {
		return nil, err
	}

	now := clock.Now()
	request = &model.Request{
		ID:        idgen.New(),
		Type:      t,
		Stage:     def.Initial(),
		Owner:     owner,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// creation counts as an implicit no-op advance
	if request.Stage, err = s.transitions.Next(def, request.Stage, model.ActionAdvance, true); err != nil {
		return nil, err
	}
	if def.Sequenced && request.SequenceNumber == 0 {
		if request.SequenceNumber, err = s.sequencer.Next(ctx, t); err != nil {
			return nil, err
		}
	}
	if err = s.requestDAO.Save(ctx, request); err != nil {
		return nil, err
	}
	s.publish(ctx, TopicRequestCreated, request, actor)
	return request, nil
}

// Update applies field changes and an optional approval decision to an
// existing request.  Every successful update moves the request exactly one
// stage forward, or to rejected when the decision says so.  Fields outside
// the actor's write mask are silently ignored, mirroring read-only form
// enforcement.
func (s *Service) Update(ctx context.Context, t model.Type, id string, actor *model.Actor, changes map[string]interface{}, decision model.Decision) (request *model.Request, err error) {
	ctx, span := tracing.StartSpan(ctx, "request.update")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"request.type": string(t), "request.id": id})

	def, err := s.registry.Lookup(t)
	if err != nil {
		return nil, err
	}
	if actor, err = s.hydrate(ctx, actor); err != nil {
		return nil, err
	}
	action, err := decisionAction(decision)
	if err != nil {
		return nil, err
	}
	// always read the persisted stage right before computing the next one
	request, err = s.requestDAO.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Type != t {
		return nil, fmt.Errorf("%w: request %v", dao.ErrNotFound, id)
	}

	verdict := s.evaluator.Authorize(def, actor, policy.OperationEdit, request)
	if !verdict.Allowed {
		return nil, fmt.Errorf("%w: actor %q may not edit request %v at stage %v",
			policy.ErrPermissionDenied, actorID(actor), id, request.Stage)
	}

	applied := s.maskChanges(def, verdict, changes)
	merged := cloneFields(request.Fields)
	for name, value := range applied {
		merged[name] = value
	}
	if err = def.ValidateFields(merged, false); err != nil {
		return nil, err
	}

	prior := request.Stage
	next, err := s.transitions.Next(def, request.Stage, action, false)
	if err != nil {
		if errors.Is(err, transition.ErrInvalidState) {
			s.logger.Error("request state integrity violation",
				zap.String("type", string(t)),
				zap.String("id", id),
				zap.String("stage", string(request.Stage)))
		}
		return nil, err
	}

	request.Stage = next
	request.Fields = merged
	request.UpdatedAt = clock.Now()
	if def.Sequenced && request.SequenceNumber == 0 {
		if request.SequenceNumber, err = s.sequencer.Next(ctx, t); err != nil {
			return nil, err
		}
	}
	if err = s.requestDAO.Save(ctx, request); err != nil {
		return nil, err
	}
	s.publish(ctx, TopicRequestUpdated, request, actor)
	if next != prior {
		switch next {
		case model.StageApproved:
			s.publish(ctx, TopicRequestApproved, request, actor)
		case model.StageRejected:
			s.publish(ctx, TopicRequestRejected, request, actor)
		}
	}
	return request, nil
}

// Delete removes a request.  Only originating roles and superusers may
// delete; reviewers never can.
func (s *Service) Delete(ctx context.Context, t model.Type, id string, actor *model.Actor) (err error) {
	ctx, span := tracing.StartSpan(ctx, "request.delete")
	defer func() { tracing.EndSpan(span, err) }()

	def, err := s.registry.Lookup(t)
	if err != nil {
		return err
	}
	if actor, err = s.hydrate(ctx, actor); err != nil {
		return err
	}
	request, err := s.requestDAO.Load(ctx, id)
	if err != nil {
		return err
	}
	if request.Type != t {
		return fmt.Errorf("%w: request %v", dao.ErrNotFound, id)
	}
	if !s.evaluator.CanDelete(def, actor, request) {
		return fmt.Errorf("%w: actor %q may not delete %v requests", policy.ErrPermissionDenied, actorID(actor), t)
	}
	if err = s.requestDAO.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, TopicRequestDeleted, request, actor)
	return nil
}

// Get returns a single request when the actor is entitled to see it.
func (s *Service) Get(ctx context.Context, t model.Type, id string, actor *model.Actor) (*model.Request, error) {
	def, err := s.registry.Lookup(t)
	if err != nil {
		return nil, err
	}
	if actor, err = s.hydrate(ctx, actor); err != nil {
		return nil, err
	}
	request, err := s.requestDAO.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Type != t || !s.evaluator.CanView(def, actor, request) {
		// hide existence from actors outside the record's audience
		return nil, fmt.Errorf("%w: request %v", dao.ErrNotFound, id)
	}
	return request, nil
}

// List returns the requests of a type visible to the actor: records at the
// actor's review stages, records the actor owns, and everything for
// superusers.
func (s *Service) List(ctx context.Context, t model.Type, actor *model.Actor) ([]*model.Request, error) {
	def, err := s.registry.Lookup(t)
	if err != nil {
		return nil, err
	}
	if actor, err = s.hydrate(ctx, actor); err != nil {
		return nil, err
	}
	all, err := s.requestDAO.List(ctx, dao.NewParameter(dao.ParamType, string(t)))
	if err != nil {
		return nil, err
	}
	out := make([]*model.Request, 0, len(all))
	for _, request := range all {
		if s.evaluator.CanView(def, actor, request) {
			out = append(out, request)
		}
	}
	return out, nil
}

// Can reports whether the operation would be permitted; the presentation
// layer uses it to render affordances.  request may be nil for create.
func (s *Service) Can(ctx context.Context, t model.Type, actor *model.Actor, operation policy.Operation, request *model.Request) (bool, error) {
	def, err := s.registry.Lookup(t)
	if err != nil {
		return false, err
	}
	if actor, err = s.hydrate(ctx, actor); err != nil {
		return false, err
	}
	return s.evaluator.Authorize(def, actor, operation, request).Allowed, nil
}

// hydrate resolves actor roles through the directory when the caller only
// supplied an identity.
func (s *Service) hydrate(ctx context.Context, actor *model.Actor) (*model.Actor, error) {
	if actor == nil || actor.ID == "" {
		return nil, fmt.Errorf("%w: missing actor", policy.ErrPermissionDenied)
	}
	if s.directory == nil || actor.Roles != nil || actor.Superuser {
		return actor, nil
	}
	resolved, err := s.directory.Lookup(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, directory.ErrUnknownActor) {
			return actor, nil // unknown actors carry no roles and fail closed
		}
		return nil, err
	}
	return resolved, nil
}

// resolveOwner derives record ownership per the definition's owner mode.
func (s *Service) resolveOwner(ctx context.Context, def *definition.Definition, actor *model.Actor, fields map[string]interface{}) (string, error) {
	switch def.OwnerMode {
	case definition.OwnerSelf:
		return actor.ID, nil
	case definition.OwnerField:
		owner := toolbox.AsString(fields[def.OwnerFieldName])
		if owner == "" {
			return "", nil // required-field validation already rejected this
		}
		if err := s.checkOwnerEligibility(ctx, def, owner); err != nil {
			return "", err
		}
		return owner, nil
	}
	return "", nil
}

// checkOwnerEligibility verifies that a field-assigned owner holds the role
// acting at the definition's owner-gated stage (e.g. only subteam members
// can be assigned tasks).
func (s *Service) checkOwnerEligibility(ctx context.Context, def *definition.Definition, owner string) error {
	if s.directory == nil {
		return nil
	}
	for _, rule := range def.Stages {
		if !rule.OwnerGated {
			continue
		}
		for _, role := range rule.Roles {
			held, err := s.directory.Holds(ctx, owner, role)
			if err != nil {
				return err
			}
			if held {
				return nil
			}
		}
		violations := &model.ValidationError{}
		violations.Add(def.OwnerFieldName, "%q does not hold a %v role", owner, rule.Roles)
		return violations
	}
	return nil
}

// maskChanges drops changes outside the actor's write mask.  The engine
// owned fields (stage, sequence, owner) are never writable through the
// fields map.
func (s *Service) maskChanges(def *definition.Definition, verdict *policy.Verdict, changes map[string]interface{}) map[string]interface{} {
	applied := map[string]interface{}{}
	for name, value := range changes {
		if def.OwnerMode == definition.OwnerField && name == def.OwnerFieldName {
			continue // ownership is immutable after creation
		}
		if !verdict.FieldWritable(name) {
			continue
		}
		applied[name] = value
	}
	return applied
}

func (s *Service) publish(ctx context.Context, topic string, request *model.Request, actor *model.Actor) {
	event := &Event{ID: idgen.New(), Topic: topic, Request: request.Clone(), ActorID: actorID(actor), At: clock.Now()}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish lifecycle event", zap.String("topic", topic), zap.Error(err))
	}
}

func decisionAction(decision model.Decision) (model.Action, error) {
	switch decision {
	case "", model.DecisionApprove:
		return model.ActionAdvance, nil
	case model.DecisionReject:
		return model.ActionReject, nil
	}
	violations := &model.ValidationError{}
	violations.Add("approval", "%q is not a valid decision", decision)
	return "", violations
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	ret := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		ret[name] = value
	}
	return ret
}

func actorID(actor *model.Actor) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
