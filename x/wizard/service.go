//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mock/service.go
package wizard

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/util"
	"github.com/nexusrpg/nexus/x/bonus"
	"github.com/nexusrpg/nexus/x/character"
	"github.com/nexusrpg/nexus/x/ledger"
)

// Service is the interface for wizard service
type Service interface {
	Start(ctx context.Context, resumeID string) (View, error)
	Get(ctx context.Context, id string) (View, error)
	Update(ctx context.Context, id string, request UpdateRequest) (View, error)
	Next(ctx context.Context, id string) (View, error)
	Prev(ctx context.Context, id string) (View, error)
	Submit(ctx context.Context, id string) (character.CreateResponse, error)
}

type service struct {
	store      DraftStore
	reconciler bonus.Reconciler
	characters character.Service
	rules      ledger.Rules
	now        func() time.Time
}

// NewService creates a new wizard service
func NewService(store DraftStore, reconciler bonus.Reconciler, characters character.Service, config util.Config) Service {
	return &service{
		store:      store,
		reconciler: reconciler,
		characters: characters,
		rules:      ledger.RulesFromConfig(config),
		now:        time.Now,
	}
}

func (s *service) machine(ctx context.Context, draft *Draft) *Machine {
	m := NewMachine(draft, s.rules, s.reconciler, s.store, s.now)
	m.RetuneCap(ctx)
	return m
}

func (s *service) hydrate(ctx context.Context, id string) (*Machine, error) {
	draft, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.machine(ctx, &draft), nil
}

// Start opens a new session, or resumes one when resumeID still
// resolves to a stored draft
func (s *service) Start(ctx context.Context, resumeID string) (View, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Service.Start")
	defer span.End()

	if resumeID != "" {
		m, err := s.hydrate(ctx, resumeID)
		if err == nil {
			return m.View(), nil
		}
		// expired or malformed drafts fall through to a fresh start
	}

	draft := Draft{
		ID:         xid.New().String(),
		Step:       StepIdentity,
		Attributes: ledger.Default(s.rules),
		MDate:      s.now(),
	}
	if err := s.store.SaveNow(ctx, draft); err != nil {
		span.RecordError(err)
		return View{}, err
	}

	return s.machine(ctx, &draft).View(), nil
}

// Get returns the current session state
func (s *service) Get(ctx context.Context, id string) (View, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Service.Get")
	defer span.End()

	m, err := s.hydrate(ctx, id)
	if err != nil {
		return View{}, err
	}
	return m.View(), nil
}

// Update applies a partial field update to the draft
func (s *service) Update(ctx context.Context, id string, request UpdateRequest) (View, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Service.Update")
	defer span.End()

	m, err := s.hydrate(ctx, id)
	if err != nil {
		return View{}, err
	}

	if request.Identity != nil {
		m.SetIdentity(ctx, *request.Identity)
	}
	if request.Background != nil {
		if err := m.SetBackground(ctx, *request.Background); err != nil {
			span.RecordError(err)
			return m.View(), core.NewErrorValidation("unknown club")
		}
	}
	if request.Points != nil {
		if err := m.SetPoints(ctx, request.Points.Key, request.Points.Value); err != nil {
			return m.View(), err
		}
	}
	if request.Weapons != nil {
		m.SetWeapons(ctx, *request.Weapons)
	}
	if request.AccountHandle != nil {
		m.SetAccountHandle(ctx, *request.AccountHandle)
	}

	return m.View(), nil
}

// Next advances the wizard one step
func (s *service) Next(ctx context.Context, id string) (View, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Service.Next")
	defer span.End()

	m, err := s.hydrate(ctx, id)
	if err != nil {
		return View{}, err
	}
	if err := m.Next(ctx); err != nil {
		return m.View(), err
	}
	return m.View(), nil
}

// Prev moves the wizard back one step
func (s *service) Prev(ctx context.Context, id string) (View, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Service.Prev")
	defer span.End()

	m, err := s.hydrate(ctx, id)
	if err != nil {
		return View{}, err
	}
	if err := m.Prev(ctx); err != nil {
		return m.View(), err
	}
	return m.View(), nil
}

// Submit packages the draft and creates the character. The draft is
// cleared only after creation succeeds; on failure it stays intact so
// the user can retry.
func (s *service) Submit(ctx context.Context, id string) (character.CreateResponse, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Service.Submit")
	defer span.End()

	m, err := s.hydrate(ctx, id)
	if err != nil {
		return character.CreateResponse{}, err
	}

	if !m.AtReview() {
		return character.CreateResponse{}, core.NewErrorValidation("submit is only reachable from the review step")
	}

	created, token, err := s.characters.Create(ctx, m.BuildRequest())
	if err != nil {
		span.RecordError(err)
		return character.CreateResponse{}, err
	}

	if err := s.store.Clear(ctx, id); err != nil {
		// character exists; a stale draft is only a nuisance
		span.RecordError(err)
	}

	return character.CreateResponse{Character: created, Token: token}, nil
}
