package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/nexusrpg/nexus/x/bonus"
	"github.com/nexusrpg/nexus/x/character"
	"github.com/nexusrpg/nexus/x/ledger"
)

// how long a step rejection stays visible before it clears itself
const flagTTL = 4 * time.Second

// StepRejection is a step-local, recoverable validation failure.
// Never fatal: the wizard has no failed state.
type StepRejection struct {
	Step   Step   `json:"step"`
	Reason string `json:"reason"`
}

func (e StepRejection) Error() string {
	return fmt.Sprintf("cannot leave %s: %s", e.Step, e.Reason)
}

// Machine drives one draft through the step sequence. Navigation and
// form state have exactly one owner: every mutation goes through here,
// and every accepted mutation is snapshotted to the draft store.
type Machine struct {
	draft      *Draft
	ledger     *ledger.Ledger
	reconciler bonus.Reconciler
	store      DraftStore
	now        func() time.Time
}

// NewMachine hydrates a machine around an existing draft
func NewMachine(draft *Draft, rules ledger.Rules, reconciler bonus.Reconciler, store DraftStore, now func() time.Time) *Machine {
	l := ledger.New(rules, draft.Attributes)
	if draft.Bonus != nil {
		l.SetBonusAttribute(draft.Bonus.Attribute)
	}
	draft.Attributes = l.Points()
	return &Machine{
		draft:      draft,
		ledger:     l,
		reconciler: reconciler,
		store:      store,
		now:        now,
	}
}

// RetuneCap re-derives the bonus-adjusted attribute cap from the
// currently selected club. Only meaningful while no bonus is applied;
// after apply the snapshot pins the cap. A club that has since
// vanished from the catalog costs the draft its cap, not the session:
// every step stays reachable.
func (m *Machine) RetuneCap(ctx context.Context) {
	if m.draft.Bonus != nil {
		return
	}
	target, err := m.reconciler.Target(ctx, m.draft.Background.ClubID)
	if err != nil {
		slog.Warn("club lookup failed, continuing without a bonus cap",
			slog.String("draft", m.draft.ID),
			slog.String("club", m.draft.Background.ClubID),
			slog.String("error", err.Error()),
		)
	}
	m.ledger.SetBonusAttribute(target)
}

func (m *Machine) touch(ctx context.Context) {
	m.draft.MDate = m.now()
	m.store.Save(ctx, *m.draft)
}

func (m *Machine) reject(reason string) error {
	rejection := StepRejection{Step: m.draft.Step, Reason: reason}
	m.draft.Flag = rejection.Error()
	m.draft.FlagUntil = m.now().Add(flagTTL)
	return rejection
}

// Flag returns the transient error flag, or "" once it has expired
func (m *Machine) Flag() string {
	if m.draft.Flag == "" || m.now().After(m.draft.FlagUntil) {
		return ""
	}
	return m.draft.Flag
}

// SetIdentity updates the identity fields
func (m *Machine) SetIdentity(ctx context.Context, identity character.Identity) {
	m.draft.Identity = identity
	m.touch(ctx)
}

// SetBackground updates the background fields and retunes the
// attribute cap for the newly selected club. A club the catalog does
// not know is rejected before the draft changes.
func (m *Machine) SetBackground(ctx context.Context, background character.Background) error {
	target, err := m.reconciler.Target(ctx, background.ClubID)
	if err != nil {
		return err
	}
	m.draft.Background = background
	if m.draft.Bonus == nil {
		m.ledger.SetBonusAttribute(target)
	}
	m.touch(ctx)
	return nil
}

// SetPoints assigns one attribute through the ledger. Rejections are
// surfaced both as the return value and the transient flag.
func (m *Machine) SetPoints(ctx context.Context, key string, value int) error {
	points, err := m.ledger.SetPoints(key, value)
	if err != nil {
		m.draft.Flag = err.Error()
		m.draft.FlagUntil = m.now().Add(flagTTL)
		return err
	}
	m.draft.Attributes = points
	m.touch(ctx)
	return nil
}

// SetWeapons updates the weapon selection
func (m *Machine) SetWeapons(ctx context.Context, weapons character.Weapons) {
	m.draft.Weapons = weapons
	m.touch(ctx)
}

// SetAccountHandle updates the optional owning-account handle
func (m *Machine) SetAccountHandle(ctx context.Context, handle string) {
	m.draft.AccountHandle = handle
	m.touch(ctx)
}

func (m *Machine) validateStep() error {
	switch m.draft.Step {
	case StepIdentity:
		nameLen := utf8.RuneCountInString(m.draft.Identity.Name)
		if nameLen < 3 || nameLen > 20 {
			return m.reject("name must be 3-20 characters")
		}
		if m.draft.Identity.Age < 12 || m.draft.Identity.Age > 22 {
			return m.reject("age must be 12-22")
		}
	case StepBackground:
		if m.draft.Background.ClubID == "" {
			return m.reject("club is required")
		}
		if m.draft.Background.ArchetypeID == "" {
			return m.reject("archetype is required")
		}
		if utf8.RuneCountInString(m.draft.Background.Biography) > 500 {
			return m.reject("biography too long")
		}
	case StepAttributes:
		if !m.ledger.CanAdvance() {
			return m.reject(fmt.Sprintf("attribute total %d is below the floor", m.ledger.Total()))
		}
	case StepWeapons:
		if m.draft.Weapons.Primary == "" {
			return m.reject("primary weapon is required")
		}
	case StepReview:
		return m.reject("already at the last step")
	}
	return nil
}

// Next validates the current step and advances. Leaving the attributes
// step applies the club bonus, exactly once.
func (m *Machine) Next(ctx context.Context) error {
	if err := m.validateStep(); err != nil {
		return err
	}

	if m.draft.Step == StepAttributes {
		applied, err := m.reconciler.Apply(ctx, m.draft.Background.ClubID, m.ledger)
		if err != nil {
			return err
		}
		m.draft.Bonus = applied
		m.draft.Attributes = m.ledger.Points()
	}

	m.draft.Step++
	m.draft.Flag = ""
	m.touch(ctx)
	return nil
}

// Prev moves back one step, no validation required. Re-entering the
// attributes step revokes the bonus using the apply-time snapshot.
func (m *Machine) Prev(ctx context.Context) error {
	if m.draft.Step == StepIdentity {
		return nil
	}

	if m.draft.Step == StepWeapons {
		m.draft.Bonus = m.reconciler.Revoke(m.draft.Bonus, m.ledger)
		m.draft.Attributes = m.ledger.Points()
		m.RetuneCap(ctx)
	}

	m.draft.Step--
	m.touch(ctx)
	return nil
}

// AtReview reports whether submit is reachable
func (m *Machine) AtReview() bool {
	return m.draft.Step == StepReview
}

// BuildRequest packages the draft for the creation endpoint
func (m *Machine) BuildRequest() character.CreateRequest {
	return character.CreateRequest{
		Identity:      m.draft.Identity,
		Background:    m.draft.Background,
		Attributes:    m.ledger.Points(),
		Weapons:       m.draft.Weapons,
		AccountHandle: m.draft.AccountHandle,
	}
}

// View returns the draft with its computed ledger properties
func (m *Machine) View() View {
	return View{
		Draft:     *m.draft,
		StepName:  m.draft.Step.String(),
		Remaining: m.ledger.Remaining(),
		Total:     m.ledger.Total(),
		Flag:      m.Flag(),
	}
}
