// Package bonus reconciles the club-granted attribute point against the
// wizard's step transitions. The point is applied when the wizard leaves
// the attributes step going forward and revoked when it re-enters going
// backward, never by direct user edits.
package bonus

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/nexusrpg/nexus/x/catalog"
	"github.com/nexusrpg/nexus/x/ledger"
)

var tracer = otel.Tracer("bonus")

// the reconciliation amount is fixed at one point regardless of the
// club's advertised bonus value
const bonusAmount = 1

// Applied is the apply-time snapshot. Revocation targets exactly this
// attribute, so a club change between apply and revoke cannot move
// which attribute loses the point.
type Applied struct {
	Attribute string `json:"attribute"`
	Amount    int    `json:"amount"`
}

// Reconciler is the interface for bonus reconciliation
type Reconciler interface {
	Target(ctx context.Context, clubID string) (string, error)
	Apply(ctx context.Context, clubID string, l *ledger.Ledger) (*Applied, error)
	Revoke(applied *Applied, l *ledger.Ledger) *Applied
}

type reconciler struct {
	catalog catalog.Service
}

// NewReconciler creates a new reconciler
func NewReconciler(catalog catalog.Service) Reconciler {
	return &reconciler{catalog: catalog}
}

// Target returns the attribute the given club bonuses, or "" when the
// club grants none. Used to keep the ledger's bonus-adjusted cap in
// step with the currently selected club.
func (r *reconciler) Target(ctx context.Context, clubID string) (string, error) {
	ctx, span := tracer.Start(ctx, "Bonus.Reconciler.Target")
	defer span.End()

	if clubID == "" {
		return "", nil
	}
	club, err := r.catalog.GetClub(ctx, clubID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return club.BonusAttribute, nil
}

// Apply grants the bonus of the club selected at this transition.
// No-op when the club grants none. Before granting, the target is
// clamped back to its bonus-adjusted ceiling in case a manual edit
// pushed it above, which would otherwise double-count.
func (r *reconciler) Apply(ctx context.Context, clubID string, l *ledger.Ledger) (*Applied, error) {
	ctx, span := tracer.Start(ctx, "Bonus.Reconciler.Apply")
	defer span.End()

	target, err := r.Target(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, nil
	}

	l.SetBonusAttribute(target)
	l.ClampToCap(target)
	l.Grant(target, bonusAmount)

	return &Applied{Attribute: target, Amount: bonusAmount}, nil
}

// Revoke removes a previously applied bonus using the apply-time
// snapshot. No-op when nothing was applied. Always returns nil so the
// caller can overwrite its snapshot unconditionally.
func (r *reconciler) Revoke(applied *Applied, l *ledger.Ledger) *Applied {
	if applied == nil {
		return nil
	}
	l.Grant(applied.Attribute, -applied.Amount)
	return nil
}
