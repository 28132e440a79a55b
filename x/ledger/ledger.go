// Package ledger holds the point-buy attribute allocation rules
package ledger

import (
	"fmt"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/util"
)

// Rules is the point-buy tuning, normally taken from config
type Rules struct {
	Floor   int
	Ceiling int
	AttrMin int
	AttrMax int
}

// RulesFromConfig extracts the point-buy rules from the app config
func RulesFromConfig(config util.Config) Rules {
	return Rules{
		Floor:   config.Nexus.PointBuy.Floor,
		Ceiling: config.Nexus.PointBuy.Ceiling,
		AttrMin: config.Nexus.PointBuy.AttrMin,
		AttrMax: config.Nexus.PointBuy.AttrMax,
	}
}

// Rejection is a recoverable validation failure of a point edit
type Rejection struct {
	Key    string `json:"key"`
	Value  int    `json:"value"`
	Reason string `json:"reason"`
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s=%d rejected: %s", r.Key, r.Value, r.Reason)
}

// Ledger enforces the point-buy invariants over one attribute map.
// It mutates only its in-memory map and never touches persistence.
type Ledger struct {
	points    core.AttributeMap
	rules     Rules
	bonusAttr string
}

// New creates a ledger over an existing allocation.
// Unknown keys are dropped so the map is canonical from the start.
func New(rules Rules, points core.AttributeMap) *Ledger {
	clean := core.AttributeMap{}
	for key, value := range points {
		if core.IsKnownAttribute(key) {
			clean[key] = value
		}
	}
	return &Ledger{points: clean, rules: rules}
}

// Default returns the starting allocation: every attribute at the
// midpoint of its range.
func Default(rules Rules) core.AttributeMap {
	mid := (rules.AttrMin + rules.AttrMax) / 2
	points := core.AttributeMap{}
	for _, key := range core.Attributes {
		points[key] = mid
	}
	return points
}

// SetBonusAttribute marks which attribute the selected club bonuses.
// Pass "" when the club grants no bonus.
func (l *Ledger) SetBonusAttribute(key string) {
	l.bonusAttr = key
}

// AttrMax returns the bonus-adjusted ceiling for one attribute: one
// lower than the base ceiling for the bonus-carrying attribute, so the
// maximum achievable total including the bonus is identical across
// attributes.
func (l *Ledger) AttrMax(key string) int {
	if key != "" && key == l.bonusAttr {
		return l.rules.AttrMax - 1
	}
	return l.rules.AttrMax
}

// SetPoints sets one attribute, enforcing the per-edit invariants.
// Returns the resulting allocation, or a Rejection.
func (l *Ledger) SetPoints(key string, value int) (core.AttributeMap, error) {
	if !core.IsKnownAttribute(key) {
		return nil, Rejection{Key: key, Value: value, Reason: "unknown attribute"}
	}
	if value < l.rules.AttrMin {
		return nil, Rejection{Key: key, Value: value, Reason: "below attribute floor"}
	}
	if max := l.AttrMax(key); value > max {
		return nil, Rejection{Key: key, Value: value, Reason: fmt.Sprintf("above attribute cap %d", max)}
	}
	if l.points.Total()-l.points[key]+value > l.rules.Ceiling {
		return nil, Rejection{Key: key, Value: value, Reason: "total would exceed point ceiling"}
	}
	l.points[key] = value
	return l.points.Clone(), nil
}

// Points returns a copy of the current allocation
func (l *Ledger) Points() core.AttributeMap {
	return l.points.Clone()
}

// Total returns the current allocated total
func (l *Ledger) Total() int {
	return l.points.Total()
}

// Remaining returns how many points are still spendable
func (l *Ledger) Remaining() int {
	return l.rules.Ceiling - l.points.Total()
}

// CanAdvance is the gate out of the attributes step. Floor only: the
// ceiling is enforced per edit, so a ledger may sit below ceiling here.
func (l *Ledger) CanAdvance() bool {
	return l.points.Total() >= l.rules.Floor
}

// Grant adjusts one attribute without rule checks. Reserved for bonus
// reconciliation, which legitimately lands outside the point-buy caps.
func (l *Ledger) Grant(key string, delta int) {
	if !core.IsKnownAttribute(key) {
		return
	}
	l.points[key] += delta
}

// ClampToCap pushes one attribute back down to its bonus-adjusted
// ceiling if a manual edit left it above. Returns whether it clamped.
func (l *Ledger) ClampToCap(key string) bool {
	if !core.IsKnownAttribute(key) {
		return false
	}
	max := l.AttrMax(key)
	if l.points[key] > max {
		l.points[key] = max
		return true
	}
	return false
}
