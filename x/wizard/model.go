package wizard

import (
	"time"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/x/bonus"
	"github.com/nexusrpg/nexus/x/character"
)

// Step is one screen of the creation wizard, in fixed order
type Step int

const (
	StepIdentity Step = iota
	StepBackground
	StepAttributes
	StepWeapons
	StepReview
)

var stepNames = []string{"identity", "background", "attributes", "weapons", "review"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Draft is an in-progress character. It is the machine's whole state:
// a session is rehydrated from this blob on every request, so the
// transient flag and the bonus snapshot live here too.
type Draft struct {
	ID            string               `json:"id"`
	Step          Step                 `json:"step"`
	Identity      character.Identity   `json:"identity"`
	Background    character.Background `json:"background"`
	Attributes    core.AttributeMap    `json:"attributes"`
	Weapons       character.Weapons    `json:"weapons"`
	AccountHandle string               `json:"accountHandle,omitempty"`
	Bonus         *bonus.Applied       `json:"bonus,omitempty"`
	Flag          string               `json:"flag,omitempty"`
	FlagUntil     time.Time            `json:"flagUntil,omitempty"`
	MDate         time.Time            `json:"mdate"`
}

// View is the draft as returned to clients, with the computed ledger
// properties attached
type View struct {
	Draft     Draft  `json:"draft"`
	StepName  string `json:"stepName"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
	Flag      string `json:"flag,omitempty"`
}

// PointEdit assigns one attribute through the ledger
type PointEdit struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// UpdateRequest is a partial field update. Absent sections are left
// untouched.
type UpdateRequest struct {
	Identity      *character.Identity   `json:"identity,omitempty"`
	Background    *character.Background `json:"background,omitempty"`
	Points        *PointEdit            `json:"points,omitempty"`
	Weapons       *character.Weapons    `json:"weapons,omitempty"`
	AccountHandle *string               `json:"accountHandle,omitempty"`
}
