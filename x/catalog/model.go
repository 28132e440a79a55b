package catalog

import (
	"github.com/nexusrpg/nexus/core"
)

// ReferenceData bundles everything the wizard needs to render choices
type ReferenceData struct {
	Clubs         []core.Club         `json:"clubs"`
	Archetypes    []core.Archetype    `json:"archetypes"`
	Weapons       []core.Weapon       `json:"weapons"`
	StatusEffects []core.StatusEffect `json:"statusEffects"`
}
