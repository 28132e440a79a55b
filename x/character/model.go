package character

import (
	"github.com/nexusrpg/nexus/core"
)

// Identity is the wizard's first-step payload
type Identity struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Background is the wizard's second-step payload
type Background struct {
	ClubID      string `json:"clubId"`
	ArchetypeID string `json:"archetypeId"`
	Biography   string `json:"biography"`
}

// Weapons is the wizard's weapon selection
type Weapons struct {
	Primary string `json:"primary"`
}

// CreateRequest is the creation payload. Stats and userId are never
// bound from the client: the server derives stats itself.
type CreateRequest struct {
	Identity      Identity          `json:"identity"`
	Background    Background        `json:"background"`
	Attributes    core.AttributeMap `json:"attributes"`
	Weapons       Weapons           `json:"weapons"`
	AccountHandle string            `json:"accountHandle,omitempty"`
}

// CreateResponse is returned on successful creation
type CreateResponse struct {
	Character core.Character `json:"character"`
	Token     string         `json:"token"`
}

// DeleteResult reports what the cascade removed
type DeleteResult struct {
	DeletedCharID string `json:"deletedCharId"`
	UserPurged    bool   `json:"userPurged"`
}

const (
	nameMinLen = 3
	nameMaxLen = 20
	ageMin     = 12
	ageMax     = 22
	bioMaxLen  = 500
)
