package core

import (
	"time"
)

// AttributeMap is the canonical attribute storage type.
// Business logic only ever sees this type; the json conversion for the
// database column happens at the persistence boundary.
type AttributeMap map[string]int

// Clone returns a copy of the map
func (m AttributeMap) Clone() AttributeMap {
	clone := make(AttributeMap, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Total returns the sum of all allocated points
func (m AttributeMap) Total() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// Stats is the mutable combat state of a character
type Stats struct {
	HP       int    `json:"hp" gorm:"column:hp;type:integer;default:0"`
	MaxHP    int    `json:"maxHp" gorm:"column:max_hp;type:integer;default:0"`
	SAN      int    `json:"san" gorm:"column:san;type:integer;default:0"`
	MaxSAN   int    `json:"maxSan" gorm:"column:max_san;type:integer;default:0"`
	StatusID string `json:"status" gorm:"column:status_id;type:text"`
}

// Character is the canonical server-side character object
// mutable only through the vitals service after creation
type Character struct {
	ID             string       `json:"id" gorm:"primaryKey;type:char(20)"`
	Name           string       `json:"name" gorm:"type:text"`
	Age            int          `json:"age" gorm:"type:integer"`
	ClubID         string       `json:"clubId" gorm:"type:text"`
	ArchetypeID    string       `json:"archetypeId" gorm:"type:text"`
	Biography      string       `json:"biography" gorm:"type:text"`
	WeaponID       string       `json:"weaponId" gorm:"type:text"`
	AttributesJSON string       `json:"-" gorm:"column:attributes;type:json;default:'{}'"`
	Attributes     AttributeMap `json:"attributes" gorm:"-"`
	Stats          Stats        `json:"stats" gorm:"embedded"`
	UserID         *string      `json:"userId,omitempty" gorm:"type:char(20)"`
	CDate          time.Time    `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate          time.Time    `json:"mdate" gorm:"autoUpdateTime"`
}

// Account is an owning user account linked to a character
// deleted when its character is deleted
type Account struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Handle      string    `json:"handle" gorm:"type:text;uniqueIndex"`
	CharacterID string    `json:"characterId" gorm:"type:char(20)"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Club is reference data owned by the content-admin subsystem.
// BonusAttribute may be empty: not every club grants a bonus.
type Club struct {
	ID             string    `json:"id" gorm:"primaryKey;type:text"`
	Name           string    `json:"name" gorm:"type:text"`
	Description    string    `json:"description" gorm:"type:text"`
	BonusAttribute string    `json:"bonusAttribute" gorm:"type:text"`
	BonusValue     int       `json:"bonusValue" gorm:"type:integer;default:0"`
	MDate          time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// Archetype is reference data: the character's background template
type Archetype struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	BaseHP      int       `json:"baseHp" gorm:"type:integer;default:0"`
	BaseSAN     int       `json:"baseSan" gorm:"type:integer;default:0"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// Weapon is reference data
type Weapon struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	Damage      int       `json:"damage" gorm:"type:integer;default:0"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// StatusEffect is reference data: a condition a character can be in
type StatusEffect struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}
