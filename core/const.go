package core

const (
	AttrStrength  = "strength"
	AttrDexterity = "dexterity"
	AttrIntellect = "intellect"
	AttrWillpower = "willpower"
	AttrCharisma  = "charisma"
	AttrEducation = "education"
)

// Attributes is the playable attribute set, in display order
var Attributes = []string{
	AttrStrength,
	AttrDexterity,
	AttrIntellect,
	AttrWillpower,
	AttrCharisma,
	AttrEducation,
}

// system attributes are derived server-side and must never arrive
// from a client payload
var systemAttributes = map[string]bool{
	"hp":     true,
	"maxHp":  true,
	"san":    true,
	"maxSan": true,
	"status": true,
	"level":  true,
}

// IsSystemAttribute reports whether key is reserved for derived stats
func IsSystemAttribute(key string) bool {
	return systemAttributes[key]
}

// IsKnownAttribute reports whether key is one of the playable attributes
func IsKnownAttribute(key string) bool {
	for _, a := range Attributes {
		if a == key {
			return true
		}
	}
	return false
}

const (
	// TableRoom is the shared broadcast room watched by the game master
	TableRoom = "nexus_table"
	// PlayerRoomPrefix keys the per-character room
	PlayerRoomPrefix = "player:"
)

// PlayerRoom returns the room key for a character's own channel
func PlayerRoom(charID string) string {
	return PlayerRoomPrefix + charID
}

const (
	EventStatusUpdate    = "status_update"
	EventConditionUpdate = "condition_update"
)

const (
	StatHP  = "hp"
	StatSAN = "san"
)
