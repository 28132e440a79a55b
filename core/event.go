package core

// Event is the websocket root packet model
type Event struct {
	Type string      `json:"type"`
	Body interface{} `json:"body"`
}

// VitalsDelta is emitted after a successful hp/san modulation.
// NewValue is the clamped result, not the requested delta.
type VitalsDelta struct {
	CharID   string `json:"charId"`
	Stat     string `json:"stat"`
	NewValue int    `json:"newValue"`
}

// ConditionChange is emitted after a condition overwrite
type ConditionChange struct {
	CharID   string `json:"charId"`
	StatusID string `json:"statusId"`
}
