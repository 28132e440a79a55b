package vitals

// ModulateRequest is the body of PATCH /characters/:id/status.
// Value is a delta, not an absolute.
type ModulateRequest struct {
	Stat  string `json:"stat"`
	Value int    `json:"value"`
}

// ConditionRequest is the body of PATCH /characters/:id/condition
type ConditionRequest struct {
	StatusID string `json:"statusId"`
}
