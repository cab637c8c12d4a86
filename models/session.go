package models

// Session — единственная сессия всего развёртывания. One shared flag,
// persisted to a small JSON file so a restart keeps the operator logged in.
type Session struct {
	Authenticated bool `json:"authenticated"`
}
