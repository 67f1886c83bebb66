package models

type Session struct {
	SessionID      string   `json:"session_id"`
	UserID         string   `json:"user_id"`
	PractitionerID string   `json:"practitioner_id"`
	Roles          []string `json:"roles"`
}
