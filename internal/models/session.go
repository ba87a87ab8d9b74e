package models

import "time"

// Session is the web tier's record of one browser session.
type Session struct {
	ID         string            `json:"id"`
	Cookies    map[string]string `json:"cookies,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	LastSeenAt time.Time         `json:"last_seen_at"`
}

func (s *Session) Authenticated() bool {
	return len(s.Cookies) > 0
}
