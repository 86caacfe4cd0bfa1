package model

import "time"

// Article is a short text record managed by the article repository.
//
// WHY *time.Time FOR UpdatedAt?
// An article that has never been updated has no updatedAt at all - the field
// must be absent from JSON, not zero-valued. A nil pointer plus `omitempty`
// gives exactly that: the key only appears after the first update.
type Article struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`   // non-empty after trimming
	Content   string     `json:"content"` // defaults to "" when omitted at creation
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
