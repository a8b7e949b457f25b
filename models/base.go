package models

import "time"

// Base carries the fields every stored record shares. ID and CreatedAt are set once
// by the repository; UpdatedAt is refreshed on every write.
type Base struct {
	ID        string    `json:"id"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) Meta() *Base { return b }

func (b *Base) IsPublished() bool { return b.Published }
