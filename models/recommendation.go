package models

import "time"

// Recommendation is a property one user sends to another, stored under
// recommendation:<to-user-id>:<id>.
type Recommendation struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"fromUserId"`
	FromName   string    `json:"fromName"`
	ToUserID   string    `json:"toUserId"`
	PropertyID string    `json:"propertyId"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
