package domain

import "time"

// Project groups tasks and belongs to a single owner.
type Project struct {
	ID          int64
	Name        string
	Description *string
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
