package domain

import "time"

// Task is a dated to-do item
type Task struct {
	ID        int64
	UserID    int64
	Title     string
	Category  string
	Date      Date
	Completed bool
	CreatedAt time.Time
}
