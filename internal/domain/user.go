package domain

import "time"

type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username" json:"username"`
	Coins     int64     `db:"coins" json:"coins"`
	Diamonds  int64     `db:"diamonds" json:"diamonds"`
	XP        int64     `db:"xp" json:"xp"`
	Level     int       `db:"level" json:"level"`
	CreatedAt time.Time `db:"created_at"`
}

// Stream is the minimal live-stream record the gift processor validates
// against when a send references a stream.
type Stream struct {
	ID         int64      `db:"id" json:"id"`
	HostUserID int64      `db:"host_user_id" json:"host_user_id"`
	Title      string     `db:"title" json:"title"`
	Live       bool       `db:"live" json:"live"`
	StartedAt  time.Time  `db:"started_at" json:"started_at"`
	EndedAt    *time.Time `db:"ended_at" json:"ended_at,omitempty"`
}
