package model

import "time"

type ActivityLog struct {
	ID        string    `db:"id" json:"id"`
	ActorID   string    `db:"actor_id" json:"actor_id"`
	Action    string    `db:"action" json:"action"`
	Details   string    `db:"details" json:"details"` // JSON document
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
