package model

type Salesperson struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	ManagerID *string `db:"manager_id" json:"manager_id"` // Nullable
}
