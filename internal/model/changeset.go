package model

// ChangeSet is a batch of sale writes plus their audit entry. The store
// applies it in a single transaction.
type ChangeSet struct {
	StockNumber string
	Updates     []*Sale
	Deletes     []*Sale
	Activity    *ActivityLog
}
