package dto

type ResolveInput struct {
	StockNumber string
	Action      string
	KeepSaleID  string
	Note        string
	ActorID     string
}
