package model

import "errors"

var (
	ErrSaleNotFound    = errors.New("sale not found")
	ErrVersionConflict = errors.New("sale was modified concurrently, reload and retry")
	ErrDuplicateEntry  = errors.New("stock number already recorded by this salesperson")
	ErrSaleCancelled   = errors.New("cancelled sales cannot be modified")
)
