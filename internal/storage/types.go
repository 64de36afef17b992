package storage

import (
	"errors"
	"time"
)

var (
	ErrStorageInit  = errors.New("storage: init failed")
	ErrPersistence  = errors.New("storage: persistence failed")
	ErrQuery        = errors.New("storage: query failed")
	ErrNotFound     = errors.New("storage: not found")
	ErrSchemaTooNew = errors.New("storage: schema version newer than code")
)

// ClassificationItem is one row of a classification table, either a
// processing stage or a quality grade. Ids are assigned by the store and
// strictly increase within each table.
type ClassificationItem struct {
	ID   int64
	Name string
}

// ProductType declares which spec keys its batches are expected to carry.
// Key order is preserved across storage round trips.
type ProductType struct {
	ID       int64
	Name     string
	SpecKeys []string
}

// Batch is a single inventory ledger entry. Specs is the dynamic attribute
// map keyed per product type; the store never validates its keys against
// the type's declared key set.
type Batch struct {
	ID        int64
	Name      string
	TypeID    int64
	GradeID   int64
	StageID   int64
	Weight    float64
	Price     float64
	Specs     map[string]float64
	CreatedAt time.Time
}

// TotalValue is the batch's worth at its unit price.
func (b *Batch) TotalValue() float64 {
	return b.Weight * b.Price
}

// StageTotals is the aggregate over all batches in one stage.
type StageTotals struct {
	TotalWeight float64
	Count       int64
}
