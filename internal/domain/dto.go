package domain

import "github.com/google/uuid"

// IngestSnapshotRequest is the body of POST /cotations, sent by the pricing
// engine after each pricing run.
type IngestSnapshotRequest struct {
	TripRef string          `json:"trip_ref" validate:"required,max=100"`
	Label   string          `json:"label" validate:"required,max=200"`
	Results CotationResults `json:"results" validate:"required"`
}

// SnapshotDTO is the list/detail representation of a stored snapshot
type SnapshotDTO struct {
	ID             uuid.UUID `json:"id"`
	TripRef        string    `json:"tripRef"`
	Label          string    `json:"label"`
	Currency       string    `json:"currency"`
	PaxConfigCount int       `json:"paxConfigCount"`
	ErrorCount     int       `json:"errorCount"`
	WarningCount   int       `json:"warningCount"`
	InfoCount      int       `json:"infoCount"`
	MissingRates   []string  `json:"missingRates"`
	Source         string    `json:"source"`
	ReceivedAt     string    `json:"receivedAt"`
	CreatedAt      string    `json:"createdAt"`
}

// SnapshotDetailDTO adds the raw pricing payload to the snapshot metadata
type SnapshotDetailDTO struct {
	SnapshotDTO
	Results CotationResults `json:"results"`
}

// SnapshotListDTO is a paged list of snapshots
type SnapshotListDTO struct {
	Items    []SnapshotDTO `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// ExchangeRatesDTO is the response of GET /exchange-rates/{base}
type ExchangeRatesDTO struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt string             `json:"fetchedAt"`
}
