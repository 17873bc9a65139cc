package payoutdto

import "github.com/shopspring/decimal"

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Sweep   string
	Period  string
	Scanned int
	Created int
	// batch already existed for the period
	Skipped  int
	Failed   int
	NetTotal decimal.Decimal
}
