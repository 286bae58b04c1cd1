// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol is a ticker in the catalogue of symbols prepared by default.
// Inactive symbols stay in the catalogue but are skipped by bulk preparation.
type Symbol struct {
	Code      string    // Ticker code as sent to the data source (e.g., "AAPL")
	Name      string    // Display name (e.g., "Apple Inc.")
	Exchange  string    // Listing exchange (e.g., "NASDAQ")
	Active    bool      // Whether bulk preparation includes the symbol
	SortKey   int       // Ascending preparation and display order
	UpdatedAt time.Time // Last modification time
}
