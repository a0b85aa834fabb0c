package commands

// SearchSettings tunes interactive searches.
type SearchSettings struct {
	// PerPage is the provider page size, at most ports.MaxPerPage.
	PerPage int
	// MaxPages bounds the provider pages fetched; 0 fetches all of them.
	MaxPages int
	// PageSize is the number of listings per message page.
	PageSize int
}

// DefaultPageSize is shared by searches and deliveries so that page callbacks
// slice a cached list the same way whichever flow cached it.
const DefaultPageSize = 5

// DefaultSearchSettings fetches everything in pages of 100.
func DefaultSearchSettings() SearchSettings {
	return SearchSettings{PerPage: 100, MaxPages: 0, PageSize: DefaultPageSize}
}

// DeliverySettings tunes scheduled deliveries.
type DeliverySettings struct {
	// BatchSize is how many listings one delivery fetches and may send.
	BatchSize int
	// PageSize is the number of listings per message page.
	PageSize int
}

// DefaultDeliverySettings fetches a single page of 20.
func DefaultDeliverySettings() DeliverySettings {
	return DeliverySettings{BatchSize: 20, PageSize: DefaultPageSize}
}
