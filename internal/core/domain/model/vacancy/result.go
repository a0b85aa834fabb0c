package vacancy

// Page is one page of provider results.
type Page struct {
	Items []Vacancy
	// Found is the provider's total number of matches for the query.
	Found int
	// Pages is the provider's page count for the requested page size.
	Pages int
}
