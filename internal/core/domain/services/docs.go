// Package services provides domain services of the vacancy bot that operate on
// plain values rather than on a single aggregate.
//
// The package includes:
//   - Paginator: slices a result list into pages and lays out the page
//     navigation buttons shown under a results message
package services
