// Package vacancy models job listings as they are returned by the listings
// provider, the query that produced them and the filters a user can attach to
// a query.
package vacancy
