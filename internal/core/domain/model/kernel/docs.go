// Package kernel holds primitives shared by every domain package of the
// vacancy bot. Today that is UUID, the internal identifier assigned to
// persisted vacancies and search query records.
package kernel
