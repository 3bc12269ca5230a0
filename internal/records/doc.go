// Package records holds the in-memory Record Store and Filter Engine shared
// by every console screen.
//
// # Record Store
//
// Store is an ordered collection of records owned by exactly one screen.
// Records are mutated only through Create, Update, Apply and Delete:
//
//   - Create assigns a fresh id and appends the record
//   - Update replaces a record in place and keeps its position
//   - Apply transforms a record in place (used for deactivation)
//   - Delete removes a record
//
// Ids are assigned by the store and never change afterwards. Update, Apply
// and Delete return ErrNotFound when the target id is absent; the collection
// is left untouched in that case.
//
// # Filter Engine
//
// Filter is a pure function of (records, search term, category) that keeps
// relative order. View memoises the result for the last input triple using
// the store's Version counter, so unrelated re-renders do not refilter.
//
// # Errors
//
//   - ErrNotFound: update/delete target does not exist
//   - ValidationError: a draft failed field validation (see package schema)
//
// Store is not safe for concurrent use. Callers serialize events the way
// screens.Console does.
package records
