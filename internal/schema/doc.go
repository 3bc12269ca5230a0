// ABOUTME: Package schema describes record fields once for every CRUD screen
// ABOUTME: Dialogs, tables and filters read field metadata from here

// Package schema holds the field schema and enumerated option sets that
// parameterise the generic record screens.
package schema
