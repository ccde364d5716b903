// Package flexlist extracts a configurable data table from a rendered wiki
// page and drives an interactive query engine (search, filter, sort, group,
// paginate) over the extracted rows.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, goldmark/).
package flexlist
