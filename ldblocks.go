// Package ldblocks extracts schema.org structured data (FAQPage and HowTo
// JSON-LD) from documents authored with a block-based editor, caches the
// derived data per document and serves it back to rendered pages and an
// HTTP read API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gjson/, bluemonday/).
package ldblocks
