// Package feed parses podcast RSS documents into ordered episode records.
//
// Parsing is lenient at the item level: an item missing its title or
// publication date, or carrying a date no known format can parse, is dropped
// and the rest of the feed continues. Only a document that is not well-formed
// XML fails the parse as a whole. Episode order is the feed's own order,
// newest first for every catalog show.
package feed
