// Package core holds the note domain: the Note entity and its enumerations,
// the storage-neutral Record codec, the Repository contract, the pure
// filter/search engine and the Service that orchestrates them.
//
// Nothing in this package renders text for humans; see package display.
package core
