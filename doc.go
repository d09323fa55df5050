// Package twittertext recognizes tweet entities (@mentions, #hashtags,
// $cashtags, URLs and list references) in free-form text, computes the
// weighted tweet length used to decide message validity, and renders
// recognized entities as markup.
//
// Core functionality:
//   - Extractor: ordered, non-overlapping entities with codepoint indices
//   - ParseTweet: weighted length, permillage and validity under a
//     Configuration, with fixed-length URL substitution
//   - Autolinker: HTML rendering of extracted or API-supplied entities
//   - HitHighlighter: tag-safe splicing of search hit markup
//
// All entity offsets are [start, end) ranges counted in Unicode codepoints
// of the original string; every component agrees on that unit.
//
// Example:
//
//	entities := twittertext.NewExtractor().ExtractEntities("hello @world")
//	html := twittertext.AutoLink("hello @world")
//	result := twittertext.ParseTweet("hello @world", nil)
//	if result.Valid {
//	    // safe to send
//	}
//
// Everything here is a pure function over its inputs: no I/O, no network
// and no shared mutable state. Configuration, Extractor and Autolinker
// values are immutable after construction and safe for concurrent reuse.
package twittertext
