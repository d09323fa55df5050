package twittertext

import (
	"sort"
	"strings"
)

// HighlightHit is a [Start, End) codepoint range into the visible text of a
// message, typically produced by a search engine. Hits arrive unordered and
// possibly overlapping; the highlighter normalizes them before use.
type HighlightHit struct {
	Start int
	End   int
}

// HitHighlighter splices highlight markup around hit ranges in plain or
// already-autolinked text. Existing markup is never split: a hit spanning a
// tag is closed before the tag and reopened after it, so the visible text is
// still fully highlighted while the tag stays intact.
type HitHighlighter struct {
	tag string
}

// HighlightOption configures a HitHighlighter.
type HighlightOption func(*HitHighlighter)

// WithHighlightTag sets the element name wrapped around hits ("em" by
// default).
func WithHighlightTag(tag string) HighlightOption {
	return func(h *HitHighlighter) { h.tag = tag }
}

// NewHitHighlighter returns a HitHighlighter with the default "em" tag.
func NewHitHighlighter(opts ...HighlightOption) *HitHighlighter {
	h := &HitHighlighter{tag: "em"}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HighlightHits wraps the hit ranges of text in the default highlight tag.
func HighlightHits(text string, hits []HighlightHit) string {
	return NewHitHighlighter().Highlight(text, hits)
}

// Highlight wraps each hit range of the visible text in the highlight tag.
// Hit offsets index the visible text, counted in codepoints with all markup
// tags removed, matching the offsets a search engine reports against the
// plain message. Empty hits return the input unchanged; hits beyond the
// visible length are clamped or ignored.
func (h *HitHighlighter) Highlight(text string, hits []HighlightHit) string {
	if text == "" || len(hits) == 0 {
		return text
	}
	merged := mergeHits(hits)
	if len(merged) == 0 {
		return text
	}

	openTag := "<" + h.tag + ">"
	closeTag := "</" + h.tag + ">"

	var sb strings.Builder
	sb.Grow(len(text) + len(merged)*(len(openTag)+len(closeTag)))

	visible := 0 // codepoint offset into the visible text
	hitIdx := 0
	tagDepth := 0
	inHighlight := false

	for _, r := range text {
		switch {
		case r == '<':
			// Never split a tag: suspend the highlight across it.
			if inHighlight {
				sb.WriteString(closeTag)
			}
			tagDepth++
			sb.WriteRune(r)
		case r == '>' && tagDepth > 0:
			tagDepth--
			sb.WriteRune(r)
			if inHighlight && tagDepth == 0 {
				sb.WriteString(openTag)
			}
		case tagDepth > 0:
			sb.WriteRune(r)
		default:
			if !inHighlight && hitIdx < len(merged) && visible == merged[hitIdx].Start {
				sb.WriteString(openTag)
				inHighlight = true
			}
			sb.WriteRune(r)
			visible++
			if inHighlight && visible == merged[hitIdx].End {
				sb.WriteString(closeTag)
				inHighlight = false
				hitIdx++
			}
		}
	}
	if inHighlight {
		sb.WriteString(closeTag)
	}
	return sb.String()
}

// mergeHits sorts hits by start and merges overlapping or adjacent ranges,
// dropping empty ones.
func mergeHits(hits []HighlightHit) []HighlightHit {
	sorted := make([]HighlightHit, 0, len(hits))
	for _, hit := range hits {
		if hit.Start < 0 {
			hit.Start = 0
		}
		if hit.End > hit.Start {
			sorted = append(sorted, hit)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var merged []HighlightHit
	for _, hit := range sorted {
		if n := len(merged); n > 0 && hit.Start <= merged[n-1].End {
			if hit.End > merged[n-1].End {
				merged[n-1].End = hit.End
			}
			continue
		}
		merged = append(merged, hit)
	}
	return merged
}
