package twittertext

import (
	"sort"

	"github.com/sololance/twitter-text-go/internal/grammar"
)

// ParseResult is the length engine's verdict for one text under one
// Configuration. Values are never mutated after construction.
type ParseResult struct {
	// WeightedLength is the weighted codepoint count, in characters.
	WeightedLength int
	// Permillage is WeightedLength as parts-per-thousand of the maximum.
	Permillage int
	// Valid reports whether the text fits the configured limit and carries
	// no forbidden codepoints.
	Valid bool
	// DisplayTextRange is the [start, end) codepoint span of displayable
	// text, i.e. the whole input.
	DisplayTextRange Range
	// ValidTextRange is the [start, end) codepoint span that still fits
	// within the limit, usable for truncation previews.
	ValidTextRange Range
}

// ParseTweet computes the weighted length and validity of text. A nil cfg
// selects DefaultConfiguration. Every URL entity contributes the fixed
// transformed length instead of its literal characters; with emoji parsing
// enabled an emoji sequence contributes one default weight no matter how
// many codepoints compose it.
//
// All division is integer floor division. The empty text is not a valid
// tweet but not an error either.
func ParseTweet(text string, cfg *Configuration) ParseResult {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	if text == "" {
		return ParseResult{}
	}

	runes := []rune(text)
	urls := NewExtractor().ExtractURLsWithIndices(text)

	maxScaled := cfg.MaxWeightedLength * cfg.Scale
	sum := 0
	validEnd := 0
	hasInvalid := false
	urlIdx := 0

	for i := 0; i < len(runes); {
		advance := 0
		if urlIdx < len(urls) && urls[urlIdx].Range.Start == i {
			sum += cfg.TransformedURLLength * cfg.Scale
			advance = urls[urlIdx].Range.Len()
			urlIdx++
		} else {
			if grammar.IsInvalidRune(runes[i]) {
				hasInvalid = true
			}
			if cfg.EmojiParsingEnabled {
				if n := grammar.EmojiSequence(runes, i); n > 0 {
					sum += cfg.DefaultWeight
					advance = n
				}
			}
			if advance == 0 {
				sum += weightOf(cfg, runes[i])
				advance = 1
			}
		}
		i += advance
		if sum <= maxScaled {
			validEnd = i
		}
	}

	weighted := sum / cfg.Scale
	return ParseResult{
		WeightedLength:   weighted,
		Permillage:       weighted * 1000 / cfg.MaxWeightedLength,
		Valid:            !hasInvalid && weighted > 0 && weighted <= cfg.MaxWeightedLength,
		DisplayTextRange: Range{Start: 0, End: len(runes)},
		ValidTextRange:   Range{Start: 0, End: validEnd},
	}
}

// TweetLength returns the weighted length of text under cfg (nil for the
// default configuration).
func TweetLength(text string, cfg *Configuration) int {
	return ParseTweet(text, cfg).WeightedLength
}

// weightOf looks up the weight of a single codepoint by binary search over
// the configuration's sorted ranges.
func weightOf(cfg *Configuration, r rune) int {
	ranges := cfg.Ranges
	idx := sort.Search(len(ranges), func(i int) bool { return ranges[i].End >= int(r) })
	if idx < len(ranges) && int(r) >= ranges[idx].Start {
		return ranges[idx].Weight
	}
	return cfg.DefaultWeight
}
