package twittertext

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/sololance/twitter-text-go/internal/grammar"
)

var (
	sharedGrammar     *grammar.Grammar
	sharedGrammarOnce sync.Once
)

// defaultGrammar returns the process-wide compiled pattern set (singleton).
func defaultGrammar() *grammar.Grammar {
	sharedGrammarOnce.Do(func() {
		sharedGrammar = grammar.New()
	})
	return sharedGrammar
}

// Extractor scans text for mention, list, hashtag, cashtag and URL entities.
// An Extractor is immutable after construction and safe for concurrent use.
type Extractor struct {
	g                          *grammar.Grammar
	extractURLsWithoutProtocol bool
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithURLsWithoutProtocol sets whether bare domains like "example.com" are
// extracted as URLs. Enabled by default.
func WithURLsWithoutProtocol(enabled bool) ExtractorOption {
	return func(e *Extractor) {
		e.extractURLsWithoutProtocol = enabled
	}
}

// NewExtractor returns an Extractor backed by the shared grammar.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		g:                          defaultGrammar(),
		extractURLsWithoutProtocol: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// runeIndexer converts monotonically increasing byte offsets into codepoint
// offsets without rescanning the prefix on every call.
type runeIndexer struct {
	text   string
	byteAt int
	runeAt int
}

func (ix *runeIndexer) runeIndex(byteOff int) int {
	for ix.byteAt < byteOff {
		_, size := utf8.DecodeRuneInString(ix.text[ix.byteAt:])
		ix.byteAt += size
		ix.runeAt++
	}
	return ix.runeAt
}

// ExtractEntities returns all entities of every type, ordered by start index
// with no two ranges overlapping. URLs win conflicts against shorter
// mention, hashtag and cashtag candidates matched inside them.
func (e *Extractor) ExtractEntities(text string) []Entity {
	if text == "" {
		return nil
	}
	all := e.ExtractURLsWithIndices(text)
	all = append(all, e.ExtractHashtagsWithIndices(text)...)
	all = append(all, e.ExtractCashtagsWithIndices(text)...)
	all = append(all, e.ExtractMentionsOrListsWithIndices(text)...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Range.Start < all[j].Range.Start })

	out := all[:0]
	for _, ent := range all {
		if n := len(out); n > 0 && out[n-1].Range.Overlaps(ent.Range) {
			prev := out[n-1]
			if ent.Type == EntityURL && prev.Type != EntityURL && ent.Range.Len() > prev.Range.Len() {
				out[n-1] = ent
			} else if ent.Type != EntityURL && prev.Type != EntityURL {
				// Two non-URL entities may never overlap; this is a
				// context-rule defect, not legitimate input ambiguity.
				Logger.Printf("overlapping %s [%d,%d) and %s [%d,%d) entities survived conflict resolution",
					prev.Type, prev.Range.Start, prev.Range.End,
					ent.Type, ent.Range.Start, ent.Range.End)
			}
			continue
		}
		out = append(out, ent)
	}
	return out
}

// ExtractMentionedScreenNames returns the screen names mentioned in text,
// without the @ sign. A list reference contributes its owner's screen name.
func (e *Extractor) ExtractMentionedScreenNames(text string) []string {
	entities := e.ExtractMentionsWithIndices(text)
	names := make([]string, 0, len(entities))
	for _, ent := range entities {
		names = append(names, ent.Value)
	}
	return names
}

// ExtractMentionsWithIndices returns mention entities whose ranges cover the
// @screen_name only, excluding any list slug.
func (e *Extractor) ExtractMentionsWithIndices(text string) []Entity {
	entities := e.ExtractMentionsOrListsWithIndices(text)
	for i, ent := range entities {
		if ent.Type == EntityList {
			slugLen := utf8.RuneCountInString(ent.ListSlug)
			entities[i] = Entity{
				Type:  EntityMention,
				Range: Range{Start: ent.Range.Start, End: ent.Range.End - slugLen},
				Text:  strings.TrimSuffix(ent.Text, ent.ListSlug),
				Value: ent.Value,
			}
		}
	}
	return entities
}

// ExtractMentionsOrListsWithIndices returns mention and list entities. List
// ranges include the slug.
func (e *Extractor) ExtractMentionsOrListsWithIndices(text string) []Entity {
	if !strings.ContainsAny(text, "@＠") {
		return nil
	}
	matches := e.g.Mention.FindAllStringSubmatchIndex(text, -1)
	ix := runeIndexer{text: text}
	var out []Entity
	for _, m := range matches {
		atStart, nameEnd, listStart, listEnd := m[2], m[5], m[6], m[7]
		end := nameEnd
		if listEnd >= 0 {
			end = listEnd
		}
		if !e.validMentionEnd(text[end:]) {
			continue
		}
		ent := Entity{
			Type:  EntityMention,
			Range: Range{Start: ix.runeIndex(atStart), End: ix.runeIndex(end)},
			Text:  text[atStart:end],
			Value: text[m[4]:nameEnd],
		}
		if listEnd >= 0 {
			ent.Type = EntityList
			ent.ListSlug = text[listStart:listEnd]
		}
		out = append(out, ent)
	}
	return out
}

// validMentionEnd rejects candidates glued to more name-like characters: a
// second at sign, a word character (screen name longer than the limit), a
// Latin accent, or the start of a protocol.
func (e *Extractor) validMentionEnd(rest string) bool {
	if rest == "" {
		return true
	}
	if strings.HasPrefix(rest, "://") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if grammar.IsAtSign(r) || grammar.IsLatinAccent(r) || isWordRune(r) {
		return false
	}
	return true
}

// ExtractReplyScreenName returns the screen name of the reply mention, which
// must be the first non-space content of the text. At most one reply exists;
// "" means the text is not a reply.
func (e *Extractor) ExtractReplyScreenName(text string) string {
	m := e.g.Reply.FindStringSubmatchIndex(text)
	if m == nil {
		return ""
	}
	if !e.validMentionEnd(text[m[5]:]) {
		return ""
	}
	return text[m[4]:m[5]]
}

// ExtractHashtags returns the hashtags in text without the # sign.
func (e *Extractor) ExtractHashtags(text string) []string {
	entities := e.ExtractHashtagsWithIndices(text)
	tags := make([]string, 0, len(entities))
	for _, ent := range entities {
		tags = append(tags, ent.Value)
	}
	return tags
}

// ExtractHashtagsWithIndices returns hashtag entities, ranges covering the
// # sign and the tag.
func (e *Extractor) ExtractHashtagsWithIndices(text string) []Entity {
	if !strings.ContainsAny(text, "#＃") {
		return nil
	}
	matches := e.g.Hashtag.FindAllStringSubmatchIndex(text, -1)
	ix := runeIndexer{text: text}
	var out []Entity
	for _, m := range matches {
		hashStart, tagStart, tagEnd := m[2], m[4], m[5]
		tag := text[tagStart:tagEnd]
		// A tag of digits, underscores and joiners alone is not a hashtag.
		if !containsLetterOrMark(tag) {
			continue
		}
		rest := text[tagEnd:]
		if strings.HasPrefix(rest, "://") {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); rest != "" && grammar.IsHashSign(r) {
			continue
		}
		out = append(out, Entity{
			Type:  EntityHashtag,
			Range: Range{Start: ix.runeIndex(hashStart), End: ix.runeIndex(tagEnd)},
			Text:  text[hashStart:tagEnd],
			Value: tag,
		})
	}
	return out
}

// ExtractCashtags returns the cashtags in text without the $ sign.
func (e *Extractor) ExtractCashtags(text string) []string {
	entities := e.ExtractCashtagsWithIndices(text)
	tags := make([]string, 0, len(entities))
	for _, ent := range entities {
		tags = append(tags, ent.Value)
	}
	return tags
}

// ExtractCashtagsWithIndices returns cashtag entities, ranges covering the
// $ sign and the symbol.
func (e *Extractor) ExtractCashtagsWithIndices(text string) []Entity {
	if !strings.Contains(text, "$") {
		return nil
	}
	matches := e.g.Cashtag.FindAllStringSubmatchIndex(text, -1)
	ix := runeIndexer{text: text}
	var out []Entity
	for _, m := range matches {
		dollarStart, symStart, symEnd := m[2], m[4], m[5]
		rest := text[symEnd:]
		if r, _ := utf8.DecodeRuneInString(rest); rest != "" && (isWordRune(r) || r == '$') {
			continue
		}
		out = append(out, Entity{
			Type:  EntityCashtag,
			Range: Range{Start: ix.runeIndex(dollarStart), End: ix.runeIndex(symEnd)},
			Text:  text[dollarStart:symEnd],
			Value: text[symStart:symEnd],
		})
	}
	return out
}

// ExtractURLs returns the URLs in text.
func (e *Extractor) ExtractURLs(text string) []string {
	entities := e.ExtractURLsWithIndices(text)
	urls := make([]string, 0, len(entities))
	for _, ent := range entities {
		urls = append(urls, ent.Value)
	}
	return urls
}

// ExtractURLsWithIndices returns URL entities found by the permissive
// extraction grammar. Candidates without a protocol additionally need a
// Latin-charset domain, a listed TLD and a clean preceding character.
func (e *Extractor) ExtractURLsWithIndices(text string) []Entity {
	if !strings.Contains(text, ".") {
		return nil
	}
	matches := e.g.ExtractURL.FindAllStringSubmatchIndex(text, -1)
	ix := runeIndexer{text: text}
	var out []Entity
	for _, m := range matches {
		urlStart, urlEnd := m[4], m[5]
		hasProtocol := m[6] >= 0
		domain := text[m[8]:m[9]]
		if !hasProtocol {
			if !e.extractURLsWithoutProtocol {
				continue
			}
			if preceding := text[m[2]:m[3]]; preceding != "" {
				last, _ := utf8.DecodeLastRuneInString(preceding)
				if last == '.' || last == '-' || last == '_' || last == '/' {
					continue
				}
			}
			if !e.g.LatinDomain.MatchString(domain) {
				continue
			}
		}
		if !acceptableTLD(domain, hasProtocol) {
			continue
		}
		url := text[urlStart:urlEnd]
		out = append(out, Entity{
			Type:  EntityURL,
			Range: Range{Start: ix.runeIndex(urlStart), End: ix.runeIndex(urlEnd)},
			Text:  url,
			Value: url,
		})
	}
	return out
}

// acceptableTLD checks the final domain label: ASCII labels must be listed
// (or punycode); internationalized labels require an explicit protocol.
func acceptableTLD(domain string, hasProtocol bool) bool {
	label := domain[strings.LastIndexByte(domain, '.')+1:]
	for _, r := range label {
		if r > unicode.MaxASCII {
			return hasProtocol
		}
	}
	return grammar.ValidTLD(label)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsLetterOrMark(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsMark(r) {
			return true
		}
	}
	return false
}
