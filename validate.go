package twittertext

import (
	"unicode/utf8"

	"github.com/sololance/twitter-text-go/internal/grammar"
)

// The validators below judge a standalone string presented in isolation.
// They are deliberately stricter than the extraction grammar: extraction
// tolerates surrounding prose and unencoded characters, validation requires
// the whole string to match with no remainder.

type urlValidationOptions struct {
	unicodeDomains  bool
	requireProtocol bool
}

// URLValidationOption configures IsValidURL.
type URLValidationOption func(*urlValidationOptions)

// WithUnicodeDomains sets whether non-ASCII authority labels are accepted.
// Enabled by default.
func WithUnicodeDomains(enabled bool) URLValidationOption {
	return func(o *urlValidationOptions) {
		o.unicodeDomains = enabled
	}
}

// WithRequireProtocol sets whether the URL must carry an explicit scheme.
// Required by default.
func WithRequireProtocol(required bool) URLValidationOption {
	return func(o *urlValidationOptions) {
		o.requireProtocol = required
	}
}

// IsValidURL reports whether url is a well-formed standalone URL: scheme
// (http or https), authority, path, query and fragment must each match the
// strict grammar across the full string.
func IsValidURL(url string, opts ...URLValidationOption) bool {
	o := urlValidationOptions{unicodeDomains: true, requireProtocol: true}
	for _, opt := range opts {
		opt(&o)
	}
	if url == "" {
		return false
	}
	g := defaultGrammar()
	m := g.URLSplit.FindStringSubmatch(url)
	if m == nil {
		return false
	}
	scheme, authority, path, query, fragment := m[1], m[2], m[3], m[4], m[5]

	if scheme == "" {
		if o.requireProtocol {
			return false
		}
	} else if !g.Scheme.MatchString(scheme) {
		return false
	}
	if authority == "" {
		return false
	}
	authorityPattern := g.ASCIIAuthority
	if o.unicodeDomains {
		authorityPattern = g.UnicodeAuthority
	}
	if !authorityPattern.MatchString(authority) {
		return false
	}
	if !g.Path.MatchString(path) {
		return false
	}
	if query != "" && !g.Query.MatchString(query) {
		return false
	}
	if fragment != "" && !g.Fragment.MatchString(fragment) {
		return false
	}
	return true
}

// IsValidTweet reports whether text is a valid tweet under the historical
// 140-character configuration. It forwards to ParseTweet; there is no
// second validation code path.
func IsValidTweet(text string) bool {
	return ParseTweet(text, ConfigV1()).Valid
}

// IsValidUsername reports whether username is exactly one @screen_name and
// nothing else.
func IsValidUsername(username string) bool {
	rest, ok := stripAtSign(username)
	if !ok || rest == "" {
		return false
	}
	names := NewExtractor().ExtractMentionedScreenNames(username)
	return len(names) == 1 && names[0] == rest
}

// IsValidList reports whether list is exactly one @screen_name/list-slug
// reference and nothing else.
func IsValidList(list string) bool {
	entities := NewExtractor().ExtractMentionsOrListsWithIndices(list)
	if len(entities) != 1 {
		return false
	}
	e := entities[0]
	return e.Type == EntityList && e.ListSlug != "" && coversWhole(list, e.Range)
}

// IsValidHashtag reports whether hashtag is exactly one #tag and nothing
// else.
func IsValidHashtag(hashtag string) bool {
	entities := NewExtractor().ExtractHashtagsWithIndices(hashtag)
	return len(entities) == 1 && coversWhole(hashtag, entities[0].Range)
}

// IsValidCashtag reports whether cashtag is exactly one $SYMBOL and nothing
// else.
func IsValidCashtag(cashtag string) bool {
	entities := NewExtractor().ExtractCashtagsWithIndices(cashtag)
	return len(entities) == 1 && coversWhole(cashtag, entities[0].Range)
}

func stripAtSign(s string) (string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !grammar.IsAtSign(r) {
		return "", false
	}
	return s[size:], true
}

func coversWhole(text string, r Range) bool {
	return r.Start == 0 && r.End == utf8.RuneCountInString(text)
}
