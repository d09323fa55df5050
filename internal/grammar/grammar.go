// Package grammar compiles the pattern set shared by the extractor, the
// validators and the length engine.
//
// A Grammar value is compiled once by New and shared read-only afterwards;
// nothing in this package keeps process-wide mutable state. Two URL grammars
// coexist on purpose: the extraction pattern is permissive so it can find
// URL-shaped spans inside arbitrary prose, while the validation patterns are
// anchored and strict because they judge a standalone string in isolation.
package grammar

import "regexp"

// Character classes. The upstream platform grammar enumerates script ranges
// by hand because it predates engines with Unicode class support; RE2 lets
// the hashtag alphabet collapse to \p{L}\p{M}, which covers the same Latin,
// Cyrillic, Greek, Hebrew, Arabic, Thai, Hangul, kana and CJK ranges plus
// combining marks.
const (
	hashtagAlpha        = `\p{L}\p{M}`
	hashtagSpecialChars = `_\x{200c}\x{200d}\x{a67e}\x{05be}\x{05f3}\x{05f4}\x{ff5e}\x{301c}\x{309b}\x{309c}\x{30a0}\x{30fb}\x{3003}\x{0f0b}\x{0f0c}\x{00b7}`
	hashtagAlphaNumeric = hashtagAlpha + `\p{Nd}` + hashtagSpecialChars

	atSigns   = `@\x{ff20}`
	hashSigns = `#\x{ff03}`

	latinAccents = `\x{00c0}-\x{00d6}\x{00d8}-\x{00f6}\x{00f8}-\x{00ff}\x{0100}-\x{024f}\x{1e00}-\x{1eff}`

	// Bidirectional formatting characters never belong to an entity and
	// invalidate a tweet outright, together with the BOM and the two
	// non-characters.
	directionalChars  = `\x{202a}-\x{202e}\x{2066}-\x{2069}`
	invalidCharsClass = `\x{fffe}\x{feff}\x{ffff}` + directionalChars
)

// URL extraction classes.
const (
	urlPrecedingChars = `(?:[^a-zA-Z0-9@\x{ff20}$#\x{ff03}` + directionalChars + `]|^)`

	latinDomainChars   = `a-z0-9` + latinAccents
	unicodeDomainChars = `\p{L}\p{N}`

	urlGeneralPathChars = `[a-z0-9!\*';:=\+,\.\$/%#\[\]\x{2013}_~@\|&` + latinAccents + `-]`
	urlPathEndingChars  = `[a-z0-9=_#/\+` + latinAccents + `-]`
	urlQueryChars       = `[a-z0-9!\?\*'\(\);:&=\+\$/%#\[\]_\.,~\|@{}-]`
	urlQueryEndingChars = `[a-z0-9_&=#/-]`
)

var (
	subdomainSegment = `(?:[` + unicodeDomainChars + `](?:[` + unicodeDomainChars + `_-]*[` + unicodeDomainChars + `])?\.)`
	domainSegment    = `(?:[` + unicodeDomainChars + `](?:[` + unicodeDomainChars + `-]*[` + unicodeDomainChars + `])?)`
	punycodeTLD      = `xn--[a-z0-9]+`
	extractTLD       = `(?:` + punycodeTLD + `|\p{L}{2,})`
	extractDomain    = subdomainSegment + `*` + domainSegment + `\.` + extractTLD

	balancedParens = `\((?:` + urlGeneralPathChars + `+|(?:` + urlGeneralPathChars + `*\(` + urlGeneralPathChars + `+\)` + urlGeneralPathChars + `*))\)`
	urlPath        = `(?:` + urlGeneralPathChars + `*(?:` + balancedParens + urlGeneralPathChars + `*)*(?:` + urlPathEndingChars + `|` + balancedParens + `)|@` + urlGeneralPathChars + `+/)`
)

// Strict validation classes (RFC 3986 flavored, percent-encoding required
// where the extraction grammar would tolerate raw characters).
const (
	pctEncoded   = `%[0-9a-f]{2}`
	userinfoChar = `[a-z0-9!$&'()*+,;=:._~-]`
	pcharClass   = `[a-z0-9!$&'()*+,;=:@._~-]`
	queryClass   = `[a-z0-9!$&'()*+,;=:@/?._~-]`
	asciiLabel   = `(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)`
	unicodeLabel = `(?:[` + unicodeDomainChars + `](?:[` + unicodeDomainChars + `-]*[` + unicodeDomainChars + `])?)`
	ipv4Address  = `(?:[0-9]{1,3}\.){3}[0-9]{1,3}`
)

// Grammar is the compiled pattern set. Construct it once with New and share
// it; all fields are read-only after construction.
type Grammar struct {
	// Free-text extraction patterns. Submatch layout is documented on each.

	// Hashtag: 1=hash sign, 2=tag text. The boundary character, when any,
	// is consumed by the leading group.
	Hashtag *regexp.Regexp
	// Mention: 1=at sign, 2=screen name, 3=list slug including slash.
	Mention *regexp.Regexp
	// Reply: 1=at sign, 2=screen name, anchored at the start of the text.
	Reply *regexp.Regexp
	// Cashtag: 1=dollar sign, 2=symbol text.
	Cashtag *regexp.Regexp
	// ExtractURL: 1=preceding char, 2=url, 3=protocol, 4=domain, 5=port,
	// 6=path, 7=query.
	ExtractURL *regexp.Regexp

	// LatinDomain anchors the domain charset permitted for URLs written
	// without a protocol; non-Latin authorities require an explicit scheme.
	LatinDomain *regexp.Regexp

	// InvalidChars matches codepoints that invalidate a whole tweet.
	InvalidChars *regexp.Regexp

	// Strict standalone-URL validation patterns, all anchored.
	URLSplit         *regexp.Regexp // 1=scheme, 2=authority, 3=path, 4=query, 5=fragment
	Scheme           *regexp.Regexp
	ASCIIAuthority   *regexp.Regexp // 1=host, 2=port
	UnicodeAuthority *regexp.Regexp // 1=host, 2=port
	Path             *regexp.Regexp
	Query            *regexp.Regexp
	Fragment         *regexp.Regexp
}

// New compiles the full pattern set. It is deliberately the only place in
// the module where patterns are compiled.
func New() *Grammar {
	return &Grammar{
		Hashtag: regexp.MustCompile(
			`(?:^|[^&` + hashtagAlphaNumeric + `])([` + hashSigns + `])([` + hashtagAlphaNumeric + `]+)`),
		Mention: regexp.MustCompile(
			`(?:^|[^a-zA-Z0-9_!#$%&*` + atSigns + `])([` + atSigns + `])([a-zA-Z0-9_]{1,20})(/[a-zA-Z][a-zA-Z0-9_-]{0,24})?`),
		Reply: regexp.MustCompile(
			`^[\s\p{Zs}\x{feff}]*([` + atSigns + `])([a-zA-Z0-9_]{1,20})`),
		Cashtag: regexp.MustCompile(
			`(?:^|[\s\p{Zs}])(\$)([a-zA-Z]{1,6}(?:[._][a-zA-Z]{1,2})?)`),
		ExtractURL: regexp.MustCompile(
			`(?i)(` + urlPrecedingChars + `)` +
				`((https?://)?` +
				`(` + extractDomain + `)` +
				`(?::([0-9]+))?` +
				`(/(?:` + urlPath + `)?)?` +
				`(\?` + urlQueryChars + `*` + urlQueryEndingChars + `)?` +
				`)`),
		LatinDomain: regexp.MustCompile(
			`(?i)^(?:[` + latinDomainChars + `_-]+\.)+` + extractTLD + `$`),
		InvalidChars: regexp.MustCompile(`[` + invalidCharsClass + `]`),

		URLSplit: regexp.MustCompile(
			`\A(?:([^:/?#]+)://)?([^/?#]*)([^?#]*)(?:\?([^#]*))?(?:#(.*))?\z`),
		Scheme: regexp.MustCompile(`(?i)\Ahttps?\z`),
		ASCIIAuthority: regexp.MustCompile(
			`(?i)\A(?:(?:` + userinfoChar + `|` + pctEncoded + `)+@)?` +
				`((?:` + asciiLabel + `\.)+[a-z]{2,}|` + ipv4Address + `)` +
				`(?::([0-9]{1,5}))?\z`),
		UnicodeAuthority: regexp.MustCompile(
			`(?i)\A(?:(?:` + userinfoChar + `|` + pctEncoded + `)+@)?` +
				`((?:` + unicodeLabel + `\.)+(?:\p{L}{2,}|` + punycodeTLD + `)|` + ipv4Address + `)` +
				`(?::([0-9]{1,5}))?\z`),
		Path: regexp.MustCompile(
			`(?i)\A(?:/(?:` + pcharClass + `|` + pctEncoded + `)*)*\z`),
		Query: regexp.MustCompile(
			`(?i)\A(?:` + queryClass + `|` + pctEncoded + `)*\z`),
		Fragment: regexp.MustCompile(
			`(?i)\A(?:` + queryClass + `|` + pctEncoded + `)*\z`),
	}
}

// IsAtSign reports whether r is an at sign in either its ASCII or fullwidth
// form.
func IsAtSign(r rune) bool { return r == '@' || r == '＠' }

// IsHashSign reports whether r is a hash sign in either its ASCII or
// fullwidth form.
func IsHashSign(r rune) bool { return r == '#' || r == '＃' }

// IsLatinAccent reports whether r falls in the Latin accent ranges used by
// the mention terminator rule.
func IsLatinAccent(r rune) bool {
	switch {
	case r >= 0x00c0 && r <= 0x00d6, r >= 0x00d8 && r <= 0x00f6,
		r >= 0x00f8 && r <= 0x00ff, r >= 0x0100 && r <= 0x024f,
		r >= 0x1e00 && r <= 0x1eff:
		return true
	}
	return false
}

// IsInvalidRune reports whether r is one of the codepoints that make a whole
// tweet invalid regardless of its weighted length.
func IsInvalidRune(r rune) bool {
	switch {
	case r == 0xfffe, r == 0xfeff, r == 0xffff:
		return true
	case r >= 0x202a && r <= 0x202e, r >= 0x2066 && r <= 0x2069:
		return true
	}
	return false
}
