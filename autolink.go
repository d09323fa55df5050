package twittertext

import (
	"html"
	"strings"
	"unicode/utf8"
)

// Default rendering attributes. They mirror the platform's web client so
// that autolinked output drops into existing stylesheets.
const (
	defaultListClass     = "tweet-url list-slug"
	defaultUsernameClass = "tweet-url username"
	defaultHashtagClass  = "tweet-url hashtag"
	defaultCashtagClass  = "tweet-url cashtag"

	defaultUsernameURLBase = "https://twitter.com/"
	defaultListURLBase     = "https://twitter.com/"
	defaultHashtagURLBase  = "https://twitter.com/search?q=%23"
	defaultCashtagURLBase  = "https://twitter.com/search?q=%24"

	defaultInvisibleTagAttrs = `style='position:absolute;left:-9999px;'`
)

// Autolinker rewrites text into markup, wrapping each entity in an anchor
// element and HTML-escaping every non-entity span. It processes entities in
// index order in a single pass and never re-scans emitted markup.
//
// An Autolinker is immutable after construction and safe for concurrent use.
type Autolinker struct {
	extractor *Extractor

	urlClass      string
	listClass     string
	usernameClass string
	hashtagClass  string
	cashtagClass  string

	usernameURLBase string
	listURLBase     string
	hashtagURLBase  string
	cashtagURLBase  string

	invisibleTagAttrs     string
	noFollow              bool
	external              bool
	target                string
	usernameIncludeSymbol bool
	symbolTag             string
	textWithSymbolTag     string
}

// AutolinkOption configures an Autolinker.
type AutolinkOption func(*Autolinker)

// WithExtractor sets the extractor used to find entities.
func WithExtractor(ex *Extractor) AutolinkOption {
	return func(a *Autolinker) { a.extractor = ex }
}

// WithURLClass sets the CSS class of URL anchors. Empty by default.
func WithURLClass(class string) AutolinkOption {
	return func(a *Autolinker) { a.urlClass = class }
}

// WithListClass sets the CSS class of list anchors.
func WithListClass(class string) AutolinkOption {
	return func(a *Autolinker) { a.listClass = class }
}

// WithUsernameClass sets the CSS class of mention anchors.
func WithUsernameClass(class string) AutolinkOption {
	return func(a *Autolinker) { a.usernameClass = class }
}

// WithHashtagClass sets the CSS class of hashtag anchors.
func WithHashtagClass(class string) AutolinkOption {
	return func(a *Autolinker) { a.hashtagClass = class }
}

// WithCashtagClass sets the CSS class of cashtag anchors.
func WithCashtagClass(class string) AutolinkOption {
	return func(a *Autolinker) { a.cashtagClass = class }
}

// WithUsernameURLBase sets the URL prefix of mention anchors.
func WithUsernameURLBase(base string) AutolinkOption {
	return func(a *Autolinker) { a.usernameURLBase = base }
}

// WithListURLBase sets the URL prefix of list anchors.
func WithListURLBase(base string) AutolinkOption {
	return func(a *Autolinker) { a.listURLBase = base }
}

// WithHashtagURLBase sets the URL prefix of hashtag anchors.
func WithHashtagURLBase(base string) AutolinkOption {
	return func(a *Autolinker) { a.hashtagURLBase = base }
}

// WithCashtagURLBase sets the URL prefix of cashtag anchors.
func WithCashtagURLBase(base string) AutolinkOption {
	return func(a *Autolinker) { a.cashtagURLBase = base }
}

// WithNoFollow sets whether anchors carry rel="nofollow". On by default.
func WithNoFollow(enabled bool) AutolinkOption {
	return func(a *Autolinker) { a.noFollow = enabled }
}

// WithExternal sets whether anchors carry rel="external".
func WithExternal(enabled bool) AutolinkOption {
	return func(a *Autolinker) { a.external = enabled }
}

// WithTarget sets the target attribute of anchors, e.g. "_blank".
func WithTarget(target string) AutolinkOption {
	return func(a *Autolinker) { a.target = target }
}

// WithUsernameIncludeSymbol sets whether the @ sign is part of the mention
// anchor text instead of preceding it.
func WithUsernameIncludeSymbol(enabled bool) AutolinkOption {
	return func(a *Autolinker) { a.usernameIncludeSymbol = enabled }
}

// WithSymbolTag wraps the @/#/$ sign in the given tag, e.g. "s".
func WithSymbolTag(tag string) AutolinkOption {
	return func(a *Autolinker) { a.symbolTag = tag }
}

// WithTextWithSymbolTag wraps the text following the sign in the given tag,
// e.g. "b".
func WithTextWithSymbolTag(tag string) AutolinkOption {
	return func(a *Autolinker) { a.textWithSymbolTag = tag }
}

// WithInvisibleTagAttrs sets the attributes of the invisible spans emitted
// around shortened URL display text.
func WithInvisibleTagAttrs(attrs string) AutolinkOption {
	return func(a *Autolinker) { a.invisibleTagAttrs = attrs }
}

// NewAutolinker returns an Autolinker with the platform default rendering
// attributes.
func NewAutolinker(opts ...AutolinkOption) *Autolinker {
	a := &Autolinker{
		extractor:         NewExtractor(),
		listClass:         defaultListClass,
		usernameClass:     defaultUsernameClass,
		hashtagClass:      defaultHashtagClass,
		cashtagClass:      defaultCashtagClass,
		usernameURLBase:   defaultUsernameURLBase,
		listURLBase:       defaultListURLBase,
		hashtagURLBase:    defaultHashtagURLBase,
		cashtagURLBase:    defaultCashtagURLBase,
		invisibleTagAttrs: defaultInvisibleTagAttrs,
		noFollow:          true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AutoLink extracts all entities and returns the text as markup.
func AutoLink(text string, opts ...AutolinkOption) string {
	return NewAutolinker(opts...).AutoLink(text)
}

// AutoLink extracts all entities and returns the text as markup.
func (a *Autolinker) AutoLink(text string) string {
	return a.AutoLinkEntities(text, a.extractor.ExtractEntities(text))
}

// AutoLinkUsernamesAndLists links only mentions and lists.
func (a *Autolinker) AutoLinkUsernamesAndLists(text string) string {
	return a.AutoLinkEntities(text, a.extractor.ExtractMentionsOrListsWithIndices(text))
}

// AutoLinkHashtags links only hashtags.
func (a *Autolinker) AutoLinkHashtags(text string) string {
	return a.AutoLinkEntities(text, a.extractor.ExtractHashtagsWithIndices(text))
}

// AutoLinkCashtags links only cashtags.
func (a *Autolinker) AutoLinkCashtags(text string) string {
	return a.AutoLinkEntities(text, a.extractor.ExtractCashtagsWithIndices(text))
}

// AutoLinkURLs links only URLs.
func (a *Autolinker) AutoLinkURLs(text string) string {
	return a.AutoLinkEntities(text, a.extractor.ExtractURLsWithIndices(text))
}

// AutoLinkEntities renders text with the given entity list, which may come
// from extraction or from an external payload (see EntitiesFromPayload).
// Both paths produce output of identical shape. Entities must be ordered by
// start index; entities with out-of-bounds or regressing ranges are skipped.
func (a *Autolinker) AutoLinkEntities(text string, entities []Entity) string {
	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text) + len(entities)*64)
	pos := 0
	for _, e := range entities {
		if e.Range.Start < pos || e.Range.End > len(runes) || e.Range.Start > e.Range.End {
			Logger.Printf("skipping %s entity with bad range [%d,%d) at position %d",
				e.Type, e.Range.Start, e.Range.End, pos)
			continue
		}
		sb.WriteString(html.EscapeString(string(runes[pos:e.Range.Start])))
		switch e.Type {
		case EntityURL:
			a.writeURL(&sb, e)
		case EntityMention, EntityList:
			a.writeMentionOrList(&sb, e)
		case EntityHashtag:
			a.writeHashtag(&sb, e)
		case EntityCashtag:
			a.writeCashtag(&sb, e)
		}
		pos = e.Range.End
	}
	sb.WriteString(html.EscapeString(string(runes[pos:])))
	return sb.String()
}

func (a *Autolinker) writeMentionOrList(sb *strings.Builder, e Entity) {
	symbol, _ := utf8.DecodeRuneInString(e.Text)
	href := a.usernameURLBase + e.Value
	class := a.usernameClass
	linkText := e.Value
	if e.Type == EntityList {
		href = a.listURLBase + e.Value + e.ListSlug
		class = a.listClass
		linkText = e.Value + e.ListSlug
	}
	content := a.wrapTag(html.EscapeString(linkText), a.textWithSymbolTag)
	if a.usernameIncludeSymbol {
		content = a.wrapTag(string(symbol), a.symbolTag) + content
	} else {
		sb.WriteString(a.wrapTag(string(symbol), a.symbolTag))
	}
	a.writeAnchor(sb, class, href, "", content)
}

func (a *Autolinker) writeHashtag(sb *strings.Builder, e Entity) {
	symbol, _ := utf8.DecodeRuneInString(e.Text)
	content := a.wrapTag(string(symbol), a.symbolTag) +
		a.wrapTag(html.EscapeString(e.Value), a.textWithSymbolTag)
	a.writeAnchor(sb, a.hashtagClass, a.hashtagURLBase+e.Value, "#"+e.Value, content)
}

func (a *Autolinker) writeCashtag(sb *strings.Builder, e Entity) {
	content := a.wrapTag("$", a.symbolTag) +
		a.wrapTag(html.EscapeString(e.Value), a.textWithSymbolTag)
	a.writeAnchor(sb, a.cashtagClass, a.cashtagURLBase+e.Value, "$"+e.Value, content)
}

func (a *Autolinker) writeURL(sb *strings.Builder, e Entity) {
	title := ""
	if e.ExpandedURL != "" {
		title = e.ExpandedURL
	}
	a.writeAnchor(sb, a.urlClass, e.Value, title, a.urlLinkText(e))
}

// urlLinkText chooses the visible anchor text of a URL entity. External
// entities carrying a shortener's display/expanded pair get the hidden-span
// treatment so selecting the anchor copies the expanded URL; everything
// else renders the matched text.
func (a *Autolinker) urlLinkText(e Entity) string {
	if e.DisplayURL == "" {
		return html.EscapeString(e.Text)
	}
	if e.ExpandedURL == "" || !strings.Contains(e.DisplayURL, "…") {
		return html.EscapeString(e.DisplayURL)
	}
	visible := strings.Trim(e.DisplayURL, "…")
	idx := strings.Index(e.ExpandedURL, visible)
	if idx < 0 {
		return html.EscapeString(e.DisplayURL)
	}
	before := e.ExpandedURL[:idx]
	after := e.ExpandedURL[idx+len(visible):]

	var b strings.Builder
	b.WriteString(`<span class="tco-ellipsis">`)
	if strings.HasPrefix(e.DisplayURL, "…") {
		b.WriteString("…")
	}
	b.WriteString(`<span ` + a.invisibleTagAttrs + `>&nbsp;</span></span>`)
	b.WriteString(`<span ` + a.invisibleTagAttrs + `>` + html.EscapeString(before) + `</span>`)
	b.WriteString(`<span class="js-display-url">` + html.EscapeString(visible) + `</span>`)
	b.WriteString(`<span ` + a.invisibleTagAttrs + `>` + html.EscapeString(after) + `</span>`)
	if strings.HasSuffix(e.DisplayURL, "…") {
		b.WriteString(`<span class="tco-ellipsis"><span ` + a.invisibleTagAttrs + `>&nbsp;</span>…</span>`)
	}
	return b.String()
}

func (a *Autolinker) writeAnchor(sb *strings.Builder, class, href, title, content string) {
	sb.WriteString("<a")
	if class != "" {
		sb.WriteString(` class="` + html.EscapeString(class) + `"`)
	}
	sb.WriteString(` href="` + html.EscapeString(href) + `"`)
	if title != "" {
		sb.WriteString(` title="` + html.EscapeString(title) + `"`)
	}
	if rel := a.relValue(); rel != "" {
		sb.WriteString(` rel="` + rel + `"`)
	}
	if a.target != "" {
		sb.WriteString(` target="` + html.EscapeString(a.target) + `"`)
	}
	sb.WriteString(">" + content + "</a>")
}

func (a *Autolinker) relValue() string {
	var parts []string
	if a.external {
		parts = append(parts, "external")
	}
	if a.noFollow {
		parts = append(parts, "nofollow")
	}
	return strings.Join(parts, " ")
}

func (a *Autolinker) wrapTag(content, tag string) string {
	if tag == "" {
		return content
	}
	return "<" + tag + ">" + content + "</" + tag + ">"
}
