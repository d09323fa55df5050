// Package markdown provides a goldmark extension that auto-links tweet
// entities (@mentions, #hashtags, $cashtags and URLs) inside markdown
// documents.
//
// Text nodes are rewritten into link nodes during AST transformation, so the
// extension composes with any renderer. Code spans, code blocks and existing
// links are left untouched.
//
// Example:
//
//	md := goldmark.New(goldmark.WithExtensions(markdown.EntityLinks()))
//	_ = md.Convert([]byte("ping @support about #outage"), &buf)
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	twittertext "github.com/sololance/twitter-text-go"
)

type entityLinks struct {
	extractor       *twittertext.Extractor
	usernameURLBase string
	hashtagURLBase  string
	cashtagURLBase  string
}

// Option configures the EntityLinks extension.
type Option func(*entityLinks)

// WithExtractor sets the extractor used to find entities in text nodes.
func WithExtractor(ex *twittertext.Extractor) Option {
	return func(e *entityLinks) { e.extractor = ex }
}

// WithUsernameURLBase sets the link prefix of mention and list entities.
func WithUsernameURLBase(base string) Option {
	return func(e *entityLinks) { e.usernameURLBase = base }
}

// WithHashtagURLBase sets the link prefix of hashtag entities.
func WithHashtagURLBase(base string) Option {
	return func(e *entityLinks) { e.hashtagURLBase = base }
}

// WithCashtagURLBase sets the link prefix of cashtag entities.
func WithCashtagURLBase(base string) Option {
	return func(e *entityLinks) { e.cashtagURLBase = base }
}

// EntityLinks returns the extension. Register it with
// goldmark.WithExtensions.
func EntityLinks(opts ...Option) goldmark.Extender {
	e := &entityLinks{
		extractor:       twittertext.NewExtractor(),
		usernameURLBase: "https://twitter.com/",
		hashtagURLBase:  "https://twitter.com/search?q=%23",
		cashtagURLBase:  "https://twitter.com/search?q=%24",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extend registers the AST transformer.
func (e *entityLinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&entityTransformer{links: e}, 900),
	))
}

type entityTransformer struct {
	links *entityLinks
}

// Transform collects the text nodes eligible for linking, then rewrites
// them. Collection and mutation are separate passes because replacing nodes
// mid-walk invalidates the walker's position.
func (t *entityTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var textNodes []*ast.Text

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch tn := n.(type) {
		case *ast.Link, *ast.AutoLink, *ast.Image, *ast.CodeSpan,
			*ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			textNodes = append(textNodes, tn)
		}
		return ast.WalkContinue, nil
	})

	for _, tn := range textNodes {
		t.linkify(tn, source)
	}
}

// linkify replaces one text node with an alternating sequence of text and
// link nodes, one link per entity found in the node's source segment.
func (t *entityTransformer) linkify(node *ast.Text, source []byte) {
	parent := node.Parent()
	if parent == nil {
		return
	}
	seg := node.Segment
	value := string(seg.Value(source))
	entities := t.links.extractor.ExtractEntities(value)
	if len(entities) == 0 {
		return
	}

	offsets := codepointByteOffsets(value)
	cursor := 0
	var replacements []ast.Node
	for _, e := range entities {
		startByte := offsets[e.Range.Start]
		endByte := offsets[e.Range.End]
		if startByte > cursor {
			replacements = append(replacements,
				ast.NewTextSegment(text.NewSegment(seg.Start+cursor, seg.Start+startByte)))
		}
		link := ast.NewLink()
		link.Destination = []byte(t.links.destination(e))
		link.AppendChild(link,
			ast.NewTextSegment(text.NewSegment(seg.Start+startByte, seg.Start+endByte)))
		replacements = append(replacements, link)
		cursor = endByte
	}
	if cursor < len(value) {
		replacements = append(replacements,
			ast.NewTextSegment(text.NewSegment(seg.Start+cursor, seg.Stop)))
	}

	for _, r := range replacements {
		parent.InsertBefore(parent, node, r)
	}
	parent.RemoveChild(parent, node)
}

func (e *entityLinks) destination(ent twittertext.Entity) string {
	switch ent.Type {
	case twittertext.EntityMention:
		return e.usernameURLBase + ent.Value
	case twittertext.EntityList:
		return e.usernameURLBase + ent.Value + ent.ListSlug
	case twittertext.EntityHashtag:
		return e.hashtagURLBase + ent.Value
	case twittertext.EntityCashtag:
		return e.cashtagURLBase + ent.Value
	default:
		return ent.Value
	}
}

// codepointByteOffsets maps each codepoint index of s (plus one past the
// end) to its byte offset.
func codepointByteOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))
	return offsets
}
