package twittertext

import (
	"html"
	"regexp"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// assertMarkup diffs rendered markup against the expected string so a
// mismatch shows where the two diverge instead of two long lines.
func assertMarkup(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Errorf("markup mismatch:\n%s", diff)
}

func TestAutoLink_Username(t *testing.T) {
	assertMarkup(t, AutoLink("hello @bob"),
		`hello @<a class="tweet-url username" href="https://twitter.com/bob" rel="nofollow">bob</a>`)
}

func TestAutoLink_List(t *testing.T) {
	assertMarkup(t, AutoLink("@alice/team rocks"),
		`@<a class="tweet-url list-slug" href="https://twitter.com/alice/team" rel="nofollow">alice/team</a> rocks`)
}

func TestAutoLink_Hashtag(t *testing.T) {
	assertMarkup(t, AutoLink("#trending now"),
		`<a class="tweet-url hashtag" href="https://twitter.com/search?q=%23trending" title="#trending" rel="nofollow">#trending</a> now`)
}

func TestAutoLink_Cashtag(t *testing.T) {
	assertMarkup(t, AutoLink("$TWTR is up"),
		`<a class="tweet-url cashtag" href="https://twitter.com/search?q=%24TWTR" title="$TWTR" rel="nofollow">$TWTR</a> is up`)
}

func TestAutoLink_URL(t *testing.T) {
	assertMarkup(t, AutoLink("go to http://example.com now"),
		`go to <a href="http://example.com" rel="nofollow">http://example.com</a> now`)
}

func TestAutoLink_EscapesPlainText(t *testing.T) {
	assertMarkup(t, AutoLink("i <3 you & @bob"),
		`i &lt;3 you &amp; @<a class="tweet-url username" href="https://twitter.com/bob" rel="nofollow">bob</a>`)
}

func TestAutoLink_NoEntities(t *testing.T) {
	assertMarkup(t, AutoLink("plain text, nothing else"), "plain text, nothing else")
}

func TestAutoLink_NoFollowDisabled(t *testing.T) {
	got := AutoLink("hello @bob", WithNoFollow(false))
	assertMarkup(t, got,
		`hello @<a class="tweet-url username" href="https://twitter.com/bob">bob</a>`)
}

func TestAutoLink_ExternalAndTarget(t *testing.T) {
	got := AutoLink("http://example.com", WithExternal(true), WithTarget("_blank"))
	assertMarkup(t, got,
		`<a href="http://example.com" rel="external nofollow" target="_blank">http://example.com</a>`)
}

func TestAutoLink_UsernameIncludeSymbol(t *testing.T) {
	got := AutoLink("hello @bob", WithUsernameIncludeSymbol(true))
	assertMarkup(t, got,
		`hello <a class="tweet-url username" href="https://twitter.com/bob" rel="nofollow">@bob</a>`)
}

func TestAutoLink_SymbolTags(t *testing.T) {
	got := AutoLink("#trending", WithSymbolTag("s"), WithTextWithSymbolTag("b"))
	assertMarkup(t, got,
		`<a class="tweet-url hashtag" href="https://twitter.com/search?q=%23trending" title="#trending" rel="nofollow"><s>#</s><b>trending</b></a>`)
}

func TestAutoLink_CustomClassesAndBases(t *testing.T) {
	got := AutoLink("see #tag", WithHashtagClass("tag"), WithHashtagURLBase("https://example.org/t/"))
	assertMarkup(t, got,
		`see <a class="tag" href="https://example.org/t/tag" title="#tag" rel="nofollow">#tag</a>`)
}

func TestAutoLink_URLClass(t *testing.T) {
	got := AutoLink("http://example.com", WithURLClass("link"))
	assertMarkup(t, got,
		`<a class="link" href="http://example.com" rel="nofollow">http://example.com</a>`)
}

func TestAutoLinkHashtags_OnlyHashtags(t *testing.T) {
	a := NewAutolinker()
	got := a.AutoLinkHashtags("see @bob and #tag")
	assertMarkup(t, got,
		`see @bob and <a class="tweet-url hashtag" href="https://twitter.com/search?q=%23tag" title="#tag" rel="nofollow">#tag</a>`)
}

func TestAutoLinkUsernamesAndLists_OnlyMentions(t *testing.T) {
	a := NewAutolinker()
	got := a.AutoLinkUsernamesAndLists("see @bob and #tag")
	assertMarkup(t, got,
		`see @<a class="tweet-url username" href="https://twitter.com/bob" rel="nofollow">bob</a> and #tag`)
}

func TestAutoLinkEntities_ExternalURLEntity(t *testing.T) {
	payload := map[string]any{
		"urls": []any{
			map[string]any{
				"url":          "https://t.co/abc",
				"display_url":  "example.com/pa…",
				"expanded_url": "https://example.com/path",
				"indices":      []any{5, 21},
			},
		},
	}
	entities, err := EntitiesFromPayload(payload)
	if err != nil {
		t.Fatalf("EntitiesFromPayload() error: %v", err)
	}

	got := NewAutolinker().AutoLinkEntities("take https://t.co/abc", entities)
	want := `take <a href="https://t.co/abc" title="https://example.com/path" rel="nofollow">` +
		`<span class="tco-ellipsis"><span style='position:absolute;left:-9999px;'>&nbsp;</span></span>` +
		`<span style='position:absolute;left:-9999px;'>https://</span>` +
		`<span class="js-display-url">example.com/pa</span>` +
		`<span style='position:absolute;left:-9999px;'>th</span>` +
		`<span class="tco-ellipsis"><span style='position:absolute;left:-9999px;'>&nbsp;</span>…</span>` +
		`</a>`
	assertMarkup(t, got, want)
}

func TestAutoLinkEntities_DisplayURLWithoutEllipsis(t *testing.T) {
	entities := []Entity{{
		Type:        EntityURL,
		Range:       Range{0, 16},
		Text:        "https://t.co/abc",
		Value:       "https://t.co/abc",
		DisplayURL:  "example.com",
		ExpandedURL: "https://example.com",
	}}
	got := NewAutolinker().AutoLinkEntities("https://t.co/abc", entities)
	assertMarkup(t, got,
		`<a href="https://t.co/abc" title="https://example.com" rel="nofollow">example.com</a>`)
}

func TestAutoLinkEntities_SkipsBadRanges(t *testing.T) {
	entities := []Entity{
		{Type: EntityHashtag, Range: Range{50, 60}, Text: "#late", Value: "late"},
	}
	got := NewAutolinker().AutoLinkEntities("short", entities)
	assertMarkup(t, got, "short")
}

func TestAutoLink_VisibleTextPreserved(t *testing.T) {
	// Stripping the generated markup must reproduce the escaped input: the
	// autolinker adds tags but never rewrites visible characters.
	tags := regexp.MustCompile(`<[^>]*>`)
	for _, text := range []string{
		"see @bob #tag $GOOG http://example.com end",
		"@alice/team and #日本語",
		"no entities at all",
	} {
		got := tags.ReplaceAllString(AutoLink(text), "")
		want := html.EscapeString(text)
		if got != want {
			t.Errorf("visible text of AutoLink(%q) = %q, want %q", text, got, want)
		}
	}
}
