package goquery_test

import (
	"testing"

	"github.com/fwojciec/ankify"
	"github.com/fwojciec/ankify/goquery"
	"github.com/fwojciec/ankify/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notFoundResolver reports every reference as missing.
func notFoundResolver() *mock.MediaResolver {
	return &mock.MediaResolver{
		ResolveFn: func(ref string) ankify.MediaRef {
			return ankify.MediaRef{Name: ref, Path: "/assets/" + ref, Found: false}
		},
	}
}

// assetResolver reports the given basenames as present in /assets.
func assetResolver(names ...string) *mock.MediaResolver {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	return &mock.MediaResolver{
		ResolveFn: func(ref string) ankify.MediaRef {
			name := ref
			if i := lastSlash(ref); i >= 0 {
				name = ref[i+1:]
			}
			return ankify.MediaRef{
				Name:  name,
				Path:  "/assets/" + name,
				Found: present[name],
			}
		},
	}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func keepTags() ankify.ParseOptions   { return ankify.ParseOptions{KeepTags: true} }
func removeTags() ankify.ParseOptions { return ankify.ParseOptions{KeepTags: false} }

func TestParseCallout(t *testing.T) {
	t.Parallel()

	t.Run("splits front and back", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q1 #math</p><p>Answer</p></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, notFoundResolver(), keepTags())

		require.NotNil(t, card)
		assert.Equal(t, "Q1 #math", card.Front)
		assert.Equal(t, "<p>Answer</p>", card.Back)
		assert.Equal(t, []string{"math"}, card.Tags)
		assert.Empty(t, card.Media)
	})

	t.Run("strips hashtags from front and back when requested", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q1 #math</p><p>Answer #exam here</p></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, notFoundResolver(), removeTags())

		require.NotNil(t, card)
		assert.Equal(t, "Q1", card.Front)
		assert.Equal(t, "<p>Answer here</p>", card.Back)
		assert.Equal(t, []string{"exam", "math"}, card.Tags)
	})

	t.Run("tags are sorted and unique", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q #zeta #Alpha</p><p>A #alpha #beta</p></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, notFoundResolver(), keepTags())

		require.NotNil(t, card)
		assert.Equal(t, []string{"alpha", "beta", "zeta"}, card.Tags)
	})

	t.Run("callout without div yields nil", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><p>just text</p></figure>`, "figure.callout")

		assert.Nil(t, goquery.ParseCallout(sel, notFoundResolver(), keepTags()))
	})

	t.Run("container with only bare text yields nil", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div>text without elements</div></figure>`, "figure.callout")

		assert.Nil(t, goquery.ParseCallout(sel, notFoundResolver(), keepTags()))
	})

	t.Run("empty front text yields nil", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>   </p><p>Answer</p></div></figure>`, "figure.callout")

		assert.Nil(t, goquery.ParseCallout(sel, notFoundResolver(), keepTags()))
	})

	t.Run("rewrites resolved image source", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q</p><img src="notes/diagram.png"/></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, assetResolver("diagram.png"), keepTags())

		require.NotNil(t, card)
		assert.Contains(t, card.Back, `src="diagram.png"`)
		assert.Equal(t, []string{"/assets/diagram.png"}, card.Media)
	})

	t.Run("decodes url-encoded image source", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q</p><img src="notes/my%20diagram.png"/></div></figure>`, "figure.callout")

		resolved := ""
		resolver := &mock.MediaResolver{
			ResolveFn: func(ref string) ankify.MediaRef {
				resolved = ref
				return ankify.MediaRef{Name: "my diagram.png", Path: "/assets/my diagram.png", Found: true}
			},
		}

		card := goquery.ParseCallout(sel, resolver, keepTags())

		require.NotNil(t, card)
		assert.Equal(t, "notes/my%20diagram.png", resolved)
		assert.Contains(t, card.Back, `src="my diagram.png"`)
	})

	t.Run("missing image reference is left untouched", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q</p><img src="notes/gone.png"/></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, notFoundResolver(), keepTags())

		require.NotNil(t, card)
		assert.Contains(t, card.Back, `src="notes/gone.png"`)
		assert.Empty(t, card.Media)
	})

	t.Run("rewrites resolved audio link to sound marker", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q</p><p><a href="audio/word.mp3">word.mp3</a></p></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, assetResolver("word.mp3"), keepTags())

		require.NotNil(t, card)
		assert.Contains(t, card.Back, "[sound:word.mp3]")
		assert.NotContains(t, card.Back, "<a ")
		assert.Equal(t, []string{"/assets/word.mp3"}, card.Media)
	})

	t.Run("missing audio link is left untouched", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q</p><p><a href="audio/gone.mp3">gone.mp3</a></p></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, notFoundResolver(), keepTags())

		require.NotNil(t, card)
		assert.Contains(t, card.Back, `href="audio/gone.mp3"`)
		assert.Empty(t, card.Media)
	})

	t.Run("non-audio links are not treated as media", func(t *testing.T) {
		t.Parallel()

		sel := selection(t, `<figure class="callout"><div><p>Q</p><p><a href="https://example.com/page">ref</a></p></div></figure>`, "figure.callout")

		card := goquery.ParseCallout(sel, assetResolver("page"), keepTags())

		require.NotNil(t, card)
		assert.Contains(t, card.Back, `href="https://example.com/page"`)
		assert.Empty(t, card.Media)
	})
}
