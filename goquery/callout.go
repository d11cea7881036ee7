package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ankify"
)

// ParseCallout parses a single callout figure into a card.
//
// The first div descendant of the callout is the card container. Hashtags
// are extracted from the whole container first, so stripping affects the
// front text too. The container's first element child becomes the front
// (flattened text, trimmed) and is detached; everything left in the
// container, with media references resolved, becomes the back HTML.
//
// A callout without a container, without a front element or with empty
// front text yields nil: a skipped card, not an error.
func ParseCallout(callout *goquery.Selection, resolver ankify.MediaResolver, opts ankify.ParseOptions) *ankify.Card {
	container := callout.Find("div").First()
	if container.Length() == 0 {
		return nil
	}

	tags := ExtractHashtags(container, opts.KeepTags)

	front := container.Children().First()
	if front.Length() == 0 {
		return nil
	}

	frontText := strings.TrimSpace(front.Text())
	if frontText == "" {
		return nil
	}

	front.Remove()

	media := processMedia(container, resolver)

	back, err := container.Html()
	if err != nil {
		return nil
	}

	sort.Strings(tags)

	return &ankify.Card{
		Front: frontText,
		Back:  back,
		Tags:  tags,
		Media: media,
	}
}
