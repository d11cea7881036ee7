package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ankify"
)

// processMedia rewrites media references under sel to bare local
// filenames and returns the resolved asset paths in document order.
//
// Image sources that resolve to an existing asset are rewritten in place.
// Anchors pointing at audio assets are replaced with Anki [sound:name]
// markers. References that do not resolve are left exactly as found; the
// resolver reports the miss, typically through a logging decorator, and
// the card is still produced.
func processMedia(sel *goquery.Selection, resolver ankify.MediaResolver) []string {
	var media []string

	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		ref := resolver.Resolve(src)
		if !ref.Found {
			return
		}
		img.SetAttr("src", ref.Name)
		media = append(media, ref.Path)
	})

	sel.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || !ankify.IsAudioRef(href) {
			return
		}
		ref := resolver.Resolve(href)
		if !ref.Found {
			return
		}
		link.ReplaceWithHtml("<span>[sound:" + ref.Name + "]</span>")
		media = append(media, ref.Path)
	})

	return media
}
