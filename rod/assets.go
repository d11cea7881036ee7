package rod

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// asset is one unique downloadable file referenced by the rendered page.
type asset struct {
	remote string
	name   string
	ok     bool
}

// assetRef ties a DOM element to the asset its src points at. Multiple
// elements can reference the same asset.
type assetRef struct {
	sel   *goquery.Selection
	asset *asset
}

// collectAssets gathers the img and audio sources of doc, resolved
// against pageURL. Assets are deduplicated by remote URL and assigned
// collision-free local names.
func collectAssets(doc *goquery.Document, pageURL string) ([]*asset, []assetRef) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil
	}

	var assets []*asset
	var refs []assetRef
	byRemote := make(map[string]*asset)
	usedNames := make(map[string]bool)

	collect := func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			return
		}
		remote := resolveAssetURL(base, src)
		if remote == "" {
			return
		}

		a, ok := byRemote[remote]
		if !ok {
			name := localName(remote)
			if usedNames[name] {
				// Same basename from a different origin; keep both.
				name = uuid.NewString() + path.Ext(name)
			}
			usedNames[name] = true
			a = &asset{remote: remote, name: name}
			byRemote[remote] = a
			assets = append(assets, a)
		}
		refs = append(refs, assetRef{sel: sel, asset: a})
	}

	doc.Find("img").Each(collect)
	doc.Find("audio").Each(collect)

	return assets, refs
}

// resolveAssetURL resolves src against the page URL, returning "" for
// references that cannot be downloaded over HTTP.
func resolveAssetURL(base *url.URL, src string) string {
	lower := strings.ToLower(strings.TrimSpace(src))
	if strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "blob:") ||
		strings.HasPrefix(lower, "javascript:") {
		return ""
	}

	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// localName derives a filename for a downloaded asset from its URL,
// falling back to a generated name when the URL path has no usable
// basename.
func localName(remote string) string {
	u, err := url.Parse(remote)
	if err != nil {
		return "asset-" + uuid.NewString()
	}

	decoded, err := url.PathUnescape(u.Path)
	if err != nil {
		decoded = u.Path
	}

	name := path.Base(decoded)
	if name == "." || name == "/" || name == "" {
		return "asset-" + uuid.NewString()
	}
	return name
}
