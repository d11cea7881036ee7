// Package goquery implements Notion export parsing on top of the goquery
// HTML library. The document structure walker and card parser here are the
// core of ankify: they pattern-match Notion's export tree shape and derive
// the deck model from it. Nothing outside this package touches a concrete
// HTML parser type.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ankify"
)

// Ensure Parser implements ankify.DeckParser at compile time.
var _ ankify.DeckParser = (*Parser)(nil)

// Parser extracts decks from Notion HTML exports.
type Parser struct {
	resolver ankify.MediaResolver
}

// NewParser creates a Parser that resolves media references with resolver.
func NewParser(resolver ankify.MediaResolver) *Parser {
	return &Parser{resolver: resolver}
}

// ParseDeck parses a Notion HTML export into a deck.
//
// Structure recognized:
//
//	article > header > h1              deck name
//	div.page-body > details            collapsible section = subdeck
//	  summary                          subdeck name
//	  div.indented > figure.callout    card in that subdeck
//	div.page-body > figure.callout     card in the "Default" subdeck
//
// Top-level children of any other shape are ignored. A document missing
// the article or page body yields an empty deck; callers treat zero total
// cards as the failure condition.
func (p *Parser) ParseDeck(htmlStr string, opts ankify.ParseOptions) (*ankify.Deck, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, ankify.Errorf(ankify.EINVALID, "failed to parse HTML: %v", err)
	}

	deck := ankify.NewDeck(ankify.DefaultDeckName)
	deck.Stylesheet = doc.Find("style").First().Text()

	article := doc.Find("article").First()
	if article.Length() == 0 {
		return deck, nil
	}

	if h1 := article.Find("header > h1").First(); h1.Length() > 0 {
		if name := strings.TrimSpace(h1.Text()); name != "" {
			deck.Name = name
		}
	}

	body := article.Find("div.page-body").First()
	if body.Length() == 0 {
		return deck, nil
	}

	body.Children().Each(func(_ int, child *goquery.Selection) {
		switch {
		case child.Is("details"):
			p.parseSection(child, deck, opts)
		case child.Is("figure.callout"):
			if card := ParseCallout(child, p.resolver, opts); card != nil {
				deck.AddCard(ankify.DefaultSubdeckName, card)
			}
		}
	})

	return deck, nil
}

// parseSection collects the callouts of one collapsible section into the
// subdeck named by its summary. A section without a summary contributes
// nothing; a section without an indented region registers an empty
// subdeck, matching how an empty section reads in the source document.
func (p *Parser) parseSection(details *goquery.Selection, deck *ankify.Deck, opts ankify.ParseOptions) {
	summary := details.Find("summary").First()
	if summary.Length() == 0 {
		return
	}

	sub := deck.EnsureSubdeck(strings.TrimSpace(summary.Text()))

	indented := details.Find("div.indented").First()
	if indented.Length() == 0 {
		return
	}

	indented.ChildrenFiltered("figure.callout").Each(func(_ int, callout *goquery.Selection) {
		if card := ParseCallout(callout, p.resolver, opts); card != nil {
			sub.Cards = append(sub.Cards, card)
		}
	})
}
