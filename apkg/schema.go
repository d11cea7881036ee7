package apkg

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/fwojciec/ankify"
)

// collectionSchema is the Anki 2 collection schema (version 11), as
// written by Anki desktop and accepted by every importer.
const collectionSchema = `
	CREATE TABLE col (
		id integer PRIMARY KEY,
		crt integer NOT NULL,
		mod integer NOT NULL,
		scm integer NOT NULL,
		ver integer NOT NULL,
		dty integer NOT NULL,
		usn integer NOT NULL,
		ls integer NOT NULL,
		conf text NOT NULL,
		models text NOT NULL,
		decks text NOT NULL,
		dconf text NOT NULL,
		tags text NOT NULL
	);

	CREATE TABLE notes (
		id integer PRIMARY KEY,
		guid text NOT NULL,
		mid integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		tags text NOT NULL,
		flds text NOT NULL,
		sfld integer NOT NULL,
		csum integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	);

	CREATE TABLE cards (
		id integer PRIMARY KEY,
		nid integer NOT NULL,
		did integer NOT NULL,
		ord integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		type integer NOT NULL,
		queue integer NOT NULL,
		due integer NOT NULL,
		ivl integer NOT NULL,
		factor integer NOT NULL,
		reps integer NOT NULL,
		lapses integer NOT NULL,
		left integer NOT NULL,
		odue integer NOT NULL,
		odid integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	);

	CREATE TABLE revlog (
		id integer PRIMARY KEY,
		cid integer NOT NULL,
		usn integer NOT NULL,
		ease integer NOT NULL,
		ivl integer NOT NULL,
		lastIvl integer NOT NULL,
		factor integer NOT NULL,
		time integer NOT NULL,
		type integer NOT NULL
	);

	CREATE TABLE graves (
		usn integer NOT NULL,
		oid integer NOT NULL,
		type integer NOT NULL
	);

	CREATE INDEX ix_notes_usn ON notes (usn);
	CREATE INDEX ix_cards_usn ON cards (usn);
	CREATE INDEX ix_revlog_usn ON revlog (usn);
	CREATE INDEX ix_cards_nid ON cards (nid);
	CREATE INDEX ix_cards_sched ON cards (did, queue, due);
	CREATE INDEX ix_revlog_cid ON revlog (cid);
	CREATE INDEX ix_notes_csum ON notes (csum);
`

func confJSON(modelID int64) (string, error) {
	conf := map[string]any{
		"activeDecks":   []int64{1},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       1,
		"curModel":      strconv.FormatInt(modelID, 10),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	}
	b, err := json.Marshal(conf)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func modelsJSON(model ModelConfig, css string, now time.Time) (string, error) {
	field := func(name string, ord int) map[string]any {
		return map[string]any{
			"name":   name,
			"ord":    ord,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}

	m := map[string]any{
		"id":    model.ID,
		"name":  model.Name,
		"type":  0,
		"mod":   now.Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   1,
		"tmpls": []map[string]any{{
			"name":  "Card 1",
			"ord":   0,
			"qfmt":  model.QuestionFormat,
			"afmt":  model.AnswerFormat,
			"bqfmt": "",
			"bafmt": "",
			"did":   nil,
		}},
		"flds":      []map[string]any{field("Front", 0), field("Back", 1)},
		"css":       css,
		"latexPre":  latexPre,
		"latexPost": latexPost,
		"latexsvg":  false,
		"req":       []any{[]any{0, "all", []int{0}}},
		"tags":      []string{},
		"vers":      []string{},
	}

	b, err := json.Marshal(map[string]any{strconv.FormatInt(model.ID, 10): m})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// deckEntry is one full deck name together with its stable ID.
type deckEntry struct {
	id   int64
	name string
}

// collectDecks lists every deck the package needs, in subdeck order.
// Parent decks referenced only through "parent::child" names are
// created implicitly by Anki, so only the leaf names are emitted.
func collectDecks(deck *ankify.Deck) []deckEntry {
	entries := make([]deckEntry, 0, len(deck.Subdecks))
	for _, sd := range deck.Subdecks {
		name := ankify.FullDeckName(deck.Name, sd.Name)
		entries = append(entries, deckEntry{id: stableID(name), name: name})
	}
	return entries
}

func decksJSON(entries []deckEntry, now time.Time) (string, error) {
	decks := make(map[string]any, len(entries)+1)

	add := func(id int64, name string) {
		decks[strconv.FormatInt(id, 10)] = map[string]any{
			"id":               id,
			"name":             name,
			"desc":             "",
			"dyn":              0,
			"collapsed":        false,
			"browserCollapsed": false,
			"usn":              -1,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"conf":             1,
			"extendNew":        0,
			"extendRev":        0,
			"mod":              now.Unix(),
		}
	}

	add(1, "Default")
	for _, e := range entries {
		add(e.id, e.name)
	}

	b, err := json.Marshal(decks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func dconfJSON() (string, error) {
	dconf := map[string]any{
		"1": map[string]any{
			"id":       1,
			"name":     "Default",
			"mod":      0,
			"usn":      0,
			"maxTaken": 60,
			"autoplay": true,
			"replayq":  true,
			"timer":    0,
			"new": map[string]any{
				"bury":          true,
				"delays":        []int{1, 10},
				"initialFactor": 2500,
				"ints":          []int{1, 4, 7},
				"order":         1,
				"perDay":        20,
				"separate":      true,
			},
			"rev": map[string]any{
				"bury":     true,
				"ease4":    1.3,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"minSpace": 1,
				"perDay":   100,
			},
			"lapse": map[string]any{
				"delays":      []int{10},
				"leechAction": 0,
				"leechFails":  8,
				"minInt":      1,
				"mult":        0,
			},
		},
	}
	b, err := json.Marshal(dconf)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
