package ankify_test

import (
	"testing"

	"github.com/fwojciec/ankify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck_EmptyNameFallsBackToDefault(t *testing.T) {
	t.Parallel()

	deck := ankify.NewDeck("")

	assert.Equal(t, ankify.DefaultDeckName, deck.Name)
}

func TestDeck_AddCard(t *testing.T) {
	t.Parallel()

	t.Run("preserves first-seen subdeck order", func(t *testing.T) {
		t.Parallel()

		deck := ankify.NewDeck("Biology")
		deck.AddCard("Chapter 2", &ankify.Card{Front: "a"})
		deck.AddCard("Chapter 1", &ankify.Card{Front: "b"})
		deck.AddCard("Chapter 2", &ankify.Card{Front: "c"})

		require.Len(t, deck.Subdecks, 2)
		assert.Equal(t, "Chapter 2", deck.Subdecks[0].Name)
		assert.Equal(t, "Chapter 1", deck.Subdecks[1].Name)
	})

	t.Run("repeated subdeck names append to one card list", func(t *testing.T) {
		t.Parallel()

		deck := ankify.NewDeck("Biology")
		deck.AddCard("Chapter 1", &ankify.Card{Front: "first"})
		deck.AddCard("Chapter 1", &ankify.Card{Front: "second"})

		require.Len(t, deck.Subdecks, 1)
		require.Len(t, deck.Subdecks[0].Cards, 2)
		assert.Equal(t, "first", deck.Subdecks[0].Cards[0].Front)
		assert.Equal(t, "second", deck.Subdecks[0].Cards[1].Front)
	})
}

func TestDeck_EnsureSubdeck_LiteralConstruction(t *testing.T) {
	t.Parallel()

	// Decks built as literals (tests, fixtures) must still dedupe by name.
	deck := &ankify.Deck{
		Name:     "Biology",
		Subdecks: []*ankify.Subdeck{{Name: "Chapter 1"}},
	}

	sub := deck.EnsureSubdeck("Chapter 1")

	assert.Same(t, deck.Subdecks[0], sub)
	assert.Len(t, deck.Subdecks, 1)
}

func TestDeck_TotalCards(t *testing.T) {
	t.Parallel()

	deck := ankify.NewDeck("Biology")
	assert.Equal(t, 0, deck.TotalCards())

	deck.AddCard("Chapter 1", &ankify.Card{Front: "a"})
	deck.AddCard(ankify.DefaultSubdeckName, &ankify.Card{Front: "b"})

	assert.Equal(t, 2, deck.TotalCards())
}

func TestDeck_MediaFiles_DeduplicatesInFirstReferenceOrder(t *testing.T) {
	t.Parallel()

	deck := ankify.NewDeck("Biology")
	deck.AddCard("Chapter 1", &ankify.Card{Front: "a", Media: []string{"/assets/x.png", "/assets/y.png"}})
	deck.AddCard("Chapter 2", &ankify.Card{Front: "b", Media: []string{"/assets/y.png", "/assets/z.mp3"}})

	assert.Equal(t, []string{"/assets/x.png", "/assets/y.png", "/assets/z.mp3"}, deck.MediaFiles())
}

func TestFullDeckName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		deck    string
		subdeck string
		want    string
	}{
		{
			name:    "named subdeck is qualified",
			deck:    "Biology",
			subdeck: "Chapter 1",
			want:    "Biology::Chapter 1",
		},
		{
			name:    "default subdeck uses bare deck name",
			deck:    "Biology",
			subdeck: ankify.DefaultSubdeckName,
			want:    "Biology",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ankify.FullDeckName(tt.deck, tt.subdeck))
		})
	}
}

func TestCard_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid card", func(t *testing.T) {
		t.Parallel()

		card := &ankify.Card{Front: "What is mitosis?"}

		require.NoError(t, card.Validate())
	})

	t.Run("missing front", func(t *testing.T) {
		t.Parallel()

		card := &ankify.Card{Back: "<p>Cell division</p>"}

		err := card.Validate()
		require.Error(t, err)
		assert.Equal(t, ankify.EINVALID, ankify.ErrorCode(err))
	})
}

func TestIsAudioRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{name: "mp3", ref: "pronunciation.mp3", want: true},
		{name: "uppercase extension", ref: "clip.WAV", want: true},
		{name: "url encoded path", ref: "notes/word%20audio.m4a", want: true},
		{name: "image", ref: "diagram.png", want: false},
		{name: "no extension", ref: "soundfile", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ankify.IsAudioRef(tt.ref))
		})
	}
}
