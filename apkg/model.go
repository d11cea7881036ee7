package apkg

// DefaultModelID identifies the note model shipped with generated
// packages. Anki matches models across imports by ID, so it stays
// constant instead of being derived from content.
const DefaultModelID = 1607392319

// DefaultCSS is the base stylesheet applied to every card. The deck's
// own stylesheet, when present, is appended after it.
const DefaultCSS = `.card {
  font-family: arial;
  font-size: 20px;
  text-align: left;
  color: black;
  background-color: white;
}

.front {
  font-weight: bold;
  margin-bottom: 0.5em;
}
`

const latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}
`

const latexPost = `\end{document}`

// ModelConfig describes the Anki note model used for generated cards.
type ModelConfig struct {
	ID             int64
	Name           string
	CSS            string
	QuestionFormat string
	AnswerFormat   string
}

// DefaultModel returns the two-field front/back model used when no
// custom model is configured.
func DefaultModel() ModelConfig {
	return ModelConfig{
		ID:             DefaultModelID,
		Name:           "Notion Basic Model",
		CSS:            DefaultCSS,
		QuestionFormat: `<div class="front">{{Front}}</div>`,
		AnswerFormat:   `{{FrontSide}}<hr id=answer><div class="back">{{Back}}</div>`,
	}
}
