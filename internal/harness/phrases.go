package harness

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Phrasebook resolves the descriptive phrase of each operator for one
// language. Phrases are the only localizable text in failure messages.
type Phrasebook struct {
	tag     language.Tag
	printer *message.Printer
}

// phraseKey is the catalog key for op. Keys are stable across languages.
func phraseKey(op CmpOp) string {
	return "chest.cmp." + op.Symbol()
}

// DefaultPhrasebook returns the English phrase table.
func DefaultPhrasebook() *Phrasebook {
	pb, err := NewPhrasebook(language.English, nil)
	if err != nil {
		// English defaults are static and always valid.
		panic(err)
	}
	return pb
}

// NewPhrasebook builds a phrase table for tag. Entries in overrides replace
// the English default for their operator; operators without an override
// keep the default phrase.
func NewPhrasebook(tag language.Tag, overrides map[CmpOp]string) (*Phrasebook, error) {
	for op := range overrides {
		if !op.Valid() {
			return nil, fmt.Errorf("phrasebook: unknown operator %v", op)
		}
	}
	b := catalog.NewBuilder()
	for _, op := range Ops {
		text, ok := overrides[op]
		if !ok {
			text = op.Phrase()
		}
		// Every key is set under tag itself so lookups never depend on
		// language matching. Catalog messages are printf formats, so a
		// literal % must be doubled.
		if err := b.SetString(tag, phraseKey(op), escapePercent(text)); err != nil {
			return nil, fmt.Errorf("phrasebook: %w", err)
		}
		if tag == language.English {
			continue
		}
		if err := b.SetString(language.English, phraseKey(op), escapePercent(op.Phrase())); err != nil {
			return nil, fmt.Errorf("phrasebook: %w", err)
		}
	}
	return &Phrasebook{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
	}, nil
}

func escapePercent(text string) string {
	return strings.ReplaceAll(text, "%", "%%")
}

// Language returns the phrasebook's language tag.
func (p *Phrasebook) Language() language.Tag {
	return p.tag
}

// Phrase returns the descriptive phrase for op. Unknown operators yield "".
func (p *Phrasebook) Phrase(op CmpOp) string {
	if !op.Valid() {
		return ""
	}
	if p == nil {
		return op.Phrase()
	}
	return p.printer.Sprintf(phraseKey(op))
}
