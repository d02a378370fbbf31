package memstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/domain"
)

// seedCatalog is the built-in vocabulary used when the reference server
// starts without external data. Enough entries to generate multi-option
// questions of every quiz type.
var seedCatalog = []domain.Word{
	{
		Word:       "ephemeral",
		Definition: "lasting for a very short time",
		Sentence:   "The morning mist was ephemeral, gone before nine.",
		Synonyms:   []string{"fleeting", "transient", "momentary"},
		Antonyms:   []string{"permanent", "enduring"},
	},
	{
		Word:       "laconic",
		Definition: "using very few words",
		Sentence:   "His laconic reply ended the interview.",
		Synonyms:   []string{"terse", "brief", "concise"},
		Antonyms:   []string{"verbose", "loquacious"},
	},
	{
		Word:       "sanguine",
		Definition: "optimistic, especially in a difficult situation",
		Sentence:   "She remained sanguine about the team's chances.",
		Synonyms:   []string{"optimistic", "hopeful", "buoyant"},
		Antonyms:   []string{"pessimistic", "gloomy"},
	},
	{
		Word:       "obfuscate",
		Definition: "to make something unclear or hard to understand",
		Sentence:   "The report obfuscates the real cause of the delay.",
		Synonyms:   []string{"obscure", "confuse", "muddle"},
		Antonyms:   []string{"clarify", "illuminate"},
	},
	{
		Word:       "perfunctory",
		Definition: "done quickly, without real interest or care",
		Sentence:   "He gave the contract a perfunctory glance and signed.",
		Synonyms:   []string{"cursory", "superficial", "hasty"},
		Antonyms:   []string{"thorough", "careful"},
	},
	{
		Word:       "intransigent",
		Definition: "refusing to change one's views or positions",
		Sentence:   "Both sides stayed intransigent and the talks collapsed.",
		Synonyms:   []string{"uncompromising", "inflexible", "obstinate"},
		Antonyms:   []string{"flexible", "accommodating"},
	},
	{
		Word:       "ubiquitous",
		Definition: "present or found everywhere",
		Sentence:   "Smartphones are ubiquitous in the lecture hall.",
		Synonyms:   []string{"omnipresent", "pervasive", "universal"},
		Antonyms:   []string{"rare", "scarce"},
	},
	{
		Word:       "capitulate",
		Definition: "to stop resisting and give in",
		Sentence:   "The city capitulated after a long siege.",
		Synonyms:   []string{"surrender", "yield", "submit"},
		Antonyms:   []string{"resist", "withstand"},
	},
	{
		Word:       "mercurial",
		Definition: "subject to sudden changes of mood or mind",
		Sentence:   "Her mercurial temper made rehearsals unpredictable.",
		Synonyms:   []string{"volatile", "capricious", "fickle"},
		Antonyms:   []string{"steady", "constant"},
	},
	{
		Word:       "assiduous",
		Definition: "showing great care and persistent effort",
		Sentence:   "An assiduous student, she reviewed her notes nightly.",
		Synonyms:   []string{"diligent", "industrious", "meticulous"},
		Antonyms:   []string{"lazy", "negligent"},
	},
	{
		Word:       "recalcitrant",
		Definition: "stubbornly resistant to authority or guidance",
		Sentence:   "The recalcitrant mule refused the narrow bridge.",
		Synonyms:   []string{"defiant", "unruly", "obstinate"},
		Antonyms:   []string{"compliant", "docile"},
	},
	{
		Word:       "magnanimous",
		Definition: "generous or forgiving, especially toward a rival",
		Sentence:   "The champion was magnanimous in victory.",
		Synonyms:   []string{"generous", "charitable", "benevolent"},
		Antonyms:   []string{"petty", "vindictive"},
	},
}

// Seed loads the built-in catalog into the store. Every word starts due
// at now.
func Seed(s *WordStore, now time.Time) error {
	for _, word := range seedCatalog {
		word.ID = uuid.New()
		word.CreatedAt = now
		if err := s.AddWord(word, now); err != nil {
			return fmt.Errorf("failed to seed word %q: %w", word.Word, err)
		}
	}
	return nil
}
