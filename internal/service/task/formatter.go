// Package task renders drill items for the learner and exposes the
// generate_task tool to the task oracle.
package task

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// Display fragments of a rendered task.
const (
	LineBreak       = "<br>"
	OptionSeparator = " / "
	OptionsPrefix   = "Optionen: "
	FreeInputSuffix = "Schreib deine Antwort:"

	incompleteOptions = "Fehler: Unvollständige Optionen"
	incompleteParams  = "Fehler: Unvollständige Parameter"
)

// Format renders one drill item. The option shape selects the mode:
// no options for free input, correct+wrong1 for two options and all three
// for three options. Any other shape yields an inline error line instead of
// a task. Format never fails.
func Format(sentence, correct, wrong1, wrong2 string) string {
	out, _ := Compose(sentence, correct, wrong1, wrong2)
	return out
}

// Compose is Format that also reports an unsupported option shape as
// ErrFormatIncomplete. The returned string is always displayable.
func Compose(sentence, correct, wrong1, wrong2 string) (string, error) {
	sentence = strings.TrimSpace(sentence)
	correct, wrong1, wrong2 = strings.TrimSpace(correct), strings.TrimSpace(wrong1), strings.TrimSpace(wrong2)

	options := lo.Compact([]string{correct, wrong1, wrong2})

	switch {
	case len(options) == 0:
		return sentence + LineBreak + FreeInputSuffix, nil
	case wrong2 != "":
		if correct == "" || wrong1 == "" {
			return sentence + LineBreak + incompleteOptions,
				fmt.Errorf("%w: three-option task needs correct and wrong1", domain.ErrFormatIncomplete)
		}
		return sentence + LineBreak + optionLine(options), nil
	case correct != "" && wrong1 != "":
		return sentence + LineBreak + optionLine(options), nil
	default:
		return sentence + LineBreak + incompleteParams,
			fmt.Errorf("%w: options %d of correct/wrong1 given", domain.ErrFormatIncomplete, len(options))
	}
}

func optionLine(options []string) string {
	rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return OptionsPrefix + strings.Join(options, OptionSeparator)
}
