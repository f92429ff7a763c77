package question_import_service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	answerSeparators = regexp.MustCompile(`[\s,;/|]+`)
	answerNumber     = regexp.MustCompile(`^[0-9]+$`)
	answerLetter     = regexp.MustCompile(`^[A-Z]$`)
)

// resolveCorrectAnswers turns the "Jawaban Benar" cell into zero-based option
// indices. Accepted forms: "2", "B", "1,3", "A; C", "1/2|D". A nil selection
// together with errors means the row has to be skipped.
func resolveCorrectAnswers(raw *string, optionCount, row int, key string) ([]int, fieldErrors) {
	if optionCount == 0 {
		return []int{}, nil
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []int{0}, nil
	}

	var (
		selected = make([]int, 0, optionCount)
		seen     = make(map[int]struct{}, optionCount)
	)
	for _, token := range answerSeparators.Split(strings.TrimSpace(*raw), -1) {
		if token == "" {
			continue
		}
		token = strings.ToUpper(token)

		var position int
		switch {
		case answerNumber.MatchString(token):
			n, err := strconv.Atoi(token)
			if err != nil {
				return nil, outOfRange(token, optionCount, row, key)
			}
			position = n
		case answerLetter.MatchString(token):
			position = int(token[0]-'A') + 1
		default:
			return nil, fieldErrors{}.add(key, fmt.Sprintf(
				"Baris %d: jawaban benar \"%s\" tidak dikenali. Gunakan nomor opsi (1, 2, ...) atau huruf (A, B, ...).",
				row, token))
		}

		if position < 1 || position > optionCount {
			return nil, outOfRange(token, optionCount, row, key)
		}
		idx := position - 1
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		selected = append(selected, idx)
	}

	if len(selected) == 0 {
		return []int{0}, nil
	}
	return selected, nil
}

func outOfRange(token string, optionCount, row int, key string) fieldErrors {
	return fieldErrors{}.add(key, fmt.Sprintf(
		"Baris %d: jawaban benar \"%s\" di luar rentang opsi yang terisi (1-%d).",
		row, token, optionCount))
}
