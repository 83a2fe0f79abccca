package models

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
)

// AbilityCount is the number of graded slots on a stand panel.
const AbilityCount = 6

// Panel slot names, clockwise from the top of the chart.
var AbilityNames = [AbilityCount]string{
	"Power",
	"Speed",
	"Range",
	"Durability",
	"Precision",
	"Potential",
}

var ErrInvalidAbilities = errors.New("abilities must be exactly 6 letters A-E")

var letterToDigit = map[rune]string{'A': "5", 'B': "4", 'C': "3", 'D': "2", 'E': "1"}
var digitToLetter = map[string]string{"5": "A", "4": "B", "3": "C", "2": "D", "1": "E"}

// ParseAbilities converts user input like "AABCDE" into the canonical
// comma-joined digit form "5,5,4,3,2,1". Whitespace and case are forgiven;
// anything that does not reduce to exactly six A-E letters is rejected.
func ParseAbilities(input string) (string, error) {
	letters := make([]rune, 0, AbilityCount)
	for _, c := range strings.ToUpper(input) {
		if c >= 'A' && c <= 'E' {
			letters = append(letters, c)
		}
	}
	if len(letters) != AbilityCount {
		return "", ErrInvalidAbilities
	}

	digits := make([]string, AbilityCount)
	for i, c := range letters {
		digits[i] = letterToDigit[c]
	}
	return strings.Join(digits, ","), nil
}

// AbilityLetters renders the canonical digit form back into letters,
// "5,4,3,2,1,5" → "ABCDEA".
func AbilityLetters(abilities string) (string, error) {
	parts := strings.Split(abilities, ",")
	if len(parts) != AbilityCount {
		return "", ErrInvalidAbilities
	}
	var sb strings.Builder
	for _, p := range parts {
		letter, ok := digitToLetter[p]
		if !ok {
			return "", ErrInvalidAbilities
		}
		sb.WriteString(letter)
	}
	return sb.String(), nil
}

// RandomAbilities draws six uniform grades in [1,5] and returns the
// canonical digit form.
func RandomAbilities(rng *rand.Rand) string {
	digits := make([]string, AbilityCount)
	for i := range digits {
		digits[i] = strconv.Itoa(1 + rng.Intn(5))
	}
	return strings.Join(digits, ",")
}

// FormatAbilities renders a letters string as one named grade per line.
func FormatAbilities(letters string) string {
	if len(letters) != AbilityCount {
		return "invalid abilities"
	}
	lines := make([]string, AbilityCount)
	for i, c := range letters {
		lines[i] = AbilityNames[i] + ": " + string(c)
	}
	return strings.Join(lines, "\n")
}
