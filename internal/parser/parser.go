// Package parser extracts a best-effort transaction draft from freeform text,
// such as a pasted receipt or a screenshot transcription. Extraction is
// heuristic: every field falls back to a default rather than failing, and only
// empty input is rejected.
package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ammdev/money-manager/internal/models"
)

// ErrEmptyText is returned when the input is empty or whitespace only.
var ErrEmptyText = errors.New("text is required")

// Amount patterns, tried in order: a currency-symbol-prefixed number first,
// then a bare number optionally followed by a currency code.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[-+]?\$\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})|[0-9]+(?:\.[0-9]{2}))`),
	regexp.MustCompile(`[-+]?([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})|[0-9]+(?:\.[0-9]{2}))\s*(?:USD|usd|US\$)?`),
}

// leadingMinus matches a minus sign at start of text or after whitespace.
// Its presence feeds direction inference only; the amount stays a magnitude.
var leadingMinus = regexp.MustCompile(`(^|\s)-`)

// Date patterns, tried in order: ISO, slash form, month-name form.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}`),
}

// Every date candidate is tried against this fixed layout list; the first
// successful parse wins regardless of which pattern found the candidate.
// Day-first slash dates take priority over month-first ones.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var (
	dateLikeLine  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}`)
	moneyLikeLine = regexp.MustCompile(`(?i)\$|USD|Total|Amount|Balance`)
	incomeWords   = regexp.MustCompile(`(?i)refund|credit|reversal|deposit|salary|income`)
)

const merchantMaxLen = 80

// Parse extracts a transaction draft from raw text. It fails only for
// empty or whitespace-only input; any other text yields a best-effort
// (possibly all-default) result.
func Parse(text string) (models.ParsedTransaction, error) {
	return parseAt(text, time.Now())
}

func parseAt(text string, now time.Time) (models.ParsedTransaction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ParsedTransaction{}, ErrEmptyText
	}

	result := models.ParsedTransaction{
		Amount:      extractAmount(text),
		Direction:   inferDirection(text),
		Description: extractDescription(text),
	}

	date, ok := extractDate(text)
	if !ok {
		date = now
	}
	result.Date = date.Format(time.RFC3339)

	if result.Description != "" {
		merchant := extractMerchant(result.Description)
		result.Merchant = &merchant
	}

	return result, nil
}

// extractAmount returns the first monetary literal found, as a magnitude.
// Missing or unparsable amounts default to 0.
func extractAmount(text string) float64 {
	for _, pat := range amountPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if amount < 0 {
			amount = -amount
		}
		return amount
	}
	return 0
}

// extractDate returns the first date found in the text, trying each pattern's
// first match against the full layout list.
func extractDate(text string) (time.Time, bool) {
	for _, pat := range datePatterns {
		raw := pat.FindString(text)
		if raw == "" {
			continue
		}
		raw = normalizeMonth(raw)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, raw); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// normalizeMonth title-cases a leading month name so case-insensitive matches
// still parse.
func normalizeMonth(raw string) string {
	i := 0
	for i < len(raw) && (raw[i] >= 'a' && raw[i] <= 'z' || raw[i] >= 'A' && raw[i] <= 'Z') {
		i++
	}
	if i == 0 {
		return raw
	}
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:i]) + raw[i:]
}

// extractDescription picks the first non-blank line that holds neither a
// date-like substring nor a money keyword, falling back to the first
// non-blank line.
func extractDescription(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	for _, line := range lines {
		if !dateLikeLine.MatchString(line) && !moneyLikeLine.MatchString(line) {
			return line
		}
	}
	return lines[0]
}

// extractMerchant takes the description up to the first " - " separator,
// truncated to 80 characters.
func extractMerchant(description string) string {
	merchant := strings.SplitN(description, " - ", 2)[0]
	if runes := []rune(merchant); len(runes) > merchantMaxLen {
		merchant = string(runes[:merchantMaxLen])
	}
	return merchant
}

// inferDirection defaults to expense, switching to income when the text
// carries a leading minus or an income keyword. Treating a minus as income
// mirrors the behavior clients already depend on.
func inferDirection(text string) string {
	if leadingMinus.MatchString(text) || incomeWords.MatchString(text) {
		return models.DirectionIncome
	}
	return models.DirectionExpense
}
