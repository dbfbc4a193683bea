// Package staking sizes bets from model win probabilities and moneyline odds.
package staking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError reports a malformed moneyline odds string
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid moneyline odds %q: %s", e.Input, e.Reason)
}

// ParseMoneyline parses American odds such as "+150", "-120" or "150".
// Zero is rejected since it has no payout.
func ParseMoneyline(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	body := trimmed
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if body == "" {
		return 0, &ParseError{Input: s, Reason: "empty"}
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return 0, &ParseError{Input: s, Reason: "expected [+-] followed by digits"}
		}
	}
	odds, err := strconv.Atoi(body)
	if err != nil {
		return 0, &ParseError{Input: s, Reason: err.Error()}
	}
	if trimmed[0] == '-' {
		odds = -odds
	}
	if odds == 0 {
		return 0, &ParseError{Input: s, Reason: "odds cannot be zero"}
	}
	return odds, nil
}

// ValidateOddsInput applies the stricter interactive format: an explicit
// sign, digits only, and at least minLen characters in total (e.g. "+150")
func ValidateOddsInput(s string, minLen int) error {
	s = strings.TrimSpace(s)
	if len(s) < minLen {
		return &ParseError{Input: s, Reason: fmt.Sprintf("must be at least %d characters", minLen)}
	}
	if s[0] != '+' && s[0] != '-' {
		return &ParseError{Input: s, Reason: "must start with + or -"}
	}
	_, err := ParseMoneyline(s)
	return err
}

// MoneylineToPayout returns the net profit per unit staked
func MoneylineToPayout(odds int) float64 {
	if odds < 0 {
		return 100 / math.Abs(float64(odds))
	}
	return float64(odds) / 100
}

// PayoutToMoneyline converts a net payout per unit back to American odds
func PayoutToMoneyline(payout float64) (int, error) {
	if payout <= 0 {
		return 0, fmt.Errorf("invalid payout %.4f: must be positive", payout)
	}
	if payout >= 1 {
		return int(math.Round(payout * 100)), nil
	}
	return int(math.Round(-100 / payout)), nil
}
