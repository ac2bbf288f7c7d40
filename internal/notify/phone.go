package notify

import (
	"fmt"
	"strings"
)

// NormalizePhone converts a donor-supplied number to E.164. Bare 10-digit
// numbers get the +91 country code; numbers already carrying a + pass
// through after digit validation. Anything else is rejected so the send is
// aborted instead of messaging a wrong number.
func NormalizePhone(raw string) (string, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("empty phone number")
	}
	if strings.HasPrefix(s, "+") {
		digits := s[1:]
		if !allDigits(digits) || len(digits) < 10 || len(digits) > 15 {
			return "", fmt.Errorf("invalid phone number %q", raw)
		}
		return s, nil
	}
	if allDigits(s) && len(s) == 10 {
		return "+91" + s, nil
	}
	return "", fmt.Errorf("invalid phone number %q", raw)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
