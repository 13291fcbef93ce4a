package vetting

import (
	"strconv"
	"strings"
)

// ParseLeadingInt reads the integer prefix of a free-text field like
// "2 TABS" or "8 HOURLY". The second return is false when the text has
// no digit prefix.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// EstimateQuantity derives an expected dispensed quantity from the
// prescription fields. A best-effort heuristic: any field it cannot
// read yields (0, false), which suppresses the quantity check rather
// than flagging a false positive.
//
// Dose defaults to 1 when absent or unparseable. Duration is required.
// Doses per day come from the frequency text: "N HOURLY" gives
// floor(24/N), "DAILY" gives 1, anything containing "12" gives 2.
func EstimateQuantity(dose, frequency, duration string) (int, bool) {
	d, ok := ParseLeadingInt(dose)
	if !ok {
		d = 1
	}
	dur, ok := ParseLeadingInt(duration)
	if !ok || dur == 0 {
		return 0, false
	}
	freq := strings.ToUpper(frequency)
	var perDay int
	switch {
	case strings.Contains(freq, "HOURLY"):
		hr, ok := ParseLeadingInt(freq)
		if !ok || hr <= 0 {
			return 0, false
		}
		perDay = 24 / hr
	case strings.Contains(freq, "DAILY"):
		perDay = 1
	case strings.Contains(freq, "12"):
		perDay = 2
	default:
		return 0, false
	}
	if perDay == 0 {
		return 0, false
	}
	return d * perDay * dur, true
}
