package vetting

import "time"

const dateLayout = "2006-01-02"

// AgeYears computes whole years between dob and ref, both ISO dates.
// An empty ref defaults to today. The second return is false when
// either date fails to parse, which suppresses the age-based checks.
func AgeYears(dob, ref string) (int, bool) {
	d, err := time.Parse(dateLayout, dob)
	if err != nil {
		return 0, false
	}
	var r time.Time
	if ref == "" {
		r = time.Now().UTC()
	} else {
		r, err = time.Parse(dateLayout, ref)
		if err != nil {
			return 0, false
		}
	}
	age := r.Year() - d.Year()
	birthday := time.Date(r.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if birthday.After(r) {
		age--
	}
	return age, true
}
