package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	maxNameLength = 255
	minYear       = 1930
)

var imdbCodePattern = regexp.MustCompile(`^tt\d+$`)

func checkName(v *ValidationErrors, field, s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		v.Add(field, "required field missing")
	case len(s) > maxNameLength:
		v.Add(field, "must be 255 characters or less")
	}
	return s
}

func checkYear(v *ValidationErrors, field string, year int) {
	if year < minYear || year > time.Now().UTC().Year() {
		v.Add(field, "must be between 1930 and the current year")
	}
}

func checkPositive(v *ValidationErrors, field string, n int) {
	if n <= 0 {
		v.Add(field, "must be positive")
	}
}

func checkNonNegative(v *ValidationErrors, field string, n int) {
	if n < 0 {
		v.Add(field, "must not be negative")
	}
}

func checkImdbCode(v *ValidationErrors, code string) {
	if code != "" && !imdbCodePattern.MatchString(code) {
		v.Add("imdb_code", "must look like tt0000000")
	}
}

func checkNoBlanks(v *ValidationErrors, field string, values []string) {
	for _, s := range values {
		if strings.TrimSpace(s) == "" {
			v.Add(field, "must not contain blank values")
			return
		}
	}
}
