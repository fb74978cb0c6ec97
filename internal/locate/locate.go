// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locate builds the anthology data URL for a conference and year.
//
// The anthology switched naming schemes after 2019. Volumes up to and
// including CutoverYear are stored as {code}{YY}.xml, where code is a
// single-letter legacy identifier; later volumes are {year}.{conference}.xml.
package locate

import (
	"fmt"
	"sort"
)

// DefaultBaseURL is the raw-content root of the anthology XML data directory.
const DefaultBaseURL = "https://raw.githubusercontent.com/acl-org/acl-anthology/master/data/xml"

// CutoverYear is the last year that uses the legacy naming scheme.
const CutoverYear = 2019

// legacyCodes maps conference mnemonics to their pre-2020 single-letter codes.
var legacyCodes = map[string]string{
	"acl":     "P",
	"anlp":    "A",
	"cl":      "J",
	"conll":   "K",
	"eacl":    "E",
	"emnlp":   "D",
	"naacl":   "N",
	"semeval": "S",
	"starsem": "S",
	"tacl":    "Q",
	"wmt":     "W",
	"coling":  "C",
	"ijcnlp":  "I",
}

// Selector identifies the volume set to export.
type Selector struct {
	Conference string
	Year       int
}

// String returns "conference.year".
func (s Selector) String() string {
	return fmt.Sprintf("%s.%d", s.Conference, s.Year)
}

// Legacy reports whether the selector falls in the legacy naming scheme.
func (s Selector) Legacy() bool {
	return s.Year <= CutoverYear
}

// UnknownConferenceError reports a conference with no legacy code.
type UnknownConferenceError struct {
	Conference string
}

func (e *UnknownConferenceError) Error() string {
	return fmt.Sprintf("unknown conference %q: no legacy code for years up to %d", e.Conference, CutoverYear)
}

// Locator builds URLs rooted at BaseURL.
type Locator struct {
	BaseURL string
}

// Locate returns the data URL for sel. It fails with *UnknownConferenceError
// when sel is in the legacy range and the conference has no legacy code.
// Modern conferences are used verbatim; no other validation is done.
func (l Locator) Locate(sel Selector) (string, error) {
	base := l.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	if !sel.Legacy() {
		return fmt.Sprintf("%s/%d.%s.xml", base, sel.Year, sel.Conference), nil
	}

	code, ok := LegacyCode(sel.Conference)
	if !ok {
		return "", &UnknownConferenceError{Conference: sel.Conference}
	}
	// 2017 -> 17, 2005 -> 05
	return fmt.Sprintf("%s/%s%02d.xml", base, code, legacyYear(sel.Year)), nil
}

// Locate returns the data URL for sel under DefaultBaseURL.
func Locate(sel Selector) (string, error) {
	return Locator{}.Locate(sel)
}

// LegacyCode returns the single-letter code for conference.
func LegacyCode(conference string) (string, bool) {
	code, ok := legacyCodes[conference]
	return code, ok
}

// Conferences returns the conferences with a legacy code, sorted.
func Conferences() []string {
	names := make([]string, 0, len(legacyCodes))
	for name := range legacyCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OutputName returns the output file name for sel, e.g. "acl.2021.csv".
func OutputName(sel Selector, ext string) string {
	return fmt.Sprintf("%s.%d.%s", sel.Conference, sel.Year, ext)
}

func legacyYear(year int) int {
	yy := year % 100
	if yy < 0 {
		yy += 100
	}
	return yy
}
