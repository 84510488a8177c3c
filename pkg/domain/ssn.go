package domain

import (
	"regexp"
	"strings"

	dErrors "fastkyc/pkg/domain-errors"
)

// SSN is a validated United States Social Security number in NNN-NN-NNNN form.
// Invariant: the area is never 000, 666 or 900-999, the group is never 00 and
// the serial is never 0000.
//
// Usage: construct via ParseSSN at trust boundaries; direct casting bypasses
// validation.
type SSN string

var ssnShape = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)

// ParseSSN validates and returns an SSN.
//
// Errors: returns CodeInvalidInput when the value does not satisfy the issuing
// rules; no other errors are expected.
func ParseSSN(s string) (SSN, error) {
	if !ssnShape.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ssn must be formatted NNN-NN-NNNN")
	}
	area, group, serial := s[0:3], s[4:6], s[7:11]
	if area == "000" || area == "666" || strings.HasPrefix(area, "9") {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ssn area number is not issuable")
	}
	if group == "00" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ssn group number is not issuable")
	}
	if serial == "0000" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ssn serial number is not issuable")
	}
	return SSN(s), nil
}

func (s SSN) String() string { return string(s) }

// Masked returns the SSN with all but the serial hidden, for logs and summaries.
func (s SSN) Masked() string {
	if len(s) != 11 {
		return "***-**-****"
	}
	return "***-**-" + string(s)[7:]
}
