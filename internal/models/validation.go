package models

import (
	"strings"

	"github.com/aremaru/backend/internal/apperr"
	"github.com/aremaru/backend/internal/catalog"
)

// ValidateAllergy checks an allergen name and severity pair and returns
// the normalized values. The catalog "other" sentinel is rejected: callers
// must resolve it to the custom name before validation. An empty severity
// defaults to moderate.
func ValidateAllergy(name string, severity Severity) (string, Severity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", apperr.Validationf("allergen name is required")
	}
	if name == catalog.Other {
		return "", "", apperr.Validationf("custom allergen name is required when selecting %q", catalog.Other)
	}
	if severity == "" {
		severity = SeverityModerate
	}
	if !severity.Valid() {
		return "", "", apperr.Validationf("invalid severity %q", severity)
	}
	return name, severity, nil
}

// ValidateChild checks a child registration. Birth year and month are
// optional; a month must be 1..12 and a year a plausible 4-digit value.
func ValidateChild(nickname string, birthYear, birthMonth *int) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", apperr.Validationf("nickname is required")
	}
	if birthMonth != nil && (*birthMonth < 1 || *birthMonth > 12) {
		return "", apperr.Validationf("birth month must be between 1 and 12")
	}
	if birthYear != nil && (*birthYear < 1000 || *birthYear > 9999) {
		return "", apperr.Validationf("birth year must be a 4-digit year")
	}
	return nickname, nil
}

// ValidateReview checks review input. Child ownership is a repository
// concern and is verified at write time, not here.
func ValidateReview(childID, comment string, staffUnderstanding int) (string, error) {
	if strings.TrimSpace(childID) == "" {
		return "", apperr.Validationf("child is required")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", apperr.Validationf("comment is required")
	}
	if staffUnderstanding < 1 || staffUnderstanding > 5 {
		return "", apperr.Validationf("staff understanding must be between 1 and 5")
	}
	return comment, nil
}
