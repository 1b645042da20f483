package utils

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateRegistrationIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^AH-\d{1,6}-[0-9A-Z]{6}$`)

	for i := 0; i < 100; i++ {
		id := GenerateRegistrationID()
		if !pattern.MatchString(id) {
			t.Fatalf("registration ID %q does not match expected format", id)
		}
	}
}

func TestGenerateRegistrationIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateRegistrationID()
		if seen[id] {
			t.Fatalf("duplicate registration ID after %d draws: %s", i, id)
		}
		seen[id] = true
	}
}

func TestGenerateBookingRefFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^BK-\d{8}-\d{6}-\d{4}$`)

	ref := GenerateBookingRef()
	if !pattern.MatchString(ref) {
		t.Fatalf("booking ref %q does not match expected format", ref)
	}
	if !strings.HasPrefix(ref, "BK-") {
		t.Fatalf("booking ref %q missing BK prefix", ref)
	}
}
