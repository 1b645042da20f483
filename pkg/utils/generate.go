package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== REGISTRATION ID ====================

const regIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateRegistrationID membuat ID registrasi event.
// Format: AH-<6 digit timestamp>-<6 char random>, contoh: AH-834712-K3X9QD
func GenerateRegistrationID() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}

	random := make([]byte, 6)
	for i := range random {
		random[i] = regIDAlphabet[rand.Intn(len(regIDAlphabet))]
	}

	return fmt.Sprintf("AH-%s-%s", ts, strings.ToUpper(string(random)))
}

// ==================== BOOKING REF ====================

// GenerateBookingRef creates a unique booking reference with timestamp
func GenerateBookingRef() string {
	now := time.Now()

	// Format: BK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("BK-%s-%s-%s", datePart, timePart, randomPart)
}
