package domain

import (
	"crypto/rand"
	"fmt"
)

const (
	referencePrefix = "BK-"
	referenceLength = 10
	// Без похожих символов (0/O, 1/I), код диктуют по телефону
	referenceCharset = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// NewBookingReference generates a customer-facing booking reference of the
// form BK-XXXXXXXXXX. References are random; global uniqueness is enforced
// by the storage layer and callers regenerate on collision.
func NewBookingReference() (string, error) {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("domain: failed to generate booking reference: %w", err)
	}

	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}

	return referencePrefix + string(buf), nil
}
