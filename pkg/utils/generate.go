package utils

import (
	"github.com/google/uuid"
)

// GenerateTransactionID returns the opaque id stamped on a settled payment.
func GenerateTransactionID() string {
	return "TXN-" + uuid.NewString()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
