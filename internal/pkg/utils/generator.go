package utils

import "github.com/google/uuid"

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateAuditEventID() string {
	return uuid.NewString()
}
