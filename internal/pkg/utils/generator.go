package utils

import (
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateVideoCallingID() string {
	return uuid.NewString()
}
