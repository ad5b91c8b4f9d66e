package myuuid

import "github.com/google/uuid"

type RealUUIDer struct{}

func (u RealUUIDer) Create() string {
	return uuid.New().String()
}

// IsValid reports whether s is a well-formed uuid, e.g. one we issued ourselves
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
