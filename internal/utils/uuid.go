package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns a time-ordered UUIDv7, or a random UUIDv4 if the clock
// source fails.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// ObjectKey names an uploaded object "<unix-ms>-<uuid><ext>". ext must
// include its leading dot.
func ObjectKey(now time.Time, ext string) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), NewID(), ext)
}
