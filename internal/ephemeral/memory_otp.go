// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ephemeral

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/MKhiriev/traveltrek/models"
)

type otpKey struct {
	owner   string
	purpose string
}

// MemoryOTPStore is the process-local [OTPStore].
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[otpKey]models.OTPEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryOTPStore(ttl time.Duration) *MemoryOTPStore {
	return &MemoryOTPStore{
		entries: make(map[otpKey]models.OTPEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryOTPStore) Store(_ context.Context, owner, purpose, pendingValue, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[otpKey{owner, purpose}] = models.OTPEntry{
		Code:         code,
		Purpose:      purpose,
		PendingValue: pendingValue,
		ExpiresAt:    s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryOTPStore) Verify(_ context.Context, owner, purpose, code string) (models.OTPResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := otpKey{owner, purpose}
	entry, ok := s.entries[key]
	if !ok {
		return models.OTPResult{}, nil
	}

	if !s.now().Before(entry.ExpiresAt) {
		delete(s.entries, key)
		return models.OTPResult{}, nil
	}

	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return models.OTPResult{}, nil
	}

	delete(s.entries, key)
	return models.OTPResult{Valid: true, PendingValue: entry.PendingValue}, nil
}

func (s *MemoryOTPStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of entries currently held, expired or not.
func (s *MemoryOTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
