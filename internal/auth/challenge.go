package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"backr/internal/model"
)

// challengeTTL bounds how long a login nonce stays redeemable.
const challengeTTL = 5 * time.Minute

// ChallengeStore issues and redeems single-use login nonces. It is held in
// process memory and resets on restart, which only forces a re-login.
type ChallengeStore struct {
	mu      sync.Mutex
	pending map[string]challenge
	nowFn   func() time.Time
}

type challenge struct {
	message   string
	expiresAt time.Time
}

// NewChallengeStore creates an empty store.
func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{pending: make(map[string]challenge), nowFn: time.Now}
}

// Issue creates a fresh message for the address to sign. Re-issuing replaces
// any earlier pending challenge for the same wallet.
func (s *ChallengeStore) Issue(address string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	addr := model.NormalizeAddress(address)
	now := s.nowFn()
	msg := fmt.Sprintf("Sign in to Backr\n\nWallet: %s\nNonce: %s\nIssued: %s",
		addr, hex.EncodeToString(nonce), now.UTC().Format(time.RFC3339))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.pending[addr] = challenge{message: msg, expiresAt: now.Add(challengeTTL)}
	return msg, nil
}

// Redeem returns the pending message for an address and removes it. A
// challenge can be redeemed once.
func (s *ChallengeStore) Redeem(address string) (string, bool) {
	addr := model.NormalizeAddress(address)
	now := s.nowFn()

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pending[addr]
	if !ok {
		return "", false
	}
	delete(s.pending, addr)
	if now.After(c.expiresAt) {
		return "", false
	}
	return c.message, true
}

func (s *ChallengeStore) sweepLocked(now time.Time) {
	for addr, c := range s.pending {
		if now.After(c.expiresAt) {
			delete(s.pending, addr)
		}
	}
}
