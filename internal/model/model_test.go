package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabcdef", NormalizeAddress("  0xABCdef "))
	assert.Equal(t, "", NormalizeAddress("   "))
}

func TestSameAddress(t *testing.T) {
	assert.True(t, SameAddress("0xABC", "0xabc"))
	assert.True(t, SameAddress(" 0xabc", "0xabc "))
	assert.False(t, SameAddress("0xabc", "0xdef"))
	assert.False(t, SameAddress("", ""), "empty never matches, even itself")
}

func TestMembershipActive(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	m := Membership{ExpiresAt: now.Add(time.Nanosecond)}
	assert.True(t, m.Active(now))

	m = Membership{ExpiresAt: now}
	assert.False(t, m.Active(now), "boundary is exclusive")

	m = Membership{ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, m.Active(now))
}

func TestIsMockAddress(t *testing.T) {
	assert.True(t, IsMockAddress("0x1010000000000000000000000000000000000001"))
	assert.True(t, IsMockAddress("0X2020000000000000000000000000000000000002"))
	assert.True(t, IsMockAddress("0x3030000000000000000000000000000000000003"))
	assert.False(t, IsMockAddress("0x4040000000000000000000000000000000000004"))
	assert.False(t, IsMockAddress("0xa010100000000000000000000000000000000005"), "prefix match only")
}

func TestPostPublic(t *testing.T) {
	assert.True(t, (&Post{IsPublic: true, MinTier: 3}).Public())
	assert.True(t, (&Post{IsPublic: false, MinTier: 0}).Public())
	assert.False(t, (&Post{IsPublic: false, MinTier: 1}).Public())
}
