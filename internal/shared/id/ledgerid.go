// Package id derives the content-addressed identifiers used across the
// rights ledger. Ids are deterministic: the same identity tuple always yields
// the same id, and two distinct registrations never collide (the tuple
// includes the registering actor and the registration instant).
package id

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DigestLength is the number of hex characters kept from the identity digest.
const DigestLength = 24

// Prefixes for the ledger entity types (Stripe-style).
const (
	PrefixAsset    = "ast"
	PrefixTransfer = "trf"
	PrefixLicense  = "lic"
)

// Derive builds a prefixed id from the given identity parts. Parts are joined
// with a separator before hashing so ("ab","c") and ("a","bc") differ.
func Derive(prefix string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return prefix + "_" + hex.EncodeToString(sum[:])[:DigestLength]
}

// ForAsset derives an asset id from content hash, registering actor and
// registration time.
func ForAsset(contentHash, registrant string, at time.Time) string {
	return Derive(PrefixAsset, contentHash, registrant, formatTime(at))
}

// ForTransfer derives a transfer-request id from asset, both parties and
// request time.
func ForTransfer(assetID, from, to string, at time.Time) string {
	return Derive(PrefixTransfer, assetID, from, to, formatTime(at))
}

// ForLicense derives a license id from asset, licensor, licensee and grant
// creation time.
func ForLicense(assetID, licensor, licensee string, at time.Time) string {
	return Derive(PrefixLicense, assetID, licensor, licensee, formatTime(at))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
