package id

import (
	"strings"
	"testing"
	"time"
)

func TestDeriveDeterministic(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	a := ForAsset("h1", "actor-a", at)
	b := ForAsset("h1", "actor-a", at)

	if a != b {
		t.Errorf("ForAsset() not deterministic: %q != %q", a, b)
	}
}

func TestDeriveDistinctInputs(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    string
		b    string
	}{
		{
			name: "different content hash",
			a:    ForAsset("h1", "actor-a", at),
			b:    ForAsset("h2", "actor-a", at),
		},
		{
			name: "different registrant",
			a:    ForAsset("h1", "actor-a", at),
			b:    ForAsset("h1", "actor-b", at),
		},
		{
			name: "different instant",
			a:    ForAsset("h1", "actor-a", at),
			b:    ForAsset("h1", "actor-a", at.Add(time.Nanosecond)),
		},
		{
			name: "part boundaries are not ambiguous",
			a:    Derive(PrefixAsset, "ab", "c"),
			b:    Derive(PrefixAsset, "a", "bc"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("expected distinct ids, both were %q", tt.a)
			}
		})
	}
}

func TestDerivePrefixes(t *testing.T) {
	at := time.Now()

	tests := []struct {
		name   string
		id     string
		prefix string
	}{
		{"asset", ForAsset("h", "a", at), PrefixAsset},
		{"transfer", ForTransfer("ast_x", "a", "b", at), PrefixTransfer},
		{"license", ForLicense("ast_x", "a", "b", at), PrefixLicense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.id, tt.prefix+"_") {
				t.Errorf("id %q missing prefix %q", tt.id, tt.prefix)
			}
			if len(tt.id) != len(tt.prefix)+1+DigestLength {
				t.Errorf("id %q has unexpected length %d", tt.id, len(tt.id))
			}
		})
	}
}

func TestForTransferTimezoneNormalized(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2025, 3, 1, 18, 0, 0, 0, loc)

	a := ForTransfer("ast_x", "a", "b", at)
	b := ForTransfer("ast_x", "a", "b", at.UTC())

	if a != b {
		t.Errorf("same instant in different zones produced different ids: %q vs %q", a, b)
	}
}
