package license

import (
	"errors"
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestNewGrantDateValidation(t *testing.T) {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     *time.Time
		wantErr error
	}{
		{
			name:  "starts at creation, perpetual",
			start: created,
		},
		{
			name:  "starts later with end date",
			start: created.Add(24 * time.Hour),
			end:   timePtr(created.Add(48 * time.Hour)),
		},
		{
			name:    "start before creation",
			start:   created.Add(-time.Hour),
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "end before start",
			start:   created.Add(48 * time.Hour),
			end:     timePtr(created.Add(24 * time.Hour)),
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "end equals start",
			start:   created.Add(24 * time.Hour),
			end:     timePtr(created.Add(24 * time.Hour)),
			wantErr: ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrant("lic_1", "ast_1", "actor-b", "actor-c", tt.start, tt.end, TypeNonExclusive, "terms-digest", 100, created)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewGrant() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGrant() error = %v", err)
			}
			if !g.IsActive() {
				t.Error("new grant should be active")
			}
			if g.RoyaltyPaid() != 0 {
				t.Errorf("RoyaltyPaid() = %d, want 0", g.RoyaltyPaid())
			}
		})
	}
}

func TestNewGrantInvalidLicensee(t *testing.T) {
	created := time.Now()
	_, err := NewGrant("lic_1", "ast_1", "actor-b", "", created, nil, TypeExclusive, "d", 0, created)
	if !errors.Is(err, ErrInvalidLicensee) {
		t.Errorf("NewGrant() error = %v, want ErrInvalidLicensee", err)
	}
}

func TestGrantValidityWindow(t *testing.T) {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	start := created.Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	g, err := NewGrant("lic_1", "ast_1", "actor-b", "actor-c", start, &end, TypeSingleUse, "d", 100, created)
	if err != nil {
		t.Fatalf("NewGrant() error = %v", err)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"at start (inclusive)", start, true},
		{"mid window", start.Add(time.Hour), true},
		{"at end (inclusive)", end, true},
		{"after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsValidAt(tt.at); got != tt.want {
				t.Errorf("IsValidAt(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestGrantPerpetualValidity(t *testing.T) {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	g, err := NewGrant("lic_1", "ast_1", "actor-b", "actor-c", created, nil, TypeExclusive, "d", 0, created)
	if err != nil {
		t.Fatalf("NewGrant() error = %v", err)
	}

	if !g.IsValidAt(created.AddDate(50, 0, 0)) {
		t.Error("perpetual grant should remain valid far in the future")
	}
	if !g.IsPerpetual() {
		t.Error("IsPerpetual() = false, want true")
	}
}

func TestGrantTerminate(t *testing.T) {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	g, err := NewGrant("lic_1", "ast_1", "actor-b", "actor-c", created, nil, TypeNonExclusive, "d", 100, created)
	if err != nil {
		t.Fatalf("NewGrant() error = %v", err)
	}

	if err := g.Terminate(); err != nil {
		t.Fatalf("Terminate() error = %v", err)
	}
	if g.IsValidAt(created.Add(time.Hour)) {
		t.Error("terminated grant must be permanently invalid")
	}
	if err := g.Terminate(); !errors.Is(err, ErrAlreadyTerminated) {
		t.Errorf("second Terminate() error = %v, want ErrAlreadyTerminated", err)
	}
	if err := g.AddRoyalty(10); !errors.Is(err, ErrLicenseInactive) {
		t.Errorf("AddRoyalty() after terminate error = %v, want ErrLicenseInactive", err)
	}
}

func TestGrantRoyaltyAccrual(t *testing.T) {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	g, err := NewGrant("lic_1", "ast_1", "actor-b", "actor-c", created, nil, TypeNonExclusive, "d", 100, created)
	if err != nil {
		t.Fatalf("NewGrant() error = %v", err)
	}

	payments := []uint64{40, 60, 100}
	var total uint64
	for _, p := range payments {
		before := g.RoyaltyPaid()
		if err := g.AddRoyalty(p); err != nil {
			t.Fatalf("AddRoyalty(%d) error = %v", p, err)
		}
		if g.RoyaltyPaid() < before {
			t.Fatal("royalty paid must never decrease")
		}
		total += p
	}
	if g.RoyaltyPaid() != total {
		t.Errorf("RoyaltyPaid() = %d, want %d", g.RoyaltyPaid(), total)
	}

	if err := g.AddRoyalty(0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("AddRoyalty(0) error = %v, want ErrInvalidAmount", err)
	}
}

func TestGrantIsParty(t *testing.T) {
	created := time.Now()
	g, err := NewGrant("lic_1", "ast_1", "actor-b", "actor-c", created.Add(time.Hour), nil, TypeExclusive, "d", 0, created)
	if err != nil {
		t.Fatalf("NewGrant() error = %v", err)
	}

	if !g.IsParty("actor-b") || !g.IsParty("actor-c") {
		t.Error("licensor and licensee are parties")
	}
	if g.IsParty("actor-x") {
		t.Error("third parties are not parties")
	}
}
