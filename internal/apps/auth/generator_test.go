//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package auth

import (
	"strings"
	"testing"

	"github.com/meridiandata/salesgen/internal/datagen"
)

func TestOrganisationCount(t *testing.T) {
	tests := []struct {
		employees int
		want      int
	}{
		{0, 1},
		{10, 1},
		{25, 1},
		{50, 2},
		{500, 20},
	}
	for _, tt := range tests {
		if got := organisationCount(tt.employees); got != tt.want {
			t.Errorf("organisationCount(%d) = %d, want %d", tt.employees, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"O'Brien & Sons, Inc.", "obrien--sons-inc"},
		{"  Spaced  ", "spaced"},
		{"ÜmlautCo", "mlautco"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFakePasswordHashShape(t *testing.T) {
	f := datagen.NewFakerWithSeed(5)
	h := fakePasswordHash(f)
	if !strings.HasPrefix(h, "$2b$12$") {
		t.Errorf("hash %q missing bcrypt prefix", h)
	}
	if len(h) != 60 {
		t.Errorf("hash length %d, want 60", len(h))
	}
}
