//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/meridiandata/salesgen/internal/datagen"
)

// Locale identifiers used by the country catalog. Each locale carries its
// own deterministic faker so localized output stays stable per seed
// regardless of what other locales generate in between.
const (
	localeEnUS = "en_US"
	localeEnGB = "en_GB"
	localeDeDE = "de_DE"
	localeFrFR = "fr_FR"
	localeJaJP = "ja_JP"
	localeZhCN = "zh_CN"
)

// localeProfile describes per-locale output formats.
type localeProfile struct {
	Locale          string
	PostalPattern   string // # = digit, ? = uppercase letter
	CompanySuffixes []string
}

var localeProfiles = map[string]localeProfile{
	localeEnUS: {
		Locale:          localeEnUS,
		PostalPattern:   "#####",
		CompanySuffixes: []string{"Inc", "LLC", "Corp", "Co"},
	},
	localeEnGB: {
		Locale:          localeEnGB,
		PostalPattern:   "??# #??",
		CompanySuffixes: []string{"Ltd", "PLC", "LLP", "Group"},
	},
	localeDeDE: {
		Locale:          localeDeDE,
		PostalPattern:   "#####",
		CompanySuffixes: []string{"GmbH", "AG", "KG", "SE"},
	},
	localeFrFR: {
		Locale:          localeFrFR,
		PostalPattern:   "#####",
		CompanySuffixes: []string{"SA", "SARL", "SAS", "SNC"},
	},
	localeJaJP: {
		Locale:          localeJaJP,
		PostalPattern:   "###-####",
		CompanySuffixes: []string{"KK", "GK", "Co Ltd", "Holdings"},
	},
	localeZhCN: {
		Locale:          localeZhCN,
		PostalPattern:   "######",
		CompanySuffixes: []string{"Co Ltd", "Group", "Holdings", "Industries"},
	},
}

// localeRegistry hands out one seeded faker per locale.
type localeRegistry struct {
	seed   uint64
	fakers map[string]*datagen.Faker
}

func newLocaleRegistry(seed uint64) *localeRegistry {
	return &localeRegistry{
		seed:   seed,
		fakers: make(map[string]*datagen.Faker),
	}
}

// fakerFor returns the faker for the given locale, creating it on first
// use. Unknown locales share the en_US faker.
func (r *localeRegistry) fakerFor(locale string) *datagen.Faker {
	if _, ok := localeProfiles[locale]; !ok {
		locale = localeEnUS
	}
	if f, ok := r.fakers[locale]; ok {
		return f
	}
	h := fnv.New64a()
	h.Write([]byte(locale))
	f := datagen.NewFakerWithSeed(r.seed ^ h.Sum64())
	r.fakers[locale] = f
	return f
}

// profileFor returns the locale profile, defaulting to en_US.
func (r *localeRegistry) profileFor(locale string) localeProfile {
	if p, ok := localeProfiles[locale]; ok {
		return p
	}
	return localeProfiles[localeEnUS]
}

// postalCode expands the locale's postal pattern into a concrete value.
func (r *localeRegistry) postalCode(locale string) string {
	f := r.fakerFor(locale)
	pattern := r.profileFor(locale).PostalPattern
	var b strings.Builder
	for _, ch := range pattern {
		switch ch {
		case '#':
			b.WriteString(f.Digits(1))
		case '?':
			b.WriteString(f.Letters(1))
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// companyName generates a locale-flavored company name.
func (r *localeRegistry) companyName(locale string) string {
	f := r.fakerFor(locale)
	p := r.profileFor(locale)
	return fmt.Sprintf("%s %s", f.Company(), datagen.Choose(f, p.CompanySuffixes))
}
