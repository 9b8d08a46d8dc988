//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities.
package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit, plus the numeric
// draws (normal, Poisson) the generators need.
type Faker struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for
// reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
		rng:   rand.New(rand.NewSource(int64(seed))),
	}
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// Phone generates a random phone number.
func (f *Faker) Phone() string {
	return f.faker.Phone()
}

// Street generates a random street address.
func (f *Faker) Street() string {
	return f.faker.Street()
}

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// State generates a random state or province name.
func (f *Faker) State() string {
	return f.faker.State()
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// DomainName generates a random domain name.
func (f *Faker) DomainName() string {
	return f.faker.DomainName()
}

// Word generates a random word.
func (f *Faker) Word() string {
	return f.faker.Word()
}

// Date generates a random date within a range.
func (f *Faker) Date(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Chance returns true with probability p (0..1).
func (f *Faker) Chance(p float64) bool {
	return f.rng.Float64() < p
}

// Norm draws from a normal distribution with the given mean and stddev.
func (f *Faker) Norm(mean, stddev float64) float64 {
	return mean + stddev*f.rng.NormFloat64()
}

// Poisson draws from a Poisson distribution with the given mean.
func (f *Faker) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	// Knuth's method; fine for the small means used here.
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= f.rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}

// StringN generates a random alphabetic string of length n.
func (f *Faker) StringN(n int) string {
	return f.faker.LetterN(uint(n))
}

// Digits generates a random string of digits of length n.
func (f *Faker) Digits(n int) string {
	return f.faker.DigitN(uint(n))
}

// Letters generates n random uppercase letters.
func (f *Faker) Letters(n int) string {
	return strings.ToUpper(f.faker.LetterN(uint(n)))
}

// SKU generates a product SKU like "PRD-4821-QXF".
func (f *Faker) SKU() string {
	prefix := Choose(f, []string{"PRD", "ITM", "SKU"})
	return fmt.Sprintf("%s-%d-%s", prefix, f.Int(1000, 9999), f.Letters(3))
}

// OrderNumber generates a sales order number like "SO-2025-48213".
func (f *Faker) OrderNumber(year int) string {
	prefix := Choose(f, []string{"SO", "ORD", "INV"})
	return fmt.Sprintf("%s-%d-%d", prefix, year, f.Int(10000, 99999))
}

// PONumber generates a purchase order number like "PO-2025-48213".
func (f *Faker) PONumber(year int) string {
	return fmt.Sprintf("PO-%d-%d", year, f.Int(10000, 99999))
}

// TaxID generates a country-shaped tax identifier.
func (f *Faker) TaxID(countryCode string) string {
	switch countryCode {
	case "USA":
		return fmt.Sprintf("%d-%d", f.Int(10, 99), f.Int(1000000, 9999999))
	case "GBR", "IRL":
		return fmt.Sprintf("GB%d", f.Int(100000000, 999999999))
	case "DEU", "FRA", "ITA":
		return fmt.Sprintf("%s%d", countryCode[:2], f.Int(100000000, 999999999))
	default:
		return fmt.Sprintf("%s%d", countryCode, f.Int(10000000, 99999999))
	}
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}

// Sample returns up to n distinct elements from items.
func Sample[T any](f *Faker, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	idx := f.rng.Perm(len(items))[:n]
	out := make([]T, n)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// Truncate truncates a string to max length if needed.
func Truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
