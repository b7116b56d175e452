// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package emailaddr normalizes email addresses into a canonical lookup form.
//
// # Why normalize?
//
// Email comparison must be stable across the whole platform: the address a
// user registers with and the address they later log in with may differ only
// in case or Unicode representation. Every component that touches an email
// (credential store, attempt tracker, audit log) stores and compares the
// canonical form produced here.
package emailaddr

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize converts an email address into its canonical form.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFC (composes combining sequences into single code points).
// 3. Applies full Unicode case folding, which is stricter than a plain
// ToLower (e.g., the German ß folds to "ss").
//
// The Caser is constructed per call: x/text documents Casers as stateful
// and unsafe for concurrent use, and Normalize runs on every request path.
func Normalize(email string) string {
	trimmed := strings.TrimSpace(email)
	composed := norm.NFC.String(trimmed)
	return cases.Fold().String(composed)
}

// Equal reports whether two email addresses refer to the same mailbox after
// normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
