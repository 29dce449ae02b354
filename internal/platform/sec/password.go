// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier prepares secrets for storage and compares them at sign-in.
type PasswordVerifier interface {
	// Prepare turns a plain-text password into the value persisted for the user.
	Prepare(plainTextPassword string) (string, error)

	// Matches reports whether plainTextPassword corresponds to the stored value.
	Matches(plainTextPassword, stored string) bool
}

// PlainVerifier stores secrets as given and compares them by exact equality.
//
// It is the default mode. The comparison is constant-time so a mismatch
// position cannot be timed.
type PlainVerifier struct{}

// Prepare returns the password unchanged.
func (PlainVerifier) Prepare(plainTextPassword string) (string, error) {
	return plainTextPassword, nil
}

// Matches compares both secrets byte for byte.
func (PlainVerifier) Matches(plainTextPassword, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(plainTextPassword), []byte(stored)) == 1
}

// BcryptVerifier stores bcrypt hashes.
type BcryptVerifier struct {
	Cost int
}

// Prepare hashes a plain-text password using the bcrypt algorithm.
func (verifier BcryptVerifier) Prepare(plainTextPassword string) (string, error) {
	cost := verifier.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Matches compares a plain-text password with its hashed version.
func (BcryptVerifier) Matches(plainTextPassword, stored string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plainTextPassword))
	return err == nil
}

// NewPasswordVerifier maps a configured mode ("plain" or "bcrypt") to its verifier.
func NewPasswordVerifier(mode string) (PasswordVerifier, error) {
	switch mode {
	case "", "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("auth: unsupported password mode %q", mode)
	}
}
