// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer converts between optional request metadata and pointers.
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer, returning the zero value if it is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonEmpty returns nil for an empty string and a pointer to it otherwise.
//
// Optional columns such as useragent and ipaddress store NULL rather than
// an empty string when the client sent nothing.
func NonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
