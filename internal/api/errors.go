// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP clients the built-in plugins talk to.
package api

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from an API client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeAuth
	ErrTypeRateLimited
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrAuth        = &ClientError{Type: ErrTypeAuth, Message: "authentication failed"}
	ErrRateLimited = &ClientError{Type: ErrTypeRateLimited, Message: "rate limited"}
)

func connectionError(cause error) *ClientError {
	return &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: cause}
}

func invalidResponse(cause error) *ClientError {
	return &ClientError{Type: ErrTypeInvalidResponse, Message: "invalid response", Cause: cause}
}
