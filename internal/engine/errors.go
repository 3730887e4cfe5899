package engine

import (
	"errors"
	"fmt"
)

// Error represents a structured engine failure.
//
// Two classes share this type, distinguished by code:
//   - Validation: bad team code, inactive auction, insufficient funds,
//     cap exceeded. The caller decides how to surface these; nothing was
//     mutated.
//   - Integrity: the persisted state contradicted the in-memory mirror
//     (player already sold, purse could not cover a checked deduct).
//     Recoverable; the engine logs, clears stale state, and moves on.
//
// Fatal storage errors are NOT wrapped in Error; they propagate as plain
// wrapped errors and the caller must not assume any mutation occurred.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable reason.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes engine failures.
type ErrorCode string

const (
	// Validation codes.
	ErrCodeAlreadyActive ErrorCode = "AUCTION_ALREADY_ACTIVE"
	ErrCodeInactive      ErrorCode = "AUCTION_INACTIVE"
	ErrCodePaused        ErrorCode = "AUCTION_PAUSED"
	ErrCodeNotPaused     ErrorCode = "AUCTION_NOT_PAUSED"
	ErrCodeNoLists       ErrorCode = "NO_PLAYER_LISTS"
	ErrCodeNoPlayers     ErrorCode = "NO_PLAYERS_REMAINING"
	ErrCodeNoCurrent     ErrorCode = "NO_CURRENT_PLAYER"
	ErrCodeUnknownTeam   ErrorCode = "UNKNOWN_TEAM"
	ErrCodeUnknownPlayer ErrorCode = "UNKNOWN_PLAYER"
	ErrCodeSquadFull     ErrorCode = "SQUAD_FULL"
	ErrCodeOverseasFull  ErrorCode = "OVERSEAS_SLOTS_FULL"
	ErrCodeSelfRaise     ErrorCode = "ALREADY_HIGHEST_BIDDER"
	ErrCodeLowPurse      ErrorCode = "INSUFFICIENT_PURSE"
	ErrCodeNoBids        ErrorCode = "NO_BIDS"
	ErrCodeNoSales       ErrorCode = "NO_SALES"
	ErrCodeSameTeam      ErrorCode = "SAME_TEAM"
	ErrCodeOnRoster      ErrorCode = "PLAYER_ON_ROSTER"
	ErrCodeNotAuctioned  ErrorCode = "PLAYER_NOT_AUCTIONED"
	ErrCodeBadAmount     ErrorCode = "INVALID_AMOUNT"
	ErrCodeBadCountdown  ErrorCode = "COUNTDOWN_OUT_OF_RANGE"
	ErrCodeBadPayer      ErrorCode = "INVALID_COMPENSATION_PAYER"

	// Integrity code: persisted state contradicted the mirror.
	ErrCodeIntegrity ErrorCode = "DATA_INTEGRITY"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidation reports whether err is a structured engine failure other
// than an integrity failure. Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code != ErrCodeIntegrity
	}
	return false
}

// IsIntegrity reports whether err is a recoverable integrity failure.
func IsIntegrity(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeIntegrity
	}
	return false
}

// CodeOf returns the engine error code carried by err, or "" when err is
// not a structured engine failure.
func CodeOf(err error) ErrorCode {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

func errf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
