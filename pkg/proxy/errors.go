package proxy

import (
	"fmt"
)

// ErrorCode identifies why a proxy_swap request was rejected. Values follow
// the Anchor framework numbering so they read the same in transaction logs.
type ErrorCode uint32

const (
	ErrCodeInstructionMissing           ErrorCode = 100
	ErrCodeInstructionFallbackNotFound  ErrorCode = 101
	ErrCodeInstructionDidNotDeserialize ErrorCode = 102

	ErrCodeConstraintMut             ErrorCode = 2000
	ErrCodeConstraintHasOneMismatch  ErrorCode = 2001
	ErrCodeConstraintMintMismatch    ErrorCode = 2003
	ErrCodeConstraintSeedsMismatch   ErrorCode = 2006
	ErrCodeConstraintAddressMismatch ErrorCode = 2012

	ErrCodeAccountDiscriminatorMismatch ErrorCode = 3002
	ErrCodeAccountDidNotDeserialize     ErrorCode = 3003
	ErrCodeAccountNotEnoughKeys         ErrorCode = 3005
	ErrCodeAccountOwnedByWrongProgram   ErrorCode = 3007
	ErrCodeInvalidProgram               ErrorCode = 3008
	ErrCodeInvalidProgramExecutable     ErrorCode = 3009
	ErrCodeAccountNotSigner             ErrorCode = 3010

	ErrCodeDeserialization     ErrorCode = 6000
	ErrCodePrivilegeEscalation ErrorCode = 6001
)

var errorNames = map[ErrorCode]string{
	ErrCodeInstructionMissing:           "InstructionMissing",
	ErrCodeInstructionFallbackNotFound:  "InstructionFallbackNotFound",
	ErrCodeInstructionDidNotDeserialize: "InstructionDidNotDeserialize",
	ErrCodeConstraintMut:                "ConstraintMut",
	ErrCodeConstraintHasOneMismatch:     "ConstraintHasOneMismatch",
	ErrCodeConstraintMintMismatch:       "ConstraintMintMismatch",
	ErrCodeConstraintSeedsMismatch:      "ConstraintSeedsMismatch",
	ErrCodeConstraintAddressMismatch:    "ConstraintAddressMismatch",
	ErrCodeAccountDiscriminatorMismatch: "AccountDiscriminatorMismatch",
	ErrCodeAccountDidNotDeserialize:     "AccountDidNotDeserialize",
	ErrCodeAccountNotEnoughKeys:         "AccountNotEnoughKeys",
	ErrCodeAccountOwnedByWrongProgram:   "AccountOwnedByWrongProgram",
	ErrCodeInvalidProgram:               "InvalidProgram",
	ErrCodeInvalidProgramExecutable:     "InvalidProgramExecutable",
	ErrCodeAccountNotSigner:             "AccountNotSigner",
	ErrCodeDeserialization:              "DeserializationError",
	ErrCodePrivilegeEscalation:          "PrivilegeEscalation",
}

func (c ErrorCode) String() string {
	if name, ok := errorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", uint32(c))
}

// Error is returned for every rejected request.
type Error struct {
	// Code is the error kind.
	Code ErrorCode

	// Message is a human-readable error message.
	Message string

	// Account names the offending account, if any.
	Account string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s (%d): %s", e.Code, uint32(e.Code), e.Message)
	if e.Account != "" {
		msg = fmt.Sprintf("%s: account %s", msg, e.Account)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithAccount returns a copy of e naming the offending account.
func (e *Error) WithAccount(account string) *Error {
	c := *e
	c.Account = account
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// NewError creates a new Error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Pre-defined errors, matched with errors.Is.
var (
	ErrInstructionMissing           = NewError(ErrCodeInstructionMissing, "8 byte instruction identifier not provided")
	ErrInstructionFallbackNotFound  = NewError(ErrCodeInstructionFallbackNotFound, "fallback functions are not supported")
	ErrInstructionDidNotDeserialize = NewError(ErrCodeInstructionDidNotDeserialize, "the program could not deserialize the given instruction")

	ErrConstraintMut             = NewError(ErrCodeConstraintMut, "a mut constraint was violated")
	ErrConstraintHasOneMismatch  = NewError(ErrCodeConstraintHasOneMismatch, "a has one constraint was violated")
	ErrConstraintMintMismatch    = NewError(ErrCodeConstraintMintMismatch, "token account mint does not match the pool mint")
	ErrConstraintSeedsMismatch   = NewError(ErrCodeConstraintSeedsMismatch, "a seeds constraint was violated")
	ErrConstraintAddressMismatch = NewError(ErrCodeConstraintAddressMismatch, "an address constraint was violated")

	ErrAccountDiscriminatorMismatch = NewError(ErrCodeAccountDiscriminatorMismatch, "account discriminator did not match what was expected")
	ErrAccountDidNotDeserialize     = NewError(ErrCodeAccountDidNotDeserialize, "failed to deserialize the account")
	ErrAccountNotEnoughKeys         = NewError(ErrCodeAccountNotEnoughKeys, "not enough account keys given to the instruction")
	ErrAccountOwnedByWrongProgram   = NewError(ErrCodeAccountOwnedByWrongProgram, "the given account is owned by a different program than expected")
	ErrInvalidProgram               = NewError(ErrCodeInvalidProgram, "program ID was not as expected")
	ErrInvalidProgramExecutable     = NewError(ErrCodeInvalidProgramExecutable, "program account is not executable")
	ErrAccountNotSigner             = NewError(ErrCodeAccountNotSigner, "the given account did not sign")

	ErrDeserialization     = NewError(ErrCodeDeserialization, "tick array layout does not match")
	ErrPrivilegeEscalation = NewError(ErrCodePrivilegeEscalation, "forwarded account privileges exceed the supplied ones")
)
