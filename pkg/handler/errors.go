// Error codes and the typed validation-failure carrier for the
// private-transfer handler.
//
// Corresponds to: com.hedera.node.app.spi.workflows.HandleException plus the
// ResponseCodeEnum values the original handler raises. The Code+Message
// shape mirrors pkg/pczt/errors.go's ProposalError/VerificationFailure in
// the teacher repo.
package handler

import "fmt"

// ResponseCode enumerates the failure table from spec.md §4.E.
type ResponseCode string

const (
	InvalidTransactionBody       ResponseCode = "INVALID_TRANSACTION_BODY"
	NotSupported                 ResponseCode = "NOT_SUPPORTED"
	Unauthorized                 ResponseCode = "UNAUTHORIZED"
	TokenNotAssociatedToAccount  ResponseCode = "TOKEN_NOT_ASSOCIATED_TO_ACCOUNT"
	AccountKYCNotGrantedForToken ResponseCode = "ACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN"
)

// Error is the typed validation failure pureChecks/preHandle/handle raise.
// The host decides what to do with it (spec.md §7); the core never retries
// it itself.
type Error struct {
	Code    ResponseCode
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func fail(code ResponseCode, message string) error {
	return &Error{Code: code, Message: message}
}

// validateTrue mirrors HandleException.validateTrue: fails with code unless
// cond holds.
func validateTrue(cond bool, code ResponseCode, message string) error {
	if !cond {
		return fail(code, message)
	}
	return nil
}

// validateFalse mirrors HandleException.validateFalse: fails with code
// unless cond is false.
func validateFalse(cond bool, code ResponseCode, message string) error {
	if cond {
		return fail(code, message)
	}
	return nil
}
