// Package errors provides the structured error taxonomy shared by the
// ledger adapter, the contract client, and the game orchestrator.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidArgument indicates a local validation failure. No network
	// call was made.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeInsufficientFunds indicates the funding guard found a spendable
	// balance below the required minimum.
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"

	// CodeWalletKeyMismatch indicates the connected signer cannot act for
	// the given address. Corrective action is switching wallets, not funding.
	CodeWalletKeyMismatch Code = "WALLET_KEY_MISMATCH"

	// CodeRecipientNotRegistered indicates the local precheck found the
	// recipient is not a registered player. No transaction was submitted.
	CodeRecipientNotRegistered Code = "RECIPIENT_NOT_REGISTERED"

	// CodeContractRejected indicates the contract's assertion or
	// authorization logic refused the call. The message is preserved
	// verbatim for the end user.
	CodeContractRejected Code = "CONTRACT_REJECTED"

	// CodeTransportError indicates a network or signing failure while
	// submitting a transaction.
	CodeTransportError Code = "TRANSPORT_ERROR"

	// CodeNotFound indicates the queried ledger entity does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeLedgerUnavailable indicates the ledger node is unreachable.
	CodeLedgerUnavailable Code = "LEDGER_UNAVAILABLE"
)

// Category groups codes by how callers should handle them.
type Category string

const (
	// CategoryValidation covers failures detected locally before any
	// network call.
	CategoryValidation Category = "validation"
	// CategoryPrecondition covers prechecks that aborted a flow before
	// submission.
	CategoryPrecondition Category = "precondition"
	// CategoryRemote covers failures raised by the contract itself. Their
	// messages are meaningful to show verbatim.
	CategoryRemote Category = "remote"
	// CategoryTransport covers network and node failures.
	CategoryTransport Category = "transport"
)

// Category maps an error code to its handling category.
func (c Code) Category() Category {
	switch c {
	case CodeInvalidArgument:
		return CategoryValidation
	case CodeInsufficientFunds, CodeRecipientNotRegistered, CodeWalletKeyMismatch:
		return CategoryPrecondition
	case CodeContractRejected, CodeNotFound:
		return CategoryRemote
	case CodeTransportError, CodeLedgerUnavailable:
		return CategoryTransport
	default:
		return CategoryTransport
	}
}

// Verbatim reports whether the error message is safe and meaningful to show
// to the end user unedited. Transport noise is not.
func (c Code) Verbatim() bool {
	switch c.Category() {
	case CategoryValidation, CategoryPrecondition, CategoryRemote:
		return true
	default:
		return false
	}
}
