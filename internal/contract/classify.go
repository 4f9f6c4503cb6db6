package contract

import (
	"strings"

	"github.com/seralva/algorealm/internal/errors"
)

// reclassifications is the ordered (matcher, code) table applied to raw
// submission failures, evaluated once at this boundary. The wallet-key
// entry must come first: its message also mentions the transaction being
// rejected, but it needs a different corrective action (switch wallets)
// than a contract rejection.
var reclassifications = []struct {
	marker string
	code   errors.Code
}{
	{"key does not exist in this wallet", errors.CodeWalletKeyMismatch},
	{"assert failed", errors.CodeContractRejected},
	{"logic eval error", errors.CodeContractRejected},
	{"rejected by ApprovalProgram", errors.CodeContractRejected},
	{"transaction rejected", errors.CodeContractRejected},
	{"overspend", errors.CodeInsufficientFunds},
	{"balance below min", errors.CodeInsufficientFunds},
}

// classifySubmit maps a raw node/signer error to the domain taxonomy. The
// original message is preserved: contract rejections are meaningful to show
// to the end user verbatim.
func classifySubmit(operation string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, entry := range reclassifications {
		if strings.Contains(msg, entry.marker) {
			return errors.Wrap(entry.code, operation+": "+msg, err)
		}
	}
	return errors.Wrap(errors.CodeTransportError, operation+": "+msg, err)
}
