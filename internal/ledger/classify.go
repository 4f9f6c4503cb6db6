package ledger

import (
	"strings"

	"github.com/seralva/algorealm/internal/errors"
)

// Node errors arrive as flattened HTTP messages, so classification is an
// ordered substring table evaluated once at this boundary. First match wins.
var notFoundMatchers = []string{
	"404",
	"not found",
	"does not exist",
	"no accounts found",
}

// classify maps a raw node error to the domain taxonomy: absent entities
// become CodeNotFound, everything else is the node being unreachable or
// misbehaving, which is CodeLedgerUnavailable.
func classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	lowered := strings.ToLower(msg)
	for _, marker := range notFoundMatchers {
		if strings.Contains(lowered, marker) {
			return errors.Wrap(errors.CodeNotFound, operation+": not found", err)
		}
	}
	return errors.Wrap(errors.CodeLedgerUnavailable, operation+": "+msg, err)
}
