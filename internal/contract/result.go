package contract

import (
	"fmt"

	"github.com/seralva/algorealm/internal/errors"
)

// CallResult is the raw outcome of one contract call: the transaction id,
// the confirmation round, and the declared return value as decoded by the
// ABI layer. The client never reinterprets it.
type CallResult struct {
	TxID           string
	ConfirmedRound uint64
	Return         interface{}
	RawReturn      []byte
}

// Uint64 decodes the declared return value as a uint64.
func (r CallResult) Uint64() (uint64, error) {
	v, err := coerceUint64(r.Return)
	if err != nil {
		return 0, errors.Wrap(errors.CodeTransportError, "malformed uint64 return value", err)
	}
	return v, nil
}

// Text decodes the declared return value as a string.
func (r CallResult) Text() (string, error) {
	s, ok := r.Return.(string)
	if !ok {
		return "", errors.New(errors.CodeTransportError, fmt.Sprintf("malformed string return value: %T", r.Return))
	}
	return s, nil
}

// Uint64Tuple decodes the declared return value as a tuple of size uint64s.
func (r CallResult) Uint64Tuple(size int) ([]uint64, error) {
	items, ok := r.Return.([]interface{})
	if !ok || len(items) != size {
		return nil, errors.New(errors.CodeTransportError, fmt.Sprintf("malformed tuple return value: %T", r.Return))
	}
	out := make([]uint64, size)
	for i, item := range items {
		v, err := coerceUint64(item)
		if err != nil {
			return nil, errors.Wrap(errors.CodeTransportError, "malformed tuple return value", err)
		}
		out[i] = v
	}
	return out, nil
}

func coerceUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("unexpected return type %T", v)
	}
}
