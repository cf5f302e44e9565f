// Package reverify decides when a costly repeat of the core verification
// must recur: the probabilistic trigger evaluated on every non-genesis
// onboarding, and the regulator-driven mandatory document update workflow.
package reverify

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	id "kycshare/pkg/domain"
)

// DrawSource yields an integer in [0,100] for a re-verification decision.
// The draw is injected so tests can force deterministic outcomes.
type DrawSource interface {
	Draw(customerID id.CustomerID, accountID id.AccountID, docHash string) int
}

// DrawFunc adapts a plain function to a DrawSource.
type DrawFunc func(customerID id.CustomerID, accountID id.AccountID, docHash string) int

func (f DrawFunc) Draw(customerID id.CustomerID, accountID id.AccountID, docHash string) int {
	return f(customerID, accountID, docHash)
}

// BlakeDraw derives the draw from a BLAKE2b digest of the triple
// (customerID, accountID, docHash). Deterministic for a given triple, which
// keeps replays of the same onboarding consistent across nodes.
type BlakeDraw struct{}

func (BlakeDraw) Draw(customerID id.CustomerID, accountID id.AccountID, docHash string) int {
	digest := blake2b.Sum256([]byte(customerID.String() + "|" + accountID.String() + "|" + docHash))
	return int(binary.BigEndian.Uint64(digest[:8]) % 101)
}
