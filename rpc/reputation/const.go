package reputation

import (
	"github.com/nspcc-dev/confrep-contract/contracts/reputation/reputationconst"
)

const (
	// HandleLen is the length of an encryption engine ciphertext handle.
	HandleLen = reputationconst.HandleLen
	// CleartextLen is the length of a decrypted aggregate payload.
	CleartextLen = reputationconst.CleartextLen

	// CooldownActiveError is returned when a rate-limited operation is
	// retried before its cooldown window elapses.
	CooldownActiveError = reputationconst.ErrCooldownActive

	// BatchNotFoundError is returned on access to a batch that was never opened.
	BatchNotFoundError = reputationconst.ErrBatchNotFound

	// BatchClosedError is returned on submission into a closed batch.
	BatchClosedError = reputationconst.ErrBatchClosed

	// NoAggregateError is returned when a batch has no decrypted aggregate yet.
	NoAggregateError = reputationconst.ErrNoAggregate
)
