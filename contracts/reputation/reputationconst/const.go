package reputationconst

const (
	// HandleLen is the length of a ciphertext handle issued by the FHE engine
	// contract. Submitted encrypted scores must be exactly this long.
	HandleLen = 32

	// CleartextLen is the exact length of the decrypted aggregate payload
	// delivered to the decryption callback: one little-endian integer.
	CleartextLen = 8

	// ErrNotProvider is thrown on submission attempt by an account outside
	// the provider allow-list.
	ErrNotProvider = "caller is not a reputation provider"

	// ErrPaused is thrown by operations gated by the pause flag.
	ErrPaused = "contract is paused"

	// ErrAlreadyPaused is thrown by repeated Pause.
	ErrAlreadyPaused = "contract is already paused"

	// ErrNegativeCooldown is thrown by SetCooldown on a negative value.
	ErrNegativeCooldown = "negative cooldown"

	// ErrCooldownActive is thrown while the per-address cooldown window of
	// the attempted action kind has not elapsed yet.
	ErrCooldownActive = "cooldown is active for this address"

	// ErrBatchNotFound is thrown for batch ids outside of [1, CurrentBatch].
	ErrBatchNotFound = "batch does not exist"

	// ErrBatchClosed is thrown on submission into a closed batch and on
	// repeated CloseBatch.
	ErrBatchClosed = "batch is already closed"

	// ErrBatchOpen is thrown on aggregation request for a batch that has not
	// been closed yet.
	ErrBatchOpen = "batch is still open"

	// ErrAlreadySubmitted is thrown when a batch already holds a score for
	// the contributor.
	ErrAlreadySubmitted = "reputation already submitted for this contributor"

	// ErrAddressLen is thrown on malformed Hash160 arguments.
	ErrAddressLen = "invalid address length"

	// ErrHandleLen is thrown on encrypted score arguments of wrong length.
	ErrHandleLen = "invalid ciphertext handle length"

	// ErrReplay is thrown by the decryption callback for unknown and for
	// already processed request ids alike.
	ErrReplay = "decryption request replay detected"

	// ErrUnknownRequest is thrown by read methods for request ids without
	// a stored decryption context.
	ErrUnknownRequest = "unknown decryption request"

	// ErrStateMismatch is thrown when the recomputed state commitment does
	// not match the one stored at request time.
	ErrStateMismatch = "state commitment mismatch"

	// ErrProofInvalid is thrown when the decryption proof fails engine
	// verification.
	ErrProofInvalid = "invalid decryption proof"

	// ErrMalformedCleartext is thrown when the callback payload is not the
	// fixed-width encoding of one integer.
	ErrMalformedCleartext = "malformed cleartext payload"

	// ErrDuplicateRequest is thrown when the engine issues a request id that
	// is already tracked.
	ErrDuplicateRequest = "duplicate decryption request id"

	// ErrNoAggregate is thrown by GetAggregate before a successful
	// decryption callback for the batch.
	ErrNoAggregate = "aggregate is not available"
)
