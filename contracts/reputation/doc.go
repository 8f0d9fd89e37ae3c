/*
Package reputation contains implementation of Reputation contract deployed in
the ConfRep chain.

Trusted data providers submit encrypted reputation scores of DAO contributors
into explicit batches. Scores are opaque ciphertext handles issued by the FHE
engine contract; individual scores are never decrypted on-chain. For a closed
batch the contract owner may request aggregation: the contract folds the
batch's handles into a single encrypted sum through the engine's homomorphic
addition and asks the engine's decryption pipeline to reveal that sum. The
decrypted aggregate comes back asynchronously through OnDecryptionCallback,
authorized by a decryption proof and by a state commitment pinned at request
time rather than by caller identity. The single decrypted value per batch is
the only plaintext the system ever produces.

Submissions and aggregation requests are rate-limited by a per-address
cooldown window configured in seconds. Submission and aggregation cooldowns
are tracked in independent namespaces: one never delays the other.

# Contract notifications

OwnershipTransferred notification. Emitted when the owner role changes:

	OwnershipTransferred
	  - name: oldOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160

ProviderAdded and ProviderRemoved notifications. Emitted on actual changes of
the provider allow-list:

	ProviderAdded
	  - name: provider
	    type: Hash160

	ProviderRemoved
	  - name: provider
	    type: Hash160

Paused and Unpaused notifications without parameters. Emitted on actual pause
state transitions.

CooldownChanged notification. Emitted on every cooldown reconfiguration:

	CooldownChanged
	  - name: oldValue
	    type: Integer
	  - name: newValue
	    type: Integer

BatchOpened and BatchClosed notifications. Emitted on batch lifecycle
transitions:

	BatchOpened
	  - name: batchID
	    type: Integer

	BatchClosed
	  - name: batchID
	    type: Integer

ReputationSubmitted notification. Emitted on every accepted score submission
and never carries score material:

	ReputationSubmitted
	  - name: provider
	    type: Hash160
	  - name: contributor
	    type: Hash160
	  - name: batchID
	    type: Integer

DecryptionRequested notification. Emitted when an encrypted aggregate is
handed to the decryption pipeline; the decryption oracle reacts to it:

	DecryptionRequested
	  - name: requestID
	    type: ByteArray
	  - name: batchID
	    type: Integer

DecryptionCompleted notification. Emitted when the decrypted aggregate is
accepted:

	DecryptionCompleted
	  - name: requestID
	    type: ByteArray
	  - name: batchID
	    type: Integer
	  - name: aggregate
	    type: Integer
*/
package reputation

/*
Contract storage model.

# Summary
Current conventions:
 <batch> is an 8-byte little-endian unsigned integer batch id
 <addr> is a 20-byte unsigned integer hash of an account

Key-value storage format:
 - 'owner' -> interop.Hash160
   account of the contract owner
 - 'paused' -> 1
   present only while the contract is paused
 - 'cooldown' -> int
   cooldown window in seconds shared by both rate-limited action kinds
 - 'fheScriptHash' -> interop.Hash160
   address of the FHE engine contract
 - 'batchCurrent' -> int
   id of the current batch, starts at 1
 - 'b' + <batch> -> 1
   present only for closed batches
 - 's' + <batch> + <addr> -> []byte
   ciphertext handle of the score submitted for the contributor <addr>
 - 'w' + <addr> -> int
   ms timestamp of the provider's last accepted submission
 - 'q' + <addr> -> int
   ms timestamp of the account's last accepted aggregation request
 - 'p' + <addr> -> []byte{}
   provider allow-list membership
 - 'd' + <id> -> std.Serialize(DecryptionRequest)
   decryption context of the request <id> issued by the engine
 - 'r' + <batch> -> int
   decrypted aggregate of the batch, present after a completed decryption

# Persistence and audit
Notifications are the audit log of the contract: every admission decision
that mutates state emits one. The final decrypted aggregate is additionally
persisted under 'r' for direct querying.
*/
