/*
Package profile contains implementation of Profile contract deployed in the
ConfRep chain.

The contract is plain per-account key/value storage for dashboard profile
records (display names, avatar references, arbitrary metadata blobs). Records
are managed by their owning accounts; the contract enforces size limits and
witness checks and has no interaction with the reputation pipeline.

# Contract notifications

ProfilePut notification. Emitted on every stored record:

	ProfilePut
	  - name: owner
	    type: Hash160
	  - name: key
	    type: String

ProfileDelete notification. Emitted on every removed record:

	ProfileDelete
	  - name: owner
	    type: Hash160
	  - name: key
	    type: String
*/
package profile

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'admin' -> interop.Hash160
   account gating contract updates
 - 'r' + <owner20> + <key> -> []byte
   profile record of the account <owner20> under name <key>
*/
