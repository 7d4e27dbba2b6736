/*
Package ledger implements the millionaires ledger outside of the blockchain.

Ledger keeps the same records under the same keys as Millionaires contract
(see contracts/millionaires) and serializes them the same way, so storage of
the deployed contract and the local ledger are interchangeable. Any neo-go
storage.Store can back the Ledger: in-memory, BoltDB or LevelDB one.

Each transition is applied to the storage atomically: changes are buffered in
a storage.MemCachedStore and persisted only after the whole transition
succeeds.

Errors returned by the Ledger are prefixed with their kind and match one of
ErrInvalidArgument, ErrNotFound, ErrSerialization or ErrStorageUnavailable
via errors.Is.
*/
package ledger
