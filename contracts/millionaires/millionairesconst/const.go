package millionairesconst

const (
	// RichestKey is a storage key of the richest participant record.
	RichestKey = "richest"
	// ParticipantPrefix prefixes storage keys of participant records, the rest
	// of the key is participant address.
	ParticipantPrefix = "participant:"
	// NetWorthBitsKey is a storage key of the net worth width fixed at
	// deployment.
	NetWorthBitsKey = "netWorthBits"

	// DefaultNetWorthBits is the net worth width used when none is provided.
	DefaultNetWorthBits = 64
	// MaxNetWorthBits is the widest supported net worth.
	MaxNetWorthBits = 64

	// MaxStorageKeyLength is the storage key limit of the Neo N3 VM.
	MaxStorageKeyLength = 64
	// MaxAddressLength limits participant address length in bytes so that
	// participant key fits into the storage key limit.
	MaxAddressLength = MaxStorageKeyLength - len(ParticipantPrefix)
)

// Error kinds. Contract exceptions and off-chain errors are prefixed with
// one of them followed by a colon.
const (
	KindInvalidArgument    = "InvalidArgument"
	KindNotFound           = "NotFound"
	KindSerializationError = "SerializationError"
	KindStorageUnavailable = "StorageUnavailable"
)

const (
	// ErrNoParticipants is returned on richest query against the empty ledger.
	ErrNoParticipants = KindNotFound + ": no participants registered yet"
	// ErrParticipantNotFound is returned if participant is missing.
	ErrParticipantNotFound = KindNotFound + ": participant is not registered"
	// ErrInvalidAddress is returned for empty, too long or non-UTF-8 addresses.
	ErrInvalidAddress = KindInvalidArgument + ": invalid participant address"
	// ErrNegativeNetWorth is returned for net worth below zero.
	ErrNegativeNetWorth = KindInvalidArgument + ": negative net worth"
	// ErrNetWorthOverflow is returned for net worth above the configured bound.
	ErrNetWorthOverflow = KindInvalidArgument + ": net worth exceeds the configured bound"
	// ErrInvalidNetWorthBits is returned for unsupported net worth width.
	ErrInvalidNetWorthBits = KindInvalidArgument + ": net worth width must be in [1, 64] bits"
)
