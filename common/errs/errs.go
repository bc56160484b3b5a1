package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// DuplicateKey is returned when an item with the same key already exists.
	DuplicateKey = ErrorKind("Duplicate Key")

	// InvalidArgument is returned when an argument is invalid.
	InvalidArgument = ErrorKind("Invalid Argument")

	// IndexOutOfRange is returned when a node reference or position does not exist.
	IndexOutOfRange = ErrorKind("Index Out Of Range")

	// UnknownType is returned when a node type name does not resolve to a registered type.
	UnknownType = ErrorKind("Unknown Node Type")

	InsufficientFunds = ErrorKind("Insufficient Funds")
	InsufficientNodes = ErrorKind("Insufficient Nodes")
	TerminalTier      = ErrorKind("Terminal Tier")

	// NotOwner is returned when the caller does not control the referenced node or account.
	NotOwner = ErrorKind("Not Owner")

	// TransferRejected is returned when the settlement collaborator declines a funds movement.
	TransferRejected = ErrorKind("Transfer Rejected")

	AlreadyMigrated = ErrorKind("Already Migrated")

	Unsupported     = ErrorKind("Unsupported")
	Timeout         = ErrorKind("Timeout")
	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint128 = ErrorKind("overflow uint128")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
