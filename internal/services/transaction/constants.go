package transaction

// List limits
const (
	DefaultListLimit = 50
	MinListLimit     = 1
	MaxListLimit     = 200
)

// Store operations, used in StorageError and metrics labels.
const (
	OpInsert = "insert"
	OpFind   = "find"
)
