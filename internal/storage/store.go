package storage

// KV is a string key-value store. Two scopes exist in practice: a
// session-scoped store that lives only as long as the process (MemoryKV) and
// a durable per-installation store surviving restarts (FileKV).
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string) error
}
