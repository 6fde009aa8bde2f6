package store

// Store is the persistence contract for the progression document. Load and
// Save move the whole document; there is no per-field access.
//
// Update runs a read-modify-write sequence under the store's mutex, so
// concurrent handlers in one process cannot interleave and lose writes.
// Writers in other processes are not serialized: the on-disk replace is
// atomic, but the last whole-document write wins.
type Store interface {
	Load() (*Document, error)
	Save(doc *Document) error
	Update(fn func(doc *Document) error) error
}
