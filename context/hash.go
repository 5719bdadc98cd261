package context

import "github.com/minio/highwayhash"

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash is the chunk-dedup hash stored in Document.Hash, distinct from
// model.ContentHash's SHA-256 (§6.4 requires SHA-256 specifically for
// Module.ContentHash; this hash only needs to be fast and collision-aware
// enough to dedup context chunks, the concern highwayhash was brought into
// the stack for).
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
