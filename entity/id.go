package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ID returns the deterministic entity identifier in the format
// {category}:{hash8}, where hash8 is the hex encoding of the first four
// bytes of the SHA-256 digest of the dedup key.
//
// The ID is a pure function of (category, normalized dedup key): it is stable
// across process restarts and across reports, which makes it usable as the
// join key of the cross-report knowledge graph.
func (e Entity) ID() string {
	sum := sha256.Sum256([]byte(e.DedupKey()))
	return fmt.Sprintf("%s:%s", e.Category, hex.EncodeToString(sum[:4]))
}

// CategoryOf extracts the category prefix from an entity ID.
// Returns "" if the ID does not carry a valid category prefix.
func CategoryOf(entityID string) Category {
	prefix, _, ok := strings.Cut(entityID, ":")
	if !ok {
		return ""
	}
	c := Category(prefix)
	if !c.IsValid() {
		return ""
	}
	return c
}
