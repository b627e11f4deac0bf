package reconcile

import (
	"sort"
	"strconv"
	"strings"
)

// rootMarker is the block-key component for objects without a parent.
const rootMarker = "ROOT"

// block holds the old-side and new-side objects sharing one block key.
type block struct {
	old []*Object
	new []*Object
}

// blockKey builds the composite comparison bucket key for an object:
// kind, owning area (if any), parent (or ROOT) and hierarchy level.
// Two objects are only ever compared when their keys are identical,
// which is what keeps same-named objects in unrelated branches apart.
func blockKey(o *Object) string {
	parts := []string{string(o.Kind)}
	if o.AreaName != "" {
		parts = append(parts, "area:"+o.AreaName)
	}
	if o.ParentName != "" {
		parts = append(parts, "parent:"+o.ParentName)
	} else {
		parts = append(parts, "parent:"+rootMarker)
	}
	parts = append(parts, "level:"+strconv.Itoa(o.Depth))
	return strings.Join(parts, "|")
}

// buildBlocks partitions old and new objects into comparison buckets.
// Callers are expected to have removed token-matched objects already.
func buildBlocks(old, new []*Object) map[string]*block {
	blocks := make(map[string]*block)

	get := func(key string) *block {
		b, ok := blocks[key]
		if !ok {
			b = &block{}
			blocks[key] = b
		}
		return b
	}

	for _, o := range old {
		b := get(blockKey(o))
		b.old = append(b.old, o)
	}
	for _, o := range new {
		b := get(blockKey(o))
		b.new = append(b.new, o)
	}

	return blocks
}

// sortedBlockKeys returns the block keys in lexical order so that the
// candidate collection pass is deterministic regardless of map order.
func sortedBlockKeys(blocks map[string]*block) []string {
	keys := make([]string, 0, len(blocks))
	for key := range blocks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
