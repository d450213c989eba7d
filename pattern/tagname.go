package pattern

import (
	"sync"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	"github.com/BlockchainCommons/dcbor-pattern-go/knownvalue"
)

// tagNameRegistry maps CBOR tag numbers to the bare names the pattern
// language's `tag(name, content)` selector accepts, mirroring the
// known-value registry's code/name duality for the much smaller set of
// tags the dCBOR ecosystem gives names to.
var tagNameRegistry = struct {
	mu      sync.RWMutex
	byName  map[string]uint64
	byValue map[uint64]string
}{
	byName: map[string]uint64{
		"date":        cbor.DateTag,
		"known-value": knownvalue.Tag,
		"digest":      cbor.DigestTag,
	},
	byValue: map[uint64]string{
		cbor.DateTag:    "date",
		knownvalue.Tag:  "known-value",
		cbor.DigestTag:  "digest",
	},
}

// RegisterTagName associates a bare name with a CBOR tag number for the
// `tag(name, content)` pattern selector. Intended for one-time setup by a
// hosting application's tag registry, analogous to known-value registration.
func RegisterTagName(name string, tag uint64) {
	tagNameRegistry.mu.Lock()
	defer tagNameRegistry.mu.Unlock()
	tagNameRegistry.byName[name] = tag
	tagNameRegistry.byValue[tag] = name
}

// TagByName reports the tag number registered under name.
func TagByName(name string) (uint64, bool) { return tagByName(name) }

// TagsMatchingName returns every registered tag whose name matches re.
func TagsMatchingName(re *TextRegex) []uint64 { return tagsMatchingName(re) }

func tagByName(name string) (uint64, bool) {
	tagNameRegistry.mu.RLock()
	defer tagNameRegistry.mu.RUnlock()
	t, ok := tagNameRegistry.byName[name]
	return t, ok
}

// tagsMatchingName returns every registered tag whose name matches re,
// used by the `tag(/regex/, content)` selector.
func tagsMatchingName(re *TextRegex) []uint64 {
	tagNameRegistry.mu.RLock()
	defer tagNameRegistry.mu.RUnlock()
	var out []uint64
	for name, tag := range tagNameRegistry.byName {
		if re.MatchString(name) {
			out = append(out, tag)
		}
	}
	return out
}
