package checkpoint

import (
	"strconv"
	"strings"
)

// Kind tags the fetch strategy a checkpoint record belongs to. Strategies
// that share one cache file disambiguate via the encoded prefix.
type Kind int

const (
	// KindSpecies keys base species records by numeric id.
	KindSpecies Kind = iota
	// KindGender keys female-sprite lookups by owning species id.
	KindGender
	// KindForm keys pokemon-form sub-resource lookups by slug.
	KindForm
	// KindChain keys evolution chains by numeric chain id.
	KindChain
	// KindAbility keys ability translations by ability name.
	KindAbility
)

// Key identifies one checkpoint record.
type Key struct {
	Kind Kind
	ID   string
}

// SpeciesKey returns the key for a base species record.
func SpeciesKey(id int) Key { return Key{KindSpecies, strconv.Itoa(id)} }

// GenderKey returns the key for a female-sprite lookup.
func GenderKey(id int) Key { return Key{KindGender, strconv.Itoa(id)} }

// FormKey returns the key for a pokemon-form sub-resource lookup.
func FormKey(slug string) Key { return Key{KindForm, slug} }

// ChainKey returns the key for an evolution chain.
func ChainKey(id int) Key { return Key{KindChain, strconv.Itoa(id)} }

// AbilityKey returns the key for an ability translation.
func AbilityKey(name string) Key { return Key{KindAbility, name} }

// NumericID returns the key's identifier as an int, or 0 if it isn't numeric.
func (k Key) NumericID() int {
	n, _ := strconv.Atoi(k.ID)
	return n
}

// String encodes the key in the on-disk format. Species, chain and ability
// keys are bare identifiers (each stage owns its own store); gender and form
// keys carry a prefix because both share the form-sprites store.
func (k Key) String() string {
	switch k.Kind {
	case KindGender:
		return "gender:" + k.ID
	case KindForm:
		return "form:" + k.ID
	default:
		return k.ID
	}
}

// DecodeKey parses an encoded key. Bare identifiers are assigned the given
// kind, since only the owning stage knows what an unprefixed key means.
func DecodeKey(s string, bare Kind) Key {
	if id, ok := strings.CutPrefix(s, "gender:"); ok {
		return Key{KindGender, id}
	}
	if id, ok := strings.CutPrefix(s, "form:"); ok {
		return Key{KindForm, id}
	}
	return Key{bare, s}
}
