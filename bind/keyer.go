package bind

import (
	"strconv"
	"sync"
)

// Refkey identifies a declaration independently of its name or scope. The
// zero Refkey is never issued and means "no key".
type Refkey uint64

func (k Refkey) String() string { return "refkey#" + strconv.FormatUint(uint64(k), 10) }

// Keyer issues refkeys. The zero Keyer is ready to use and is safe for
// concurrent use.
type Keyer struct {
	mu       sync.Mutex
	last     Refkey
	interned map[keyerEntry]Refkey
}

type keyerEntry struct {
	value   any
	variant string
}

// New returns a refkey distinct from every other key issued by k.
func (k *Keyer) New() Refkey {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.next()
}

// For returns the refkey for the pair (value, variant), issuing one the first
// time the pair is seen. value must be comparable; For panics otherwise.
func (k *Keyer) For(value any, variant string) Refkey {
	k.mu.Lock()
	defer k.mu.Unlock()

	e := keyerEntry{value: value, variant: variant}
	if key, ok := k.interned[e]; ok {
		return key
	}

	if k.interned == nil {
		k.interned = make(map[keyerEntry]Refkey)
	}

	key := k.next()
	k.interned[e] = key

	return key
}

func (k *Keyer) next() Refkey {
	k.last++

	return k.last
}
