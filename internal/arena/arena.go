package arena

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"
)

// maxGeneration is the last generation a slot can carry. A slot that reaches
// it is retired instead of being put back on the free list.
const maxGeneration = math.MaxUint32

type slot[V any] struct {
	generation uint32
	occupied   bool
	value      V
}

// Arena stores values under generation-checked keys.
type Arena[V any] struct {
	slots []slot[V]
	free  []uint32
	len   int
}

// New creates an empty Arena.
func New[V any]() *Arena[V] {
	return &Arena[V]{}
}

// Insert stores v and returns its key.
func (a *Arena[V]) Insert(v V) Key {
	return a.InsertWithKey(func(Key) V { return v })
}

// InsertWithKey allocates a key, passes it to factory, and stores the value
// the factory returns under that key. The factory must not use the arena.
// If the factory panics the arena is left unchanged.
func (a *Arena[V]) InsertWithKey(factory func(Key) V) Key {
	var key Key
	reuse := len(a.free) > 0
	if reuse {
		idx := a.free[len(a.free)-1]
		key = Key{index: idx, generation: a.slots[idx].generation}
	} else {
		key = Key{index: uint32(len(a.slots)), generation: 1}
	}

	value := factory(key)

	if reuse {
		a.free = a.free[:len(a.free)-1]
	} else {
		a.slots = append(a.slots, slot[V]{generation: key.generation})
	}
	s := &a.slots[key.index]
	s.occupied = true
	s.value = value
	a.len++
	return key
}

// Get returns the value stored under k. It reports false for unknown keys
// and for keys whose value has been removed.
func (a *Arena[V]) Get(k Key) (V, bool) {
	s, ok := a.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Contains reports whether k resolves to a live value.
func (a *Arena[V]) Contains(k Key) bool {
	_, ok := a.lookup(k)
	return ok
}

// Set replaces the value stored under k. It reports false, and stores
// nothing, when k does not resolve.
func (a *Arena[V]) Set(k Key, v V) bool {
	s, ok := a.lookup(k)
	if !ok {
		return false
	}
	s.value = v
	return true
}

// Remove deletes the value stored under k and returns it.
func (a *Arena[V]) Remove(k Key) (V, bool) {
	s, ok := a.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	value := s.value
	a.vacate(k.index)
	return value, true
}

// Len returns the number of live values.
func (a *Arena[V]) Len() int {
	return a.len
}

// Keys returns the keys of all live values in slot order.
func (a *Arena[V]) Keys() []Key {
	keys := make([]Key, 0, a.len)
	for k := range a.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over live values in slot order.
func (a *Arena[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Key{index: uint32(i), generation: s.generation}, s.value) {
				return
			}
		}
	}
}

// Retain removes every value for which keep returns false and returns the
// keys that were removed.
func (a *Arena[V]) Retain(keep func(Key, V) bool) []Key {
	var removed []Key
	for i := range a.slots {
		s := &a.slots[i]
		if !s.occupied {
			continue
		}
		k := Key{index: uint32(i), generation: s.generation}
		if !keep(k, s.value) {
			removed = append(removed, k)
			a.vacate(uint32(i))
		}
	}
	return removed
}

// Vacate removes every value. All previously issued keys become stale.
func (a *Arena[V]) Vacate() {
	for i := range a.slots {
		if a.slots[i].occupied {
			a.vacate(uint32(i))
		}
	}
}

func (a *Arena[V]) lookup(k Key) (*slot[V], bool) {
	if k.generation == 0 || int(k.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[k.index]
	if !s.occupied || s.generation != k.generation {
		return nil, false
	}
	return s, true
}

func (a *Arena[V]) vacate(idx uint32) {
	s := &a.slots[idx]
	var zero V
	s.value = zero
	s.occupied = false
	a.len--
	if s.generation == maxGeneration {
		return
	}
	s.generation++
	a.free = append(a.free, idx)
}

// KeySpace is the allocation state of an arena without its values: the
// generation each slot would carry once vacated, and the reusable slots.
type KeySpace struct {
	Generations []uint32 `json:"generations"`
	Free        []uint32 `json:"free"`
}

// KeySpace returns the arena's allocation state as if every value had been
// removed. An arena restored from it never reissues a key that was live
// when the KeySpace was taken.
func (a *Arena[V]) KeySpace() KeySpace {
	ks := KeySpace{
		Generations: make([]uint32, len(a.slots)),
		Free:        make([]uint32, 0, len(a.slots)),
	}
	for i := range a.slots {
		gen := a.slots[i].generation
		if a.slots[i].occupied && gen != maxGeneration {
			gen++
		}
		ks.Generations[i] = gen
	}
	// Descending so the lowest index is reused first.
	for i := len(a.slots) - 1; i >= 0; i-- {
		if ks.Generations[i] != maxGeneration {
			ks.Free = append(ks.Free, uint32(i))
		}
	}
	return ks
}

// FromKeySpace creates an empty arena with the given allocation state.
func FromKeySpace[V any](ks KeySpace) (*Arena[V], error) {
	a := &Arena[V]{
		slots: make([]slot[V], len(ks.Generations)),
		free:  make([]uint32, 0, len(ks.Free)),
	}
	for i, gen := range ks.Generations {
		if gen == 0 {
			return nil, fmt.Errorf("arena: slot %d has generation 0", i)
		}
		a.slots[i].generation = gen
	}
	for _, idx := range ks.Free {
		if int(idx) >= len(a.slots) {
			return nil, fmt.Errorf("arena: free slot %d out of range", idx)
		}
		a.free = append(a.free, idx)
	}
	return a, nil
}

type slotJSON[V any] struct {
	Generation uint32 `json:"generation"`
	Occupied   bool   `json:"occupied,omitempty"`
	Value      *V     `json:"value,omitempty"`
}

type arenaJSON[V any] struct {
	Slots []slotJSON[V] `json:"slots"`
	Free  []uint32      `json:"free"`
}

// MarshalJSON persists slots, generations, values and the free list so that
// keys issued before a save still resolve after a load.
func (a *Arena[V]) MarshalJSON() ([]byte, error) {
	out := arenaJSON[V]{
		Slots: make([]slotJSON[V], len(a.slots)),
		Free:  a.free,
	}
	if out.Free == nil {
		out.Free = []uint32{}
	}
	for i := range a.slots {
		s := &a.slots[i]
		out.Slots[i] = slotJSON[V]{Generation: s.generation, Occupied: s.occupied}
		if s.occupied {
			v := s.value
			out.Slots[i].Value = &v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores an arena written by MarshalJSON.
func (a *Arena[V]) UnmarshalJSON(data []byte) error {
	var in arenaJSON[V]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	restored := Arena[V]{
		slots: make([]slot[V], len(in.Slots)),
		free:  make([]uint32, 0, len(in.Free)),
	}
	for i, s := range in.Slots {
		if s.Generation == 0 {
			return fmt.Errorf("arena: slot %d has generation 0", i)
		}
		restored.slots[i].generation = s.Generation
		if s.Occupied {
			if s.Value == nil {
				return fmt.Errorf("arena: occupied slot %d has no value", i)
			}
			restored.slots[i].occupied = true
			restored.slots[i].value = *s.Value
			restored.len++
		}
	}
	for _, idx := range in.Free {
		if int(idx) >= len(restored.slots) || restored.slots[idx].occupied {
			return fmt.Errorf("arena: invalid free slot %d", idx)
		}
		restored.free = append(restored.free, idx)
	}
	*a = restored
	return nil
}
