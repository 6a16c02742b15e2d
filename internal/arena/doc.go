// Package arena provides a generational slot arena used as the backing store
// for tabshell's registries.
//
// An [Arena] hands out a [Key] for every value it stores. A key is a slot
// index paired with the generation the slot had when the value was inserted.
// Removing a value bumps the slot's generation, so a key obtained before the
// removal can never resolve to a value inserted into the same slot later.
//
// # Main Types
//
//   - [Key]: Small, comparable, totally ordered identifier
//   - [Arena]: Slot vector with a free list and per-slot generations
//   - [KeySpace]: The allocation state of an arena without its values
//
// # Basic Usage
//
//	a := arena.New[string]()
//	k := a.Insert("hello")
//	v, ok := a.Get(k) // "hello", true
//	a.Remove(k)
//	_, ok = a.Get(k) // false, even after the slot is reused
//
// Registries wrap an arena with their own key type so that keys from
// different arenas cannot be mixed up at compile time.
//
// # Thread Safety
//
// An Arena is not safe for concurrent use. Callers that share an arena
// across goroutines must guard it themselves.
package arena
