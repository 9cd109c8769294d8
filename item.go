package filepool

import (
	"reflect"
	"time"
)

// Item is one cached key's value plus expiry metadata. Items are created by
// a pool (GetItem, or decoding a snapshot) and report mutations back to it
// through a touch callback, so there is no back-pointer from item to pool.
//
// Expiry has second precision, matching what the snapshot persists. An
// expiry may be implicit: applied from the pool's DefaultExpiry when the
// item was materialized without its own expiry metadata. Implicit expiry
// participates in expiration checks but is never persisted, keeping
// snapshots byte-stable across loads.
type Item[V any] struct {
	key      string
	value    V
	assigned bool
	expiry   time.Time // zero => never expires
	explicit bool      // expiry was set by the caller or loaded from disk
	hit      bool
	now      func() time.Time
	touch    func()
}

// Key returns the normalized key.
func (it *Item[V]) Key() string { return it.key }

// Value returns the current value; the zero V when the item was never set
// or was invalidated at read time.
func (it *Item[V]) Value() V { return it.value }

// IsHit reports whether the item existed in the loaded snapshot, unexpired,
// at access time.
func (it *Item[V]) IsHit() bool { return it.hit }

// IsSet reports whether the item carries an assigned value.
func (it *Item[V]) IsSet() bool { return it.assigned }

// Set replaces the value. The owning pool is flagged as changed only when
// the new value differs from the prior one.
func (it *Item[V]) Set(v V) *Item[V] {
	changed := !it.assigned || !reflect.DeepEqual(it.value, v)
	it.value = v
	it.assigned = true
	if changed {
		it.touch()
	}
	return it
}

// Expired reports whether an expiry is set and lies strictly in the past.
func (it *Item[V]) Expired() bool {
	return !it.expiry.IsZero() && it.expiry.Before(it.now())
}

// ExpiresAt sets an absolute expiry, truncated to seconds. The zero time
// clears expiry: the item never expires, and the pool's DefaultExpiry no
// longer applies until the entry is reloaded from disk. Always flags the
// pool as changed; an expiry change is persisted state even when the value
// is not touched.
func (it *Item[V]) ExpiresAt(t time.Time) *Item[V] {
	if t.IsZero() {
		it.expiry = time.Time{}
		it.explicit = false
	} else {
		it.expiry = t.Truncate(time.Second)
		it.explicit = true
	}
	it.touch()
	return it
}

// ExpiresAfter sets expiry relative to now. d <= 0 clears expiry.
func (it *Item[V]) ExpiresAfter(d time.Duration) *Item[V] {
	if d <= 0 {
		return it.ExpiresAt(time.Time{})
	}
	return it.ExpiresAt(it.now().Add(d))
}

// ExpiresAfterDate sets a calendar-relative expiry (for example two months
// from now), resolved against the current instant. All-zero arguments
// clear expiry.
func (it *Item[V]) ExpiresAfterDate(years, months, days int) *Item[V] {
	if years == 0 && months == 0 && days == 0 {
		return it.ExpiresAt(time.Time{})
	}
	return it.ExpiresAt(it.now().AddDate(years, months, days))
}

// Expiry returns the effective expiry instant and whether one is set.
func (it *Item[V]) Expiry() (time.Time, bool) {
	return it.expiry, !it.expiry.IsZero()
}
