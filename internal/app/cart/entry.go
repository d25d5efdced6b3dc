package cart

import (
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/store"
)

// document is the stored form of a cart: the cart plus the stamp of the
// write that produced it.
type document struct {
	domain.Cart
	Revision int64  `json:"revision"`
	Writer   string `json:"writer,omitempty"`
}

func (d document) stamp() stamp {
	return stamp{Revision: d.Revision, Writer: d.Writer}
}

// stamp orders cart writes. Revisions grow by one per write; two writers
// that raced to the same revision are ordered by writer id, so every
// instance settles on the same cart.
type stamp struct {
	Revision int64
	Writer   string
}

func (a stamp) after(b stamp) bool {
	if a.Revision != b.Revision {
		return a.Revision > b.Revision
	}
	return a.Writer > b.Writer
}

// entry is one hosted cart.
type entry struct {
	// mu orders reduce+persist pairs so writes reach the KV store in transition order.
	mu    sync.Mutex
	store *store.Store[domain.Cart, domain.Action]

	// stampMu guards stamp and serializes every Replace on store.
	stampMu sync.Mutex
	stamp   stamp

	subMu       sync.Mutex
	listeners   int
	retired     bool
	unsubscribe func()
	release     sync.Once
}

func (e *entry) current() stamp {
	e.stampMu.Lock()
	defer e.stampMu.Unlock()
	return e.stamp
}

// advance replaces the state with cart when st is newer than the current
// stamp. Echoes of older writes, including this instance's own, are dropped.
func (e *entry) advance(st stamp, cart domain.Cart) bool {
	e.stampMu.Lock()
	defer e.stampMu.Unlock()

	if !st.after(e.stamp) {
		return false
	}
	e.stamp = st
	e.store.Replace(cart)
	return true
}

// listen registers fn on the store. An entry retired while listeners remain
// keeps its KV subscription until the last one leaves.
func (e *entry) listen(fn func(domain.Cart)) func() {
	unsubscribe := e.store.Subscribe(fn)

	e.subMu.Lock()
	e.listeners++
	e.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()

			e.subMu.Lock()
			e.listeners--
			done := e.retired && e.listeners == 0
			e.subMu.Unlock()

			if done {
				e.close()
			}
		})
	}
}

// retire marks the entry as no longer hosted. force releases the KV
// subscription even if listeners remain.
func (e *entry) retire(force bool) {
	e.subMu.Lock()
	e.retired = true
	done := force || e.listeners == 0
	e.subMu.Unlock()

	if done {
		e.close()
	}
}

func (e *entry) close() {
	e.release.Do(func() {
		if e.unsubscribe != nil {
			e.unsubscribe()
		}
	})
}
