package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	catalogrepo "github.com/light-bringer/storefront-service/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

const (
	fridgeID  = "prd-0001" // 3299.00, stock 12
	microID   = "prd-0007" // 399.90, stock 6
	soldOutID = "prd-0003"
	chargerID = "prd-0024" // 249.90, stock 44
)

func newTestService(t *testing.T, kv contracts.KVStore, opts ...Option) *Service {
	t.Helper()
	seed, err := catalogrepo.LoadSeed()
	require.NoError(t, err)
	catalogRM := catalogrepo.NewStaticCatalog(seed)
	engine, err := pricing.NewEngine(pricing.DefaultConfig(), nil)
	require.NoError(t, err)

	svc, err := NewService(kv, catalogRM, catalogRM, engine, zap.NewNop(), opts...)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

// queuedKV is a KVStore whose notifications are held until flush is called,
// the way a pub/sub channel delivers them some time after the write.
type queuedKV struct {
	mu      sync.Mutex
	values  map[string][]byte
	subs    map[string]map[int]func([]byte)
	nextID  int
	hold    bool
	pending []notification
	setErr  error
}

type notification struct {
	key   string
	value []byte
}

func newQueuedKV(hold bool) *queuedKV {
	return &queuedKV{
		values: make(map[string][]byte),
		subs:   make(map[string]map[int]func([]byte)),
		hold:   hold,
	}
}

func (k *queuedKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.values[key]
	return v, ok, nil
}

func (k *queuedKV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	if k.setErr != nil {
		k.mu.Unlock()
		return k.setErr
	}
	k.values[key] = value
	k.pending = append(k.pending, notification{key: key, value: value})
	hold := k.hold
	k.mu.Unlock()

	if !hold {
		k.flush()
	}
	return nil
}

func (k *queuedKV) Subscribe(_ context.Context, key string, fn func([]byte)) (func(), error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	id := k.nextID
	k.nextID++
	if k.subs[key] == nil {
		k.subs[key] = make(map[int]func([]byte))
	}
	k.subs[key][id] = fn
	return func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		delete(k.subs[key], id)
	}, nil
}

// flush delivers every held notification in write order.
func (k *queuedKV) flush() {
	for {
		k.mu.Lock()
		if len(k.pending) == 0 {
			k.mu.Unlock()
			return
		}
		n := k.pending[0]
		k.pending = k.pending[1:]
		fns := make([]func([]byte), 0, len(k.subs[n.key]))
		for _, fn := range k.subs[n.key] {
			fns = append(fns, fn)
		}
		k.mu.Unlock()

		for _, fn := range fns {
			fn(n.value)
		}
	}
}

func (k *queuedKV) failWrites(err error) {
	k.mu.Lock()
	k.setErr = err
	k.mu.Unlock()
}

func (k *queuedKV) subscriptions() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for _, m := range k.subs {
		n += len(m)
	}
	return n
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, repo.NewMemoryStore())

	t.Run("adds and merges", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "c1", microID, 2)
		require.NoError(t, err)
		cart, err := svc.AddItem(ctx, "c1", microID, 3)
		require.NoError(t, err)

		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 5, cart.Lines[0].Quantity)
		assert.NotEmpty(t, cart.Lines[0].ID)
	})

	t.Run("clamps to stock", func(t *testing.T) {
		cart, err := svc.AddItem(ctx, "c1", microID, 100)
		require.NoError(t, err)
		assert.Equal(t, 6, cart.Lines[0].Quantity)

		cart, err = svc.AddItem(ctx, "c1", microID, math.MaxInt)
		require.NoError(t, err)
		assert.Equal(t, 6, cart.Lines[0].Quantity)
	})

	t.Run("out of stock", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "c1", soldOutID, 1)
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "c1", "missing", 1)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("blank cart id", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "  ", microID, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidCartID)
	})
}

func TestService_Quantities(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, repo.NewMemoryStore())

	_, err := svc.AddItem(ctx, "c1", chargerID, 1)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, "c1", chargerID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount())

	cart, err = svc.SetQuantity(ctx, "c1", chargerID, 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = svc.SetQuantity(ctx, "c1", chargerID, 1)
	assert.ErrorIs(t, err, domain.ErrLineNotFound)

	_, err = svc.RemoveItem(ctx, "c1", chargerID)
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestService_Services(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, repo.NewMemoryStore())

	_, err := svc.AddItem(ctx, "c1", fridgeID, 1)
	require.NoError(t, err)

	t.Run("attach", func(t *testing.T) {
		cart, err := svc.AttachService(ctx, "c1", fridgeID, "inst-001")
		require.NoError(t, err)
		require.Len(t, cart.Lines[0].Services, 1)
		assert.Equal(t, "3598.00", cart.Subtotal().String())
	})

	t.Run("attach twice replaces", func(t *testing.T) {
		cart, err := svc.AttachService(ctx, "c1", fridgeID, "inst-001")
		require.NoError(t, err)
		assert.Len(t, cart.Lines[0].Services, 1)
	})

	t.Run("not offered for category", func(t *testing.T) {
		_, err := svc.AttachService(ctx, "c1", fridgeID, "prot-001")
		assert.ErrorIs(t, err, catalog.ErrServiceNotOffered)
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := svc.AttachService(ctx, "c1", fridgeID, "nope")
		assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
	})

	t.Run("detach", func(t *testing.T) {
		cart, err := svc.DetachService(ctx, "c1", fridgeID, "inst-001")
		require.NoError(t, err)
		assert.Empty(t, cart.Lines[0].Services)
	})
}

func TestService_Summarize(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, repo.NewMemoryStore())

	_, err := svc.AddItem(ctx, "c1", chargerID, 1)
	require.NoError(t, err)

	sum, err := svc.Summarize(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, sum.ItemCount)
	assert.Equal(t, "249.90", sum.Subtotal.String())
	assert.False(t, sum.Shipping.Free)
	assert.Equal(t, "49.10", sum.Shipping.Remaining.String())
	assert.Equal(t, "269.80", sum.Quote.FinalTotal.String())
	assert.Equal(t, "242.82", sum.Quote.CashDiscountTotal.String())
	assert.Equal(t, 5, sum.Quote.InstallmentCount)
}

func TestService_PersistsAndHydrates(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()

	first := newTestService(t, kv)
	_, err := first.AddItem(ctx, "c1", chargerID, 2)
	require.NoError(t, err)

	raw, found, err := kv.Get(ctx, "c1")
	require.NoError(t, err)
	require.True(t, found)
	var stored domain.Cart
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, 2, stored.ItemCount())

	second := newTestService(t, kv)
	cart, err := second.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, "499.80", cart.Subtotal().String())
}

func TestService_LastWriteWinsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()

	tabA := newTestService(t, kv)
	tabB := newTestService(t, kv)

	_, err := tabA.Get(ctx, "c1")
	require.NoError(t, err)
	_, err = tabB.Get(ctx, "c1")
	require.NoError(t, err)

	var seen []int
	unsubscribe, err := tabA.Subscribe(ctx, "c1", func(c domain.Cart) {
		seen = append(seen, c.ItemCount())
	})
	require.NoError(t, err)
	defer unsubscribe()

	_, err = tabB.AddItem(ctx, "c1", chargerID, 3)
	require.NoError(t, err)

	cart, err := tabA.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount())
	assert.Equal(t, []int{3}, seen)

	// local writes do not echo back to their own listeners twice
	_, err = tabA.Clear(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0}, seen)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()
	svc := newTestService(t, kv)

	cart, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.True(t, cart.IsEmpty())

	_, found, err := kv.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestService_LateEchoesDoNotRollBack(t *testing.T) {
	ctx := context.Background()
	kv := newQueuedKV(true)
	svc := newTestService(t, kv)

	_, err := svc.AddItem(ctx, "c1", fridgeID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "c1", microID, 1)
	require.NoError(t, err)

	kv.flush()

	cart, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)

	// the next write builds on both lines
	cart, err = svc.AddItem(ctx, "c1", chargerID, 1)
	require.NoError(t, err)
	kv.flush()
	assert.Len(t, cart.Lines, 3)

	other := newTestService(t, kv)
	stored, err := other.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, stored.Lines, 3)
}

func TestService_NewerWritesFromOtherInstances(t *testing.T) {
	ctx := context.Background()
	kv := newQueuedKV(true)
	tabA := newTestService(t, kv)
	tabB := newTestService(t, kv)

	_, err := tabA.AddItem(ctx, "c1", fridgeID, 1)
	require.NoError(t, err)
	kv.flush()

	_, err = tabB.AddItem(ctx, "c1", microID, 1)
	require.NoError(t, err)
	kv.flush()

	cart, err := tabA.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)
}

func TestService_FailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := newQueuedKV(false)
	svc := newTestService(t, kv)

	_, err := svc.AddItem(ctx, "c1", chargerID, 2)
	require.NoError(t, err)
	before, _, err := kv.Get(ctx, "c1")
	require.NoError(t, err)

	kv.failWrites(errors.New("connection refused"))

	_, err = svc.SetQuantity(ctx, "c1", chargerID, 5)
	require.Error(t, err)
	_, err = svc.AddItem(ctx, "c1", microID, 1)
	require.Error(t, err)

	cart, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())
	assert.Len(t, cart.Lines, 1)

	after, _, err := kv.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	kv.failWrites(nil)
	cart, err = svc.SetQuantity(ctx, "c1", chargerID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.ItemCount())
}

func TestService_HostedCartsAreBounded(t *testing.T) {
	ctx := context.Background()
	kv := newQueuedKV(false)
	svc := newTestService(t, kv, WithMaxHosted(2))

	t.Run("reads host nothing", func(t *testing.T) {
		for i := range 500 {
			cart, err := svc.Get(ctx, fmt.Sprintf("unknown-%d", i))
			require.NoError(t, err)
			assert.True(t, cart.IsEmpty())
		}
		assert.Zero(t, svc.hostedCount())
		assert.Zero(t, kv.subscriptions())
	})

	t.Run("writes evict the least recently used cart", func(t *testing.T) {
		for _, id := range []string{"c1", "c2", "c3"} {
			_, err := svc.AddItem(ctx, id, chargerID, 1)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, svc.hostedCount())
		assert.Equal(t, 2, kv.subscriptions())

		// evicted carts are still served from the store
		cart, err := svc.Get(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, 1, cart.ItemCount())
	})

	t.Run("listeners keep an evicted cart subscribed", func(t *testing.T) {
		svc := newTestService(t, newQueuedKV(false), WithMaxHosted(2))
		kv := svc.kv.(*queuedKV)

		var seen []int
		unsubscribe, err := svc.Subscribe(ctx, "watched", func(c domain.Cart) {
			seen = append(seen, c.ItemCount())
		})
		require.NoError(t, err)

		for _, id := range []string{"c1", "c2"} {
			_, err := svc.AddItem(ctx, id, chargerID, 1)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, svc.hostedCount())
		assert.Equal(t, 3, kv.subscriptions())

		other := newTestService(t, kv)
		_, err = other.AddItem(ctx, "watched", chargerID, 4)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, seen)

		unsubscribe()
		assert.Equal(t, 3, kv.subscriptions()) // c1, c2 and the other instance's cart
	})

	t.Run("close releases everything", func(t *testing.T) {
		svc := newTestService(t, newQueuedKV(false))
		kv := svc.kv.(*queuedKV)
		_, err := svc.AddItem(ctx, "c1", chargerID, 1)
		require.NoError(t, err)

		svc.Close()
		assert.Zero(t, svc.hostedCount())
		assert.Zero(t, kv.subscriptions())
	})
}

func TestWithMaxHosted_RejectsNonPositive(t *testing.T) {
	_, err := NewService(repo.NewMemoryStore(), nil, nil, nil, zap.NewNop(), WithMaxHosted(0))
	assert.Error(t, err)
}
