package service

import (
	"sync"
	"testing"

	"github.com/kasuwa-shop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRandomIdentifierFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		value, err := randomIdentifier(10)
		require.NoError(t, err)
		require.True(t, IsValidIdentifier(value, 10), "unexpected identifier %q", value)
	}
	_, err := randomIdentifier(0)
	require.Error(t, err)

	assert.False(t, IsValidIdentifier("abcdefghij", 10))
	assert.False(t, IsValidIdentifier("ABC", 10))
	assert.False(t, IsValidIdentifier("ABCDE-1234", 10))
}

func TestOrderNumberAllocateConcurrent(t *testing.T) {
	f := setupServiceTest(t)

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := f.allocator.Allocate()
			if err != nil {
				t.Errorf("allocate failed: %v", err)
				return
			}
			mu.Lock()
			seen[number] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers)
	for number := range seen {
		assert.Regexp(t, orderNumberPattern, number)
	}
}

func TestOrderNumberAllocateSkipsTakenNumbers(t *testing.T) {
	f := setupServiceTest(t)
	sc := newOrderScenario(t, f)
	existing, err := f.orders.PlaceOrder(sc.input(1))
	require.NoError(t, err)

	gen, calls := sequenceGenerator(existing.OrderNumber, "FRESH00001")
	f.allocator.WithGenerator(gen)

	number, err := f.allocator.Allocate()
	require.NoError(t, err)
	assert.Equal(t, "FRESH00001", number)
	assert.Equal(t, 2, calls())
}

func TestPlaceOrderRetriesAfterUniqueViolation(t *testing.T) {
	f := setupServiceTest(t)
	sc := newOrderScenario(t, f)
	existing, err := f.orders.PlaceOrder(sc.input(1))
	require.NoError(t, err)

	// 预检查始终放行，冲突只能由唯一索引发现
	gen, calls := sequenceGenerator(existing.OrderNumber, "RETRY00002")
	f.allocator.WithGenerator(gen)
	f.allocator.allocator.exists = func(*gorm.DB, string) (bool, error) { return false, nil }

	order, err := f.orders.PlaceOrder(sc.input(2))
	require.NoError(t, err)
	assert.Equal(t, "RETRY00002", order.OrderNumber)
	assert.Equal(t, 2, calls())
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Equal(t, int64(2), f.countRows(t, &models.Order{}))
	assert.Equal(t, int64(2), f.countRows(t, &models.OrderItem{}))
}

func TestPlaceOrderExhaustionPersistsNothing(t *testing.T) {
	f := setupServiceTest(t)
	sc := newOrderScenario(t, f)
	existing, err := f.orders.PlaceOrder(sc.input(1))
	require.NoError(t, err)

	gen, calls := sequenceGenerator(existing.OrderNumber)
	f.allocator.WithGenerator(gen)

	_, err = f.orders.PlaceOrder(sc.input(1))
	require.ErrorIs(t, err, ErrOrderNumberExhausted)
	assert.Equal(t, 10, calls())
	assert.Equal(t, int64(1), f.countRows(t, &models.Order{}))
	assert.Equal(t, int64(1), f.countRows(t, &models.OrderItem{}))
}

func TestReserveExhaustsOnRepeatedUniqueViolations(t *testing.T) {
	f := setupServiceTest(t)
	sc := newOrderScenario(t, f)
	existing, err := f.orders.PlaceOrder(sc.input(1))
	require.NoError(t, err)

	gen, calls := sequenceGenerator(existing.OrderNumber)
	allocator := identifierAllocator{
		name:        "order_number",
		length:      10,
		maxAttempts: 3,
		generate:    gen,
		exists:      func(*gorm.DB, string) (bool, error) { return false, nil },
		exhausted:   ErrOrderNumberExhausted,
	}
	err = f.db.Transaction(func(tx *gorm.DB) error {
		_, err := allocator.reserve(tx, func(sp *gorm.DB, value string) error {
			return sp.Create(&models.Order{
				OrderNumber:       value,
				UserID:            sc.user.ID,
				ShippingAddressID: sc.address.ID,
				Status:            existing.Status,
				PaymentMethod:     existing.PaymentMethod,
			}).Error
		})
		return err
	})
	require.ErrorIs(t, err, ErrOrderNumberExhausted)
	assert.Equal(t, 3, calls())
	assert.Equal(t, int64(1), f.countRows(t, &models.Order{}))
}
