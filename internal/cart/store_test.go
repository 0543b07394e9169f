package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarika/storefront-service/internal/model"
)

func line(productID, variantID string, price int64, qty int) model.CartLine {
	return model.CartLine{
		ProductID: productID,
		VariantID: variantID,
		Name:      "Test Product",
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func TestStoreAddMergesSameLine(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add("sess", line("p1", "M / Red", 500, 1)))
	require.NoError(t, s.Add("sess", line("p1", "M / Red", 450, 2)))

	lines := s.Lines("sess")
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	// The first add's price snapshot wins on merge.
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(500)))
}

func TestStoreAddSeparateLinesPerVariant(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add("sess", line("p1", "M / Red", 500, 1)))
	require.NoError(t, s.Add("sess", line("p1", "L / Red", 550, 1)))
	require.NoError(t, s.Add("sess", line("p2", "", 150, 1)))

	lines := s.Lines("sess")
	require.Len(t, lines, 3)
	assert.Equal(t, "M / Red", lines[0].VariantID)
	assert.Equal(t, "L / Red", lines[1].VariantID)
	assert.Equal(t, "p2", lines[2].ProductID)
}

func TestStoreAddRejectsNonPositiveQuantity(t *testing.T) {
	s := NewStore()

	assert.ErrorIs(t, s.Add("sess", line("p1", "", 500, 0)), ErrInvalidQuantity)
	assert.ErrorIs(t, s.Add("sess", line("p1", "", 500, -2)), ErrInvalidQuantity)
	assert.Empty(t, s.Lines("sess"))
}

func TestStoreAddWithLimit(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.AddWithLimit("sess", line("p1", "M / Red", 500, 2), 3))
	assert.ErrorIs(t, s.AddWithLimit("sess", line("p1", "M / Red", 450, 2), 3), ErrInsufficientStock)

	lines := s.Lines("sess")
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity, "a rejected add leaves the line untouched")

	require.NoError(t, s.AddWithLimit("sess", line("p1", "M / Red", 450, 1), 3))
	assert.Equal(t, 3, s.Lines("sess")[0].Quantity)
}

func TestStoreAddWithLimitNewLine(t *testing.T) {
	s := NewStore()

	assert.ErrorIs(t, s.AddWithLimit("sess", line("p1", "M / Red", 500, 5), 3), ErrInsufficientStock)
	assert.Empty(t, s.Lines("sess"))

	require.NoError(t, s.AddWithLimit("sess", line("p1", "M / Red", 500, 9), -1))
	assert.Equal(t, 9, s.Lines("sess")[0].Quantity)
}

func TestStoreAddWithLimitConcurrent(t *testing.T) {
	s := NewStore()
	const limit = 5

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.AddWithLimit("sess", line("p1", "M / Red", 500, 1), limit)
		}()
	}
	wg.Wait()
	close(errs)

	rejected := 0
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrInsufficientStock)
			rejected++
		}
	}
	assert.Equal(t, 5, rejected)

	lines := s.Lines("sess")
	require.Len(t, lines, 1)
	assert.Equal(t, limit, lines[0].Quantity, "racing adds never pile past the limit")
}

func TestStoreUpdateQuantityFloorsAtOne(t *testing.T) {
	s := NewStore()
	l := line("p1", "M / Red", 500, 3)
	require.NoError(t, s.Add("sess", l))

	require.NoError(t, s.UpdateQuantity("sess", l.Key(), 0))

	lines := s.Lines("sess")
	require.Len(t, lines, 1, "flooring never removes the line")
	assert.Equal(t, 1, lines[0].Quantity)

	require.NoError(t, s.UpdateQuantity("sess", l.Key(), 5))
	assert.Equal(t, 5, s.Lines("sess")[0].Quantity)
}

func TestStoreUpdateQuantityUnknownLine(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.UpdateQuantity("sess", "p1|M / Red", 2), ErrLineNotFound)
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	l1 := line("p1", "M / Red", 500, 1)
	l2 := line("p2", "", 150, 1)
	require.NoError(t, s.Add("sess", l1))
	require.NoError(t, s.Add("sess", l2))

	require.NoError(t, s.Remove("sess", l1.Key()))

	lines := s.Lines("sess")
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	assert.ErrorIs(t, s.Remove("sess", l1.Key()), ErrLineNotFound)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("sess", line("p1", "", 500, 1)))
	require.NoError(t, s.Add("other", line("p2", "", 150, 1)))

	s.Clear("sess")

	assert.Empty(t, s.Lines("sess"))
	assert.Len(t, s.Lines("other"), 1, "clearing one session leaves others alone")
}

func TestStoreSessionsIsolated(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add("a", line("p1", "", 500, 1)))

	assert.Empty(t, s.Lines("b"))
	assert.ErrorIs(t, s.UpdateQuantity("b", "p1|", 2), ErrLineNotFound)
}
