package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
)

func cartLine(t *testing.T, vendorID kernel.UUID, unitPrice int64, quantity int) CartLine {
	t.Helper()
	price, err := kernel.NewMoney(unitPrice)
	require.NoError(t, err)
	return CartLine{
		VendorID:  vendorID,
		ProductID: kernel.NewUUID(),
		Quantity:  quantity,
		UnitPrice: price,
	}
}

func money(t *testing.T, units int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(units)
	require.NoError(t, err)
	return m
}

func TestLandmarkCalculatorQuote(t *testing.T) {
	calc := NewLandmarkCalculator(nil)

	t.Run("two vendors at unilag", func(t *testing.T) {
		vendorA := kernel.NewUUID()
		vendorB := kernel.NewUUID()
		lines := []CartLine{
			cartLine(t, vendorA, 1500, 2), // 3000
			cartLine(t, vendorB, 1000, 2), // 2000
		}

		quote, err := calc.Quote("unilag", lines)
		require.NoError(t, err)

		// base 1000 x 2 vendors - 500 discount
		assert.True(t, quote.Subtotal.IsEqual(money(t, 5000)), "subtotal %s", quote.Subtotal)
		assert.True(t, quote.DeliveryFee.IsEqual(money(t, 1500)), "fee %s", quote.DeliveryFee)
		assert.True(t, quote.VATAmount.IsEqual(money(t, 375)), "vat %s", quote.VATAmount)
		assert.True(t, quote.CommissionAmount.IsEqual(money(t, 500)), "commission %s", quote.CommissionAmount)
		assert.True(t, quote.Total.IsEqual(money(t, 6875)), "total %s", quote.Total)
	})

	t.Run("single vendor has no discount", func(t *testing.T) {
		lines := []CartLine{cartLine(t, kernel.NewUUID(), 2000, 1)}

		quote, err := calc.Quote("UNILAG", lines)
		require.NoError(t, err)
		assert.True(t, quote.DeliveryFee.IsEqual(money(t, 1000)))
	})

	t.Run("three or more vendors discount 800", func(t *testing.T) {
		lines := []CartLine{
			cartLine(t, kernel.NewUUID(), 1000, 1),
			cartLine(t, kernel.NewUUID(), 1000, 1),
			cartLine(t, kernel.NewUUID(), 1000, 1),
			cartLine(t, kernel.NewUUID(), 1000, 1),
		}

		quote, err := calc.Quote("unilag", lines)
		require.NoError(t, err)
		// 1000 x 4 - 800
		assert.True(t, quote.DeliveryFee.IsEqual(money(t, 3200)))
	})

	t.Run("fee floors at zero", func(t *testing.T) {
		cheap := NewLandmarkCalculator([]Landmark{landmark("corner shop", "yaba", 200)})
		lines := []CartLine{
			cartLine(t, kernel.NewUUID(), 1000, 1),
			cartLine(t, kernel.NewUUID(), 1000, 1),
		}

		quote, err := cheap.Quote("corner shop", lines)
		require.NoError(t, err)
		// 200 x 2 = 400, discount 500
		assert.True(t, quote.DeliveryFee.IsZero())
	})

	t.Run("vat excludes delivery fee", func(t *testing.T) {
		lines := []CartLine{cartLine(t, kernel.NewUUID(), 10000, 1)}

		quote, err := calc.Quote("lekki phase 1", lines)
		require.NoError(t, err)
		assert.True(t, quote.VATAmount.IsEqual(money(t, 750)))
	})

	t.Run("unknown landmark", func(t *testing.T) {
		lines := []CartLine{cartLine(t, kernel.NewUUID(), 1000, 1)}

		_, err := calc.Quote("nowhere", lines)
		assert.ErrorIs(t, err, ErrInvalidDeliveryZone)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := calc.Quote("unilag", nil)
		assert.ErrorIs(t, err, ErrEmptyCart)

		_, err = calc.Quote("unilag", []CartLine{cartLine(t, kernel.NewUUID(), 1000, 0)})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestStateCalculatorQuote(t *testing.T) {
	calc := NewStateCalculator(nil)

	t.Run("flat fee regardless of vendor count", func(t *testing.T) {
		lines := []CartLine{
			cartLine(t, kernel.NewUUID(), 1500, 2),
			cartLine(t, kernel.NewUUID(), 1000, 2),
		}

		quote, err := calc.Quote("Lagos", lines)
		require.NoError(t, err)

		assert.True(t, quote.Subtotal.IsEqual(money(t, 5000)))
		assert.True(t, quote.DeliveryFee.IsEqual(money(t, 1500)))
		// vat on subtotal + fee: 7.5% of 6500
		assert.Equal(t, "487.5", quote.VATAmount.String())
		assert.True(t, quote.CommissionAmount.IsEqual(money(t, 500)))
		assert.True(t, quote.Total.IsEqual(quote.Subtotal.Add(quote.DeliveryFee).Add(quote.VATAmount)))
	})

	t.Run("unknown state", func(t *testing.T) {
		lines := []CartLine{cartLine(t, kernel.NewUUID(), 1000, 1)}

		_, err := calc.Quote("kogi", lines)
		assert.ErrorIs(t, err, ErrInvalidDeliveryZone)
	})
}

func TestZoneFor(t *testing.T) {
	t.Run("landmark resolves to its zone", func(t *testing.T) {
		calc := NewLandmarkCalculator(nil)

		zone, err := calc.ZoneFor("Computer Village")
		require.NoError(t, err)
		assert.Equal(t, "ikeja", zone.Name())

		_, err = calc.ZoneFor("nowhere")
		assert.ErrorIs(t, err, ErrInvalidDeliveryZone)
	})

	t.Run("state resolves to its zone", func(t *testing.T) {
		calc := NewStateCalculator(nil)

		zone, err := calc.ZoneFor("lagos")
		require.NoError(t, err)
		assert.Equal(t, "lagos", zone.Name())
	})
}
