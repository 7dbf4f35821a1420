package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decimalRate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testMoney(t *testing.T, units int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(units)
	require.NoError(t, err)
	return m
}

func testZone(t *testing.T, name string) kernel.Zone {
	t.Helper()
	z, err := kernel.NewZone(name)
	require.NoError(t, err)
	return z
}

func orderInStatus(t *testing.T, vendorID, userID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), vendorID, userID, kernel.NewUUID(),
		2, testMoney(t, 5000), testMoney(t, 375),
		status, "PAY-REF-1", testZone(t, "yaba"), order.TypeMenu,
	)
	require.NoError(t, err)
	return o
}

func serviceOrderInStatus(t *testing.T, vendorID, userID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), vendorID, userID, kernel.NewUUID(),
		1, testMoney(t, 12000), testMoney(t, 900),
		status, "PAY-REF-2", testZone(t, "yaba"), order.TypeService,
	)
	require.NoError(t, err)
	return o
}

func pendingTask(t *testing.T, orderID, vendorID kernel.UUID, zone kernel.Zone) *delivery.Task {
	t.Helper()
	task, err := delivery.NewTask(kernel.NewUUID(), orderID, vendorID, zone, time.Now().UTC())
	require.NoError(t, err)
	return task
}

func assignedTask(t *testing.T, orderID, vendorID, riderID kernel.UUID, zone kernel.Zone) *delivery.Task {
	t.Helper()
	task := pendingTask(t, orderID, vendorID, zone)
	require.NoError(t, task.Claim(riderID, time.Now().UTC()))
	return task
}

func pendingPayment(t *testing.T, userID kernel.UUID, reference string, intents []payment.OrderIntent) *payment.Payment {
	t.Helper()

	subtotal := kernel.ZeroMoney()
	for _, intent := range intents {
		subtotal = subtotal.Add(intent.LineTotal())
	}
	fee := testMoney(t, 1500)
	tax := subtotal.MulRate(decimalRate("0.075"))
	commission := subtotal.MulRate(decimalRate("0.10"))
	total := subtotal.Add(fee).Add(tax)

	p, err := payment.NewPayment(
		kernel.NewUUID(), userID, reference,
		subtotal, fee, tax, commission, total,
		intents,
		payment.DeliveryDetails{Address: "12 Herbert Macaulay Way", Zone: testZone(t, "yaba"), Phone: "08012345678"},
	)
	require.NoError(t, err)
	return p
}
