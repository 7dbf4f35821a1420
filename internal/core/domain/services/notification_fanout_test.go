package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(5000)
	require.NoError(t, err)
	vat, err := kernel.NewMoney(375)
	require.NoError(t, err)
	zone, err := kernel.NewZone("yaba")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		2, price, vat, "PAY-REF-1", zone, order.TypeMenu,
	)
	require.NoError(t, err)
	return o
}

func newTestTask(t *testing.T, o *order.Order) *delivery.Task {
	t.Helper()

	zone, err := kernel.NewZone("yaba")
	require.NoError(t, err)
	task, err := delivery.NewTask(kernel.NewUUID(), o.ID(), o.VendorID(), zone, time.Now().UTC())
	require.NoError(t, err)
	return task
}

func TestFanOutOrderPaid(t *testing.T) {
	fanOut := NewNotificationFanOut()
	o := newTestOrder(t)

	ns, err := fanOut.OrderPaid(o)
	require.NoError(t, err)
	require.Len(t, ns, 1)

	n := ns[0]
	assert.True(t, n.RecipientID().IsEqual(o.VendorID()))
	assert.Equal(t, notification.AudienceVendor, n.Audience())
	assert.Equal(t, notification.KindOrderPaid, n.Kind())
	assert.Equal(t, "order_paid:"+o.ID().String(), n.EventKey())

	payload, ok := n.Payload().(notification.OrderPaidPayload)
	require.True(t, ok)
	assert.Equal(t, o.ID().String(), payload.OrderID)
	assert.Equal(t, "PAY-REF-1", payload.PaymentReference)
}

func TestFanOutSameTransitionProducesSameEventKey(t *testing.T) {
	fanOut := NewNotificationFanOut()
	o := newTestOrder(t)

	first, err := fanOut.OrderPaid(o)
	require.NoError(t, err)
	second, err := fanOut.OrderPaid(o)
	require.NoError(t, err)

	assert.Equal(t, first[0].EventKey(), second[0].EventKey())
	assert.True(t, first[0].RecipientID().IsEqual(second[0].RecipientID()))
}

func TestFanOutOrderTransitions(t *testing.T) {
	fanOut := NewNotificationFanOut()

	t.Run("accepted goes to customer", func(t *testing.T) {
		o := newTestOrder(t)
		ns, err := fanOut.OrderAccepted(o)
		require.NoError(t, err)
		require.Len(t, ns, 1)
		assert.True(t, ns[0].RecipientID().IsEqual(o.UserID()))
		assert.Equal(t, notification.AudienceCustomer, ns[0].Audience())
	})

	t.Run("rejected goes to customer", func(t *testing.T) {
		o := newTestOrder(t)
		ns, err := fanOut.OrderRejected(o)
		require.NoError(t, err)
		require.Len(t, ns, 1)
		assert.Equal(t, notification.KindOrderRejected, ns[0].Kind())
	})

	t.Run("completed goes to customer and vendor", func(t *testing.T) {
		o := newTestOrder(t)
		ns, err := fanOut.OrderCompleted(o)
		require.NoError(t, err)
		require.Len(t, ns, 2)
		assert.True(t, ns[0].RecipientID().IsEqual(o.UserID()))
		assert.True(t, ns[1].RecipientID().IsEqual(o.VendorID()))
		// same event, two recipients, one key
		assert.Equal(t, ns[0].EventKey(), ns[1].EventKey())
	})

	t.Run("cancelled goes to customer and vendor", func(t *testing.T) {
		o := newTestOrder(t)
		ns, err := fanOut.OrderCancelled(o)
		require.NoError(t, err)
		require.Len(t, ns, 2)
	})
}

func TestFanOutTaskCreated(t *testing.T) {
	fanOut := NewNotificationFanOut()
	o := newTestOrder(t)
	task := newTestTask(t, o)

	riders := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

	ns, err := fanOut.TaskCreated(task, riders)
	require.NoError(t, err)
	require.Len(t, ns, 3)

	for i, n := range ns {
		assert.True(t, n.RecipientID().IsEqual(riders[i]))
		assert.Equal(t, notification.AudienceRider, n.Audience())
		assert.Equal(t, "task_created:"+task.ID().String(), n.EventKey())
	}
}

func TestFanOutTaskCreatedNoRidersInZone(t *testing.T) {
	fanOut := NewNotificationFanOut()
	o := newTestOrder(t)
	task := newTestTask(t, o)

	ns, err := fanOut.TaskCreated(task, nil)
	require.NoError(t, err)
	assert.Empty(t, ns)
}

func TestFanOutTaskAssigned(t *testing.T) {
	fanOut := NewNotificationFanOut()
	o := newTestOrder(t)
	task := newTestTask(t, o)

	t.Run("unassigned task is rejected", func(t *testing.T) {
		_, err := fanOut.TaskAssigned(task, o)
		assert.ErrorIs(t, err, delivery.ErrRiderNotAssigned)
	})

	t.Run("assigned task notifies vendor and customer", func(t *testing.T) {
		riderID := kernel.NewUUID()
		require.NoError(t, task.Claim(riderID, task.CreatedAt()))

		ns, err := fanOut.TaskAssigned(task, o)
		require.NoError(t, err)
		require.Len(t, ns, 2)
		assert.True(t, ns[0].RecipientID().IsEqual(task.VendorID()))
		assert.True(t, ns[1].RecipientID().IsEqual(o.UserID()))

		payload, ok := ns[0].Payload().(notification.TaskAssignedPayload)
		require.True(t, ok)
		assert.Equal(t, riderID.String(), payload.RiderID)
	})
}

func TestFanOutTaskDelivered(t *testing.T) {
	fanOut := NewNotificationFanOut()
	o := newTestOrder(t)
	task := newTestTask(t, o)

	riderID := kernel.NewUUID()
	now := task.CreatedAt()
	require.NoError(t, task.Claim(riderID, now))
	require.NoError(t, task.MarkPickedUp(riderID, now))
	require.NoError(t, task.MarkDelivered(riderID, now))

	ns, err := fanOut.TaskDelivered(task, o)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, notification.KindTaskDelivered, ns[0].Kind())
	assert.Equal(t, notification.KindTaskDelivered, ns[1].Kind())
}
