package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentReference(ctx context.Context, reference string) ([]*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByVendor(ctx context.Context, vendorID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByReference(ctx context.Context, reference string) (*payment.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockDeliveryTaskRepository struct{ mock.Mock }

func (m *MockDeliveryTaskRepository) Add(ctx context.Context, t *delivery.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockDeliveryTaskRepository) Update(ctx context.Context, t *delivery.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockDeliveryTaskRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Task), args.Error(1)
}

func (m *MockDeliveryTaskRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Task, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Task), args.Error(1)
}

func (m *MockDeliveryTaskRepository) GetAllPendingInZone(ctx context.Context, zone kernel.Zone) ([]*delivery.Task, error) {
	args := m.Called(ctx, zone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Task), args.Error(1)
}

func (m *MockDeliveryTaskRepository) Claim(ctx context.Context, taskID kernel.UUID, riderID kernel.UUID) (*delivery.Task, error) {
	args := m.Called(ctx, taskID, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Task), args.Error(1)
}

func (m *MockDeliveryTaskRepository) Remove(ctx context.Context, taskID kernel.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockDeliveryTaskRepository) CountDeliveredByRiderInWeek(ctx context.Context, riderID kernel.UUID, weekStart time.Time) (int, error) {
	args := m.Called(ctx, riderID, weekStart)
	return args.Int(0), args.Error(1)
}

func (m *MockDeliveryTaskRepository) GetRidersWithDeliveriesInWeek(ctx context.Context, weekStart time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockVendorPayoutRepository struct{ mock.Mock }

func (m *MockVendorPayoutRepository) Add(ctx context.Context, p *payout.VendorPayout) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockVendorPayoutRepository) Update(ctx context.Context, p *payout.VendorPayout) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockVendorPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.VendorPayout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.VendorPayout), args.Error(1)
}

func (m *MockVendorPayoutRepository) GetAllByVendor(ctx context.Context, vendorID kernel.UUID) ([]*payout.VendorPayout, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payout.VendorPayout), args.Error(1)
}

type MockRiderPayoutRepository struct{ mock.Mock }

func (m *MockRiderPayoutRepository) Upsert(ctx context.Context, p *payout.RiderPayout) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRiderPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.RiderPayout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.RiderPayout), args.Error(1)
}

func (m *MockRiderPayoutRepository) GetByRiderAndWeek(ctx context.Context, riderID kernel.UUID, weekStart time.Time) (*payout.RiderPayout, error) {
	args := m.Called(ctx, riderID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.RiderPayout), args.Error(1)
}

func (m *MockRiderPayoutRepository) GetAllByWeek(ctx context.Context, weekStart time.Time) ([]*payout.RiderPayout, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payout.RiderPayout), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, ns []*notification.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetAllUnreadByRecipient(ctx context.Context, recipientID kernel.UUID) ([]*notification.Notification, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockVendorDirectory struct{ mock.Mock }

func (m *MockVendorDirectory) GetZone(ctx context.Context, vendorID kernel.UUID) (kernel.Zone, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(kernel.Zone), args.Error(1)
}

type MockRiderDirectory struct{ mock.Mock }

func (m *MockRiderDirectory) GetZone(ctx context.Context, riderID kernel.UUID) (kernel.Zone, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(kernel.Zone), args.Error(1)
}

func (m *MockRiderDirectory) GetAllInZone(ctx context.Context, zone kernel.Zone) ([]kernel.UUID, error) {
	args := m.Called(ctx, zone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

// MockUoW satisfies every command unit of work interface, so one mock type
// serves all handler tests.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) DeliveryTaskRepository() ports.DeliveryTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryTaskRepository)
}

func (m *MockUoW) VendorPayoutRepository() ports.VendorPayoutRepository {
	args := m.Called()
	return args.Get(0).(ports.VendorPayoutRepository)
}

func (m *MockUoW) RiderPayoutRepository() ports.RiderPayoutRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderPayoutRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) VendorDirectory() ports.VendorDirectory {
	args := m.Called()
	return args.Get(0).(ports.VendorDirectory)
}

func (m *MockUoW) RiderDirectory() ports.RiderDirectory {
	args := m.Called()
	return args.Get(0).(ports.RiderDirectory)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockVerifyPaymentUoWFactory struct{ mock.Mock }

func (m *MockVerifyPaymentUoWFactory) Create() commands.VerifyPaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.VerifyPaymentUoW)
}

type MockOrderStatusUoWFactory struct{ mock.Mock }

func (m *MockOrderStatusUoWFactory) Create() commands.OrderStatusUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderStatusUoW)
}

type MockCancelOrderUoWFactory struct{ mock.Mock }

func (m *MockCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CancelOrderUoW)
}

type MockCreateTaskUoWFactory struct{ mock.Mock }

func (m *MockCreateTaskUoWFactory) Create() commands.CreateTaskUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateTaskUoW)
}

type MockClaimTaskUoWFactory struct{ mock.Mock }

func (m *MockClaimTaskUoWFactory) Create() commands.ClaimTaskUoW {
	args := m.Called()
	return args.Get(0).(commands.ClaimTaskUoW)
}

type MockTaskStatusUoWFactory struct{ mock.Mock }

func (m *MockTaskStatusUoWFactory) Create() commands.TaskStatusUoW {
	args := m.Called()
	return args.Get(0).(commands.TaskStatusUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockRiderPayoutUoWFactory struct{ mock.Mock }

func (m *MockRiderPayoutUoWFactory) Create() commands.RiderPayoutUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderPayoutUoW)
}
