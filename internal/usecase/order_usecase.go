package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

// OrderUseCase оформляет заказы из корзины и отдаёт историю заказов.
type OrderUseCase struct {
	orderRepo  OrderRepository
	cartRepo   CartRepository
	outboxRepo OutboxRepository
	verifier   AddressVerifier
	txm        TxManager
	logger     logger.Logger
}

// NewOrderUC собирает оркестратор оформления заказа. outboxRepo может
// быть nil — тогда события о заказах не публикуются.
func NewOrderUC(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	outboxRepo OutboxRepository,
	verifier AddressVerifier,
	txm TxManager,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		outboxRepo: outboxRepo,
		verifier:   verifier,
		txm:        txm,
		logger:     logger,
	}
}

// Checkout атомарно превращает корзину пользователя в заказ: либо заказ
// создан и корзина очищена, либо ни то ни другое. Цены позиций
// фиксируются на момент оформления.
func (o *OrderUseCase) Checkout(ctx context.Context, req *CheckoutReq) (*OrderRes, error) {
	const op = "OrderUseCase.Checkout"

	var err error
	ctx, tx, err := o.txm.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	// FOR UPDATE по строкам корзины: два конкурентных оформления одного
	// пользователя выполнятся последовательно, второе увидит пустую корзину.
	lines, err := o.cartRepo.ListByUserForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(lines) == 0 {
		err = e.ErrCartEmpty
		return nil, e.Wrap(op, err)
	}

	if !hasShippingData(req.ShippingName, req.Phone, req.AddressLine1, req.City, req.State, req.Pincode) {
		err = e.ErrShippingRequired
		return nil, e.Wrap(op, err)
	}

	err = validateShippingFields(req.ShippingName, req.Phone, req.AddressLine1, req.City, req.State, req.Pincode)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = o.verifier.Verify(ctx, NewVerifyAddressReq(req))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	order := o.buildOrder(req, lines)

	created, err := o.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = o.enqueueOrderCreated(ctx, created)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = o.cartRepo.DeleteByUser(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("Order %d created for user %d, total %d", created.ID, req.UserID, created.Total)

	res := NewOrderRes(created)

	return &res, nil
}

// ListOrders возвращает заказы пользователя от новых к старым.
func (o *OrderUseCase) ListOrders(ctx context.Context, userID int64) ([]OrderRes, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := make([]OrderRes, 0, len(orders))
	for i := range orders {
		res = append(res, NewOrderRes(&orders[i]))
	}

	return res, nil
}

// buildOrder собирает заказ из строк корзины со снимком текущих цен
// и названий товаров.
func (o *OrderUseCase) buildOrder(req *CheckoutReq, lines []CartLine) *domain.Order {
	items := make([]domain.OrderItem, 0, len(lines))

	var total int64
	for _, line := range lines {
		total += line.Price * int64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			ProductSlug:  line.Slug,
			PriceAtOrder: line.Price,
			Quantity:     line.Quantity,
		})
	}

	return &domain.Order{
		UserID:        req.UserID,
		Status:        domain.OrderStatusPending,
		Total:         total,
		ShippingName:  req.ShippingName,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
		Items:         items,
	}
}

// enqueueOrderCreated кладёт событие о заказе в outbox той же транзакцией.
func (o *OrderUseCase) enqueueOrderCreated(ctx context.Context, order *domain.Order) error {
	if o.outboxRepo == nil {
		return nil
	}

	payload, err := json.Marshal(OrderCreatedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	})
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(OrderCreated, order.ID, payload))

	return err
}
