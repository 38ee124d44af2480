package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/internal/repository/pgdb/converter"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/tr"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{pool: pool, conv: conv}
}

// Create сохраняет заказ вместе с позициями одной транзакцией.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (
			user_id, status, total, shipping_name, phone,
			address_line1, address_line2, city, state, pincode, payment_method
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.UserID, model.Status, model.Total, model.ShippingName, model.Phone,
		model.AddressLine1, model.AddressLine2, model.City, model.State, model.Pincode,
		model.PaymentMethod,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (
			order_id, product_id, product_name, product_slug, price_at_order, quantity
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`

	items := make([]converter.OrderItemModel, 0, len(order.Items))
	for _, item := range order.Items {
		itemModel := converter.OrderItemModel{
			OrderID:      model.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductSlug:  item.ProductSlug,
			PriceAtOrder: item.PriceAtOrder,
			Quantity:     item.Quantity,
		}

		if err := tx.QueryRow(ctx, itemQuery,
			itemModel.OrderID, itemModel.ProductID, itemModel.ProductName,
			itemModel.ProductSlug, itemModel.PriceAtOrder, itemModel.Quantity,
		).Scan(&itemModel.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		items = append(items, itemModel)
	}

	return o.conv.ToEntity(model, items), nil
}

// ListByUser возвращает заказы пользователя с позициями, от новых к старым.
func (o *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	query := `
		SELECT id, user_id, status, total, shipping_name, phone,
		       address_line1, address_line2, city, state, pincode,
		       payment_method, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;
	`

	rows, err := querier(ctx, o.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.OrderModel, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(
			&model.ID, &model.UserID, &model.Status, &model.Total,
			&model.ShippingName, &model.Phone,
			&model.AddressLine1, &model.AddressLine2,
			&model.City, &model.State, &model.Pincode,
			&model.PaymentMethod, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemsByOrder, err := o.listItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(models))
	for i := range models {
		orders = append(orders, *o.conv.ToEntity(&models[i], itemsByOrder[models[i].ID]))
	}

	return orders, nil
}

func (o *OrderRepo) listItems(ctx context.Context, userID int64) (map[int64][]converter.OrderItemModel, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name,
		       oi.product_slug, oi.price_at_order, oi.quantity
		FROM order_items oi
		JOIN orders ord ON ord.id = oi.order_id
		WHERE ord.user_id = $1
		ORDER BY oi.order_id, oi.id;
	`

	rows, err := querier(ctx, o.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]converter.OrderItemModel)
	for rows.Next() {
		var model converter.OrderItemModel
		if err := rows.Scan(
			&model.ID, &model.OrderID, &model.ProductID, &model.ProductName,
			&model.ProductSlug, &model.PriceAtOrder, &model.Quantity,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		itemsByOrder[model.OrderID] = append(itemsByOrder[model.OrderID], model)
	}

	return itemsByOrder, rows.Err()
}
