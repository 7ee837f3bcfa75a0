package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, created_at, updated_at, user_id, order_details_id, status, is_paid, in_cart`

const orderDetailsColumns = `id, created_at, updated_at, product_id, address_id, price, quantity, status`

func (o *OrderRepository) CreateOrderDetails(ctx context.Context, args repoargs.CreateOrderDetails) (*domain.OrderDetails, error) {
	row := o.db.QueryRow(ctx, `
		INSERT INTO order_details (product_id, address_id, price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orderDetailsColumns,
		args.ProductID, args.AddressID, args.Price, args.Quantity)

	details, err := scanOrderDetails(row)
	if err != nil {
		return nil, convertErr(err, "creating order details for product %d", args.ProductID)
	}
	return details, nil
}

func (o *OrderRepository) CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_details_id, status)
		VALUES ($1, $2, $3)
		RETURNING `+orderColumns,
		args.UserID, args.OrderDetailsID, args.Status)

	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for userID %d", args.UserID)
	}
	return order, nil
}

func (o *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order %d", id)
	}
	return order, nil
}

// FindByIDForUpdate возвращает заказ юзера с блокировкой строки до конца
// транзакции. Оплаченность здесь не фильтруется: вызывающая сторона должна
// отличать "заказ не найден" от "заказ уже оплачен".
func (o *OrderRepository) FindByIDForUpdate(ctx context.Context, id, userID int64) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, id, userID)

	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "locking order %d for userID %d", id, userID)
	}
	return order, nil
}

func (o *OrderRepository) FindDetailsByID(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	row := o.db.QueryRow(ctx, `
		SELECT `+orderDetailsColumns+` FROM order_details
		WHERE id = $1 AND status = $2`, id, domain.RecordStatusActive)

	details, err := scanOrderDetails(row)
	if err != nil {
		return nil, convertErr(err, "finding order details %d", id)
	}
	return details, nil
}

// GetByUserID возвращает заказы покупателя, находящиеся в корзине, с активными
// позициями. Сортировка по дате создания по убыванию.
func (o *OrderRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := o.db.Query(ctx, `
		SELECT `+prefixColumns("o", orderColumns)+`
		FROM orders o
		JOIN order_details od ON od.id = o.order_details_id
		WHERE o.user_id = $1 AND o.in_cart = true AND od.status = $2
		ORDER BY o.created_at DESC`, userID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting orders by userID %d", userID)
	}
	defer rows.Close()

	return collectOrders(rows, userID)
}

// GetBySellerID возвращает заказы на товары продавца (для витрины продавца).
func (o *OrderRepository) GetBySellerID(ctx context.Context, sellerID int64) ([]domain.Order, error) {
	rows, err := o.db.Query(ctx, `
		SELECT DISTINCT `+prefixColumns("o", orderColumns)+`
		FROM orders o
		JOIN order_details od ON od.id = o.order_details_id
		JOIN products p ON p.id = od.product_id
		WHERE p.user_id = $1 AND od.status = $2
		ORDER BY o.created_at DESC`, sellerID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting orders by sellerID %d", sellerID)
	}
	defer rows.Close()

	return collectOrders(rows, sellerID)
}

// MarkPaid выполняет терминальный переход заказа: is_paid=true, in_cart=false,
// статус PAID. Повторный вызов не затронет строку и вернет
// domain.ErrRecordNotFound.
func (o *OrderRepository) MarkPaid(ctx context.Context, orderID int64) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		UPDATE orders
		SET is_paid = true, in_cart = false, status = $2, updated_at = now()
		WHERE id = $1 AND is_paid = false
		RETURNING `+orderColumns,
		orderID, domain.OrderStatusPaid)

	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "marking order %d paid", orderID)
	}
	return order, nil
}

func (o *OrderRepository) UpdateDetailsQuantity(ctx context.Context, args repoargs.UpdateOrderQuantity) (*domain.OrderDetails, error) {
	row := o.db.QueryRow(ctx, `
		UPDATE order_details
		SET quantity = $2, price = $3, updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING `+orderDetailsColumns,
		args.OrderDetailsID, args.Quantity, args.Price, domain.RecordStatusActive)

	details, err := scanOrderDetails(row)
	if err != nil {
		return nil, convertErr(err, "updating quantity of order details %d", args.OrderDetailsID)
	}
	return details, nil
}

func (o *OrderRepository) SoftDeleteDetails(ctx context.Context, detailsID int64) error {
	tag, err := o.db.Exec(ctx, `
		UPDATE order_details
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		detailsID, domain.RecordStatusDeleted, domain.RecordStatusActive)
	if err != nil {
		return convertErr(err, "deleting order details %d", detailsID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting order details %d", detailsID)
	}
	return nil
}

func collectOrders(rows pgx.Rows, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning order for userID %d", userID)
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "collecting orders for userID %d", userID)
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.UserID,
		&order.OrderDetailsID,
		&order.Status,
		&order.IsPaid,
		&order.InCart,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func scanOrderDetails(row rowScanner) (*domain.OrderDetails, error) {
	var details domain.OrderDetails
	err := row.Scan(
		&details.ID,
		&details.CreatedAt,
		&details.UpdatedAt,
		&details.ProductID,
		&details.AddressID,
		&details.Price,
		&details.Quantity,
		&details.Status,
	)
	if err != nil {
		return nil, err
	}
	return &details, nil
}
