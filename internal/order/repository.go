package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shifat0/eshop-server/internal/category"
	"github.com/shifat0/eshop-server/internal/logger"
	"github.com/shifat0/eshop-server/internal/product"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) (*DeletionResult, error)
	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (decimal.Decimal, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create persists the order row and every materialized line item in one
// transaction. Any failure rolls the whole placement back, so no line item
// can ever exist without its order.
func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_id", o.ID),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, shipping_address1, shipping_address2, city, zip, country,
			phone, status, total_price, user_id, date_ordered
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		o.ID, o.ShippingAddress1, o.ShippingAddress2, o.City, o.Zip, o.Country,
		o.Phone, o.Status, o.TotalPrice, o.UserID, o.DateOrdered,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, quantity, price, subtotal, position
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			item.ID, o.ID, item.ProductID, item.Quantity,
			item.Price, item.Subtotal, item.Position,
		)
		if err != nil {
			log.Error("failed to insert line item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order persisted")
	return nil
}

const orderColumns = `
	o.id, o.shipping_address1, o.shipping_address2, o.city, o.zip, o.country,
	o.phone, o.status, o.total_price, o.user_id, u.name, o.date_ordered
`

func scanOrder(scanner interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var userName sql.NullString

	err := scanner.Scan(
		&o.ID, &o.ShippingAddress1, &o.ShippingAddress2, &o.City, &o.Zip,
		&o.Country, &o.Phone, &o.Status, &o.TotalPrice, &o.UserID,
		&userName, &o.DateOrdered,
	)
	if err != nil {
		return nil, err
	}
	o.UserName = userName.String
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// List returns all orders, most recent first, with the user reference
// expanded to a display name. Line items are not loaded for the listing.
func (r *repository) List(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.date_ordered DESC, o.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.date_ordered DESC, o.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var orderIDs []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) > 0 {
		items, err := r.loadItems(ctx, orderIDs)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			o.Items = items[o.ID]
		}
	}

	return orders, nil
}

// loadItems fetches the line items for a set of orders in one query, each
// expanded with its product and the product's category.
func (r *repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]*LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			oi.subtotal, oi.position,
			p.name, p.image, p.brand, p.price,
			c.id, c.name, c.icon, c.color
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.position
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]*LineItem)
	for rows.Next() {
		var item LineItem
		var p product.Product
		var catID, catName, catIcon, catColor sql.NullString

		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.Price, &item.Subtotal, &item.Position,
			&p.Name, &p.Image, &p.Brand, &p.Price,
			&catID, &catName, &catIcon, &catColor,
		)
		if err != nil {
			return nil, err
		}

		p.ID = item.ProductID
		if catID.Valid {
			p.CategoryID = catID.String
			p.Category = &category.Category{
				ID:    catID.String,
				Name:  catName.String,
				Icon:  catIcon.String,
				Color: catColor.String,
			}
		}
		item.Product = &p
		items[item.OrderID] = append(items[item.OrderID], &item)
	}
	return items, rows.Err()
}

// UpdateStatus accepts any status string; the field is an open label.
func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Delete removes the order and every line item it references in one
// transaction, so no reader can observe an order whose items are gone.
// Each ref is deleted individually and its outcome checked; refs that match
// no row are reported in the result instead of being silently dropped.
func (r *repository) Delete(ctx context.Context, id string) (*DeletionResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.String("order_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1 FOR UPDATE)`, id).
		Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOrderNotFound
	}

	refs, err := r.lineItemRefs(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	result := &DeletionResult{OrderID: id}
	for _, ref := range refs {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM order_items WHERE id = $1`, ref)
		if err != nil {
			log.Error("failed to delete line item",
				zap.String("line_item_id", ref), zap.Error(err))
			return nil, err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			result.MissingRefs = append(result.MissingRefs, ref)
			continue
		}
		result.ItemsDeleted += int(affected)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		log.Error("failed to delete order", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit delete transaction", zap.Error(err))
		return nil, err
	}

	committed = true
	log.Info("order deleted",
		zap.Int("items_deleted", result.ItemsDeleted),
		zap.Int("missing_refs", len(result.MissingRefs)),
	)
	return result, nil
}

func (r *repository) lineItemRefs(ctx context.Context, tx *sql.Tx, orderID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// TotalSales sums total_price over every order. An empty table yields zero,
// not an error.
func (r *repository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM orders`).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
