package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port"
)

// CreateOrder persists the order aggregate in one transaction. For every item
// the product row is locked with SELECT ... FOR UPDATE before reserveFn runs,
// so concurrent checkouts on the same product serialize on the row lock and
// cannot both observe sufficient stock. Any error out of reserveFn (or any
// statement) rolls back the header, all items and all decrements.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order, reserveFn port.ReserveStockFn) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		headerSt := r.db.QueryBuilder.
			Insert("orders").
			Columns("uuid", "user_id", "address_id", "total", "tax", "created_at").
			Values(order.UUID, order.UserID, order.AddressID, order.Total, order.Tax, order.CreatedAt).
			Suffix("returning id")

		sql, args, err := headerSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&order.ID)
		if err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			product, err := r.lockProduct(ctx, tx, item.ProductID)
			if err != nil {
				return err
			}

			if err := reserveFn(item, product); err != nil {
				return err
			}

			itemSt := r.db.QueryBuilder.
				Insert("order_items").
				Columns("order_id", "product_id", "qty", "line_item_total").
				Values(item.OrderID, item.ProductID, item.Quantity, item.LineTotal).
				Suffix("returning id")

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}

			err = tx.QueryRow(ctx, sql, args...).Scan(&item.ID)
			if err != nil {
				return err
			}

			decSt := r.db.QueryBuilder.
				Update("products").
				Set("stock", sq.Expr("stock - ?", item.Quantity)).
				Where(sq.Eq{"id": item.ProductID})

			sql, args, err = decSt.ToSql()
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}

			item.Product = product
		}

		return nil
	})

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch pgErr.Code {
			case pgerrcode.CheckViolation:
				// stock >= 0 constraint, the last line of defense
				return nil, domain.ErrProductOutOfStock
			case pgerrcode.ForeignKeyViolation:
				return nil, domain.ErrDataNotFound
			}
		}
		return nil, err
	}

	return order, nil
}

func (r *Repository) lockProduct(ctx context.Context, tx pgx.Tx, productID uint64) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "description", "price", "stock").
		From("products").
		Where(sq.Eq{"id": productID}).
		Suffix("for update")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}

	err = tx.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *Repository) ReadOrderByUUID(ctx context.Context, orderUUID uuid.UUID) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("id", "uuid", "user_id", "address_id", "total", "tax", "created_at").
		From("orders").
		Where(sq.Eq{"uuid": orderUUID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.UUID,
		&order.UserID,
		&order.AddressID,
		&order.Total,
		&order.Tax,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	items, err := r.readOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("id", "uuid", "user_id", "address_id", "total", "tax", "created_at").
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UUID,
			&order.UserID,
			&order.AddressID,
			&order.Total,
			&order.Tax,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	for _, order := range list {
		items, err := r.readOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return list, nil
}

func (r *Repository) readOrderItems(ctx context.Context, orderID uint64) ([]domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("oi.id", "oi.order_id", "oi.product_id", "oi.qty", "oi.line_item_total",
			"p.name", "p.price", "p.stock", "i.url").
		From("order_items oi").
		Join("products p on p.id = oi.product_id").
		LeftJoin("product_images i on i.product_id = p.id and i.is_featured").
		Where(sq.Eq{"oi.order_id": orderID}).
		OrderBy("oi.id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		product := domain.Product{}
		var imageURL *string
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.LineTotal,
			&product.Name,
			&product.Price,
			&product.Stock,
			&imageURL,
		)
		if err != nil {
			return nil, err
		}
		product.ID = item.ProductID
		if imageURL != nil {
			product.Images = []domain.ProductImage{
				{ProductID: product.ID, URL: *imageURL, IsFeatured: true},
			}
		}
		item.Product = &product
		items = append(items, item)
	}

	return items, rows.Err()
}
