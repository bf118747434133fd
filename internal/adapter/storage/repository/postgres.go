package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xcommerce/backend/internal/adapter/storage"
	"github.com/xcommerce/backend/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Insert("users").
		Columns("username", "password", "email", "first_name", "last_name").
		Values(user.Username, user.Password, user.Email, user.FirstName, user.LastName).
		Suffix("returning id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "username", "password", "email", "first_name", "last_name").
		From("users").
		Where(sq.Eq{"username": username})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Email,
		&user.FirstName,
		&user.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("p.id", "p.name", "p.description", "p.price", "p.stock", "i.url").
		From("products p").
		LeftJoin("product_images i on i.product_id = p.id and i.is_featured").
		OrderBy("p.id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Product, 0)
	for rows.Next() {
		product := domain.Product{}
		var imageURL *string
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Stock,
			&imageURL,
		)
		if err != nil {
			return nil, err
		}
		if imageURL != nil {
			product.Images = []domain.ProductImage{
				{ProductID: product.ID, URL: *imageURL, IsFeatured: true},
			}
		}
		list = append(list, &product)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "description", "price", "stock").
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
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

	images, err := r.readProductImages(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.Images = images

	return &product, nil
}

func (r *Repository) readProductImages(ctx context.Context, productID uint64) ([]domain.ProductImage, error) {
	statement := r.db.QueryBuilder.
		Select("id", "product_id", "url", "is_featured").
		From("product_images").
		Where(sq.Eq{"product_id": productID}).
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	images := make([]domain.ProductImage, 0)
	for rows.Next() {
		image := domain.ProductImage{}
		err := rows.Scan(&image.ID, &image.ProductID, &image.URL, &image.IsFeatured)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}

	return images, rows.Err()
}

func (r *Repository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name").
		From("countries").
		OrderBy("name")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Country, 0)
	for rows.Next() {
		country := domain.Country{}
		err := rows.Scan(&country.ID, &country.Name)
		if err != nil {
			return nil, err
		}
		list = append(list, &country)
	}

	return list, rows.Err()
}

func (r *Repository) CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	statement := r.db.QueryBuilder.
		Insert("addresses").
		Columns("user_id", "first_name", "last_name", "phone", "country_id",
			"city", "address_line_1", "address_line_2", "address_type").
		Values(address.UserID, address.FirstName, address.LastName, address.Phone,
			address.CountryID, address.City, address.AddressLine1, address.AddressLine2,
			address.AddressType).
		Suffix("returning id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&address.ID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return address, nil
}

func (r *Repository) ReadAddress(ctx context.Context, addressID uint64) (*domain.Address, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "first_name", "last_name", "phone", "country_id",
			"city", "address_line_1", "address_line_2", "address_type").
		From("addresses").
		Where(sq.Eq{"id": addressID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	address := domain.Address{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&address.ID,
		&address.UserID,
		&address.FirstName,
		&address.LastName,
		&address.Phone,
		&address.CountryID,
		&address.City,
		&address.AddressLine1,
		&address.AddressLine2,
		&address.AddressType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &address, nil
}

func (r *Repository) UpdateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	statement := r.db.QueryBuilder.
		Update("addresses").
		Set("first_name", address.FirstName).
		Set("last_name", address.LastName).
		Set("phone", address.Phone).
		Set("country_id", address.CountryID).
		Set("city", address.City).
		Set("address_line_1", address.AddressLine1).
		Set("address_line_2", address.AddressLine2).
		Set("address_type", address.AddressType).
		Where(sq.Eq{"id": address.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return address, nil
}

func (r *Repository) DeleteAddress(ctx context.Context, addressID uint64) error {
	statement := r.db.QueryBuilder.
		Delete("addresses").
		Where(sq.Eq{"id": addressID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}

	return nil
}

func (r *Repository) ListAddressesByUser(ctx context.Context, userID uint64) ([]*domain.Address, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "first_name", "last_name", "phone", "country_id",
			"city", "address_line_1", "address_line_2", "address_type").
		From("addresses").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Address, 0)
	for rows.Next() {
		address := domain.Address{}
		err := rows.Scan(
			&address.ID,
			&address.UserID,
			&address.FirstName,
			&address.LastName,
			&address.Phone,
			&address.CountryID,
			&address.City,
			&address.AddressLine1,
			&address.AddressLine2,
			&address.AddressType,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &address)
	}

	return list, rows.Err()
}
