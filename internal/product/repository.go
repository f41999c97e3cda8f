package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shifat0/eshop-server/internal/category"

	"github.com/lib/pq"
)

type Repository interface {
	GetAll(ctx context.Context, categoryIDs []string) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetFeatured(ctx context.Context, limit int) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.image, p.brand, p.price,
	p.category_id, p.count_in_stock, p.rating, p.num_reviews,
	p.is_featured, p.date_created,
	c.id, c.name, c.icon, c.color
`

func scanProduct(scanner interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	var catID, catName, catIcon, catColor sql.NullString

	err := scanner.Scan(
		&p.ID, &p.Name, &p.Description, &p.Image, &p.Brand, &p.Price,
		&p.CategoryID, &p.CountInStock, &p.Rating, &p.NumReviews,
		&p.IsFeatured, &p.DateCreated,
		&catID, &catName, &catIcon, &catColor,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		p.Category = &category.Category{
			ID:    catID.String,
			Name:  catName.String,
			Icon:  catIcon.String,
			Color: catColor.String,
		}
	}
	return &p, nil
}

func (r *repository) GetAll(ctx context.Context, categoryIDs []string) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	`
	args := []any{}
	if len(categoryIDs) > 0 {
		query += ` WHERE p.category_id = ANY($1)`
		args = append(args, pq.Array(categoryIDs))
	}
	query += ` ORDER BY p.date_created DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetFeatured(ctx context.Context, limit int) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_featured = TRUE
		ORDER BY p.date_created DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, description, image, brand, price, category_id,
			count_in_stock, rating, num_reviews, is_featured, date_created
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID, p.Name, p.Description, p.Image, p.Brand, p.Price, p.CategoryID,
		p.CountInStock, p.Rating, p.NumReviews, p.IsFeatured, p.DateCreated,
	)
	return err
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET
			name = $1, description = $2, image = $3, brand = $4, price = $5,
			category_id = $6, count_in_stock = $7, is_featured = $8
		WHERE id = $9
	`,
		p.Name, p.Description, p.Image, p.Brand, p.Price,
		p.CategoryID, p.CountInStock, p.IsFeatured, p.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
