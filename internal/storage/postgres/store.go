package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/grocery-cli/internal/models"
	"github.com/hongminglow/grocery-cli/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Service interface at compile time.
var _ storage.Service = (*Store)(nil)

const uniqueViolation = "23505"

// Store calls the grocery database's functions, procedures and reports.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and verifies it is reachable.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	// One console, one caller: a single connection is all the client ever uses.
	cfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Authenticate asks the authenticate() function whether the password matches.
func (s *Store) Authenticate(ctx context.Context, username, password string) (bool, error) {
	// The ::int cast accepts both boolean and integer flavours of the function.
	const query = `SELECT COALESCE(authenticate($1, $2)::int, 0) <> 0;`
	var ok bool
	if err := s.pool.QueryRow(ctx, query, username, password).Scan(&ok); err != nil {
		return false, storage.Wrap(storage.OpAuthenticate, err)
	}
	return ok, nil
}

// IsAdmin asks check_admin() whether the user holds administrator rights.
func (s *Store) IsAdmin(ctx context.Context, username string) (bool, error) {
	const query = `SELECT COALESCE(check_admin($1)::int, 0) <> 0;`
	var ok bool
	if err := s.pool.QueryRow(ctx, query, username).Scan(&ok); err != nil {
		return false, storage.Wrap(storage.OpCheckAdmin, err)
	}
	return ok, nil
}

// AddUser creates an account through sp_add_user.
func (s *Store) AddUser(ctx context.Context, username, password string) error {
	if _, err := s.pool.Exec(ctx, `CALL sp_add_user($1, $2);`, username, password); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.Wrap(storage.OpAddUser, fmt.Errorf("%w: %s", storage.ErrAlreadyExists, pgErr.Message))
		}
		return storage.Wrap(storage.OpAddUser, err)
	}
	return nil
}

// GrantAdmin promotes an existing account through sp_give_admin.
func (s *Store) GrantAdmin(ctx context.Context, username string) error {
	if _, err := s.pool.Exec(ctx, `CALL sp_give_admin($1);`, username); err != nil {
		return storage.Wrap(storage.OpGrantAdmin, err)
	}
	return nil
}

// MoveTopTen runs move_top_ten, which shelves the ten most purchased products in a new aisle.
func (s *Store) MoveTopTen(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `CALL move_top_ten();`); err != nil {
		return storage.Wrap(storage.OpMoveTopTen, err)
	}
	return nil
}

// PopularByWeekday lists the most purchased products for each day of the week, ties included.
func (s *Store) PopularByWeekday(ctx context.Context) ([]models.DayFavorite, error) {
	const query = `
	WITH product_orders AS (
		SELECT product_name, order_day_of_week, COUNT(*) AS num_purchases
		FROM orders NATURAL JOIN products
		GROUP BY product_name, order_day_of_week
	),
	popular_purchases_per_day AS (
		SELECT order_day_of_week, MAX(num_purchases) AS num_purchases
		FROM product_orders
		GROUP BY order_day_of_week
	)
	SELECT order_day_of_week, product_name
	FROM popular_purchases_per_day NATURAL JOIN product_orders
	ORDER BY order_day_of_week, product_name;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storage.Wrap(storage.OpPopularByWeekday, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DayFavorite, error) {
		var f models.DayFavorite
		err := row.Scan(&f.Day, &f.Product)
		return f, err
	})
	if err != nil {
		return nil, storage.Wrap(storage.OpPopularByWeekday, err)
	}
	return out, nil
}

// AverageCartSize computes the mean number of items per order for every user.
func (s *Store) AverageCartSize(ctx context.Context) ([]models.CartAverage, error) {
	const query = `
	WITH items_in_order AS (
		SELECT user_id, order_id, COUNT(*) AS num_items_in_cart
		FROM orders NATURAL JOIN user_orders
		GROUP BY user_id, order_id
	)
	SELECT user_id, AVG(num_items_in_cart)::float8 AS avg_cart_size
	FROM items_in_order
	GROUP BY user_id
	ORDER BY user_id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storage.Wrap(storage.OpAverageCartSize, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CartAverage, error) {
		var a models.CartAverage
		err := row.Scan(&a.UserID, &a.AvgItems)
		return a, err
	})
	if err != nil {
		return nil, storage.Wrap(storage.OpAverageCartSize, err)
	}
	return out, nil
}

// ReturningCustomers counts users that placed more than one order.
func (s *Store) ReturningCustomers(ctx context.Context) (int64, error) {
	const query = `
	SELECT COUNT(*)
	FROM (
		SELECT user_id
		FROM (SELECT DISTINCT user_id, order_id FROM orders NATURAL JOIN user_orders) t1
		GROUP BY user_id
		HAVING COUNT(order_id) > 1
	) returning_users;
	`
	var n int64
	if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, storage.Wrap(storage.OpReturningCustomers, err)
	}
	return n, nil
}

// PopularAisles ranks aisles by the number of purchases made from them.
func (s *Store) PopularAisles(ctx context.Context) ([]models.AislePopularity, error) {
	const query = `
	WITH aisle_info AS (
		SELECT product_id, product_name, aisle_id, aisle
		FROM orders NATURAL JOIN products NATURAL JOIN aisles
	)
	SELECT aisle_id, aisle, COUNT(*) AS num_aisle_visits
	FROM aisle_info
	GROUP BY aisle_id, aisle
	ORDER BY num_aisle_visits DESC, aisle_id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storage.Wrap(storage.OpPopularAisles, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AislePopularity, error) {
		var a models.AislePopularity
		err := row.Scan(&a.AisleID, &a.Aisle, &a.Visits)
		return a, err
	})
	if err != nil {
		return nil, storage.Wrap(storage.OpPopularAisles, err)
	}
	return out, nil
}

// AisleFavorites finds the most purchased product of each aisle, ties included.
func (s *Store) AisleFavorites(ctx context.Context) ([]models.AisleFavorite, error) {
	const query = `
	WITH aisle_info AS (
		SELECT product_id, product_name, aisle_id, aisle
		FROM orders NATURAL JOIN products NATURAL JOIN aisles
	),
	popular_item_aisle_ct AS (
		SELECT aisle_id, aisle, product_id, product_name, COUNT(*) AS product_ct
		FROM aisle_info
		GROUP BY aisle_id, aisle, product_id, product_name
	),
	most_popular AS (
		SELECT aisle_id, MAX(product_ct) AS product_ct
		FROM popular_item_aisle_ct
		GROUP BY aisle_id
	)
	SELECT c.aisle_id, c.aisle, c.product_id, c.product_name, c.product_ct
	FROM popular_item_aisle_ct c
	JOIN most_popular m ON m.aisle_id = c.aisle_id AND m.product_ct = c.product_ct
	ORDER BY c.aisle_id, c.product_id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storage.Wrap(storage.OpAisleFavorites, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AisleFavorite, error) {
		var f models.AisleFavorite
		err := row.Scan(&f.AisleID, &f.Aisle, &f.ProductID, &f.Product, &f.Purchases)
		return f, err
	})
	if err != nil {
		return nil, storage.Wrap(storage.OpAisleFavorites, err)
	}
	return out, nil
}
