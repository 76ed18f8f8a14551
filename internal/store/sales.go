package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

// SaleRepo persists sale lifecycle records: listed, then sold or unsold.
type SaleRepo struct {
	db *DB
}

// AddListing records a newly listed item and returns its row id. The input
// must carry a chaos or divine price.
func (r *SaleRepo) AddListing(in types.SaleInput) (int64, error) {
	return r.insert(in, time.Now(), false)
}

// RecordInstantSale records an item that sold the moment it was listed:
// listed_at equals sold_at and time_to_sale is zero. Like AddListing it
// fails with ErrMissingPrice when neither value field is supplied.
func (r *SaleRepo) RecordInstantSale(in types.SaleInput) (int64, error) {
	return r.insert(in, time.Now(), true)
}

func (r *SaleRepo) insert(in types.SaleInput, now time.Time, instant bool) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	if in.Game == "" {
		in.Game = types.GamePoE1
	}
	price, currency := in.Price()
	ts := types.FormatTimestamp(now)

	if instant {
		_, id, err := r.db.Exec(
			`INSERT INTO sales (game, league, item_name, source, listed_price, currency,
			    listed_at, status, sold_price, sold_at, time_to_sale)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			in.Game, in.League, in.ItemName, in.Source, price, currency,
			ts, types.SaleStatusSold, price, ts,
		)
		if err != nil {
			return 0, fmt.Errorf("recording instant sale: %w", err)
		}
		return id, nil
	}

	_, id, err := r.db.Exec(
		`INSERT INTO sales (game, league, item_name, source, listed_price, currency, listed_at, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Game, in.League, in.ItemName, in.Source, price, currency,
		ts, types.SaleStatusListed,
	)
	if err != nil {
		return 0, fmt.Errorf("adding sale listing: %w", err)
	}
	return id, nil
}

// Complete marks a listed sale as sold at the given price and time, and
// recomputes the elapsed time to sale. The duration is clamped at zero:
// the listed-at stamp comes from the local clock while sold-at may come
// from the trade site, and the two can disagree. Returns false when no
// sale with that id exists.
func (r *SaleRepo) Complete(id int64, soldPrice float64, soldAt time.Time) (bool, error) {
	if soldAt.IsZero() {
		soldAt = time.Now()
	}

	found := false
	err := r.db.WithTx(func(tx *sql.Tx) error {
		var listedAtStr string
		err := tx.QueryRow(`SELECT listed_at FROM sales WHERE id = ?`, id).Scan(&listedAtStr)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		// A malformed listed_at yields no usable duration; treat it as
		// an immediate sale rather than failing the update.
		var tts time.Duration
		if listedAt, ok := types.ParseTimestamp(listedAtStr); ok {
			tts = soldAt.Sub(listedAt)
		}
		if tts < 0 {
			tts = 0
		}

		_, err = tx.Exec(
			`UPDATE sales SET status = ?, sold_price = ?, sold_at = ?, time_to_sale = ? WHERE id = ?`,
			types.SaleStatusSold, soldPrice, types.FormatTimestamp(soldAt),
			int64(tts.Seconds()), id,
		)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("completing sale %d: %w", id, err)
	}
	return found, nil
}

// MarkUnsold marks a sale as unsold. Returns false when no sale with that
// id exists.
func (r *SaleRepo) MarkUnsold(id int64) (bool, error) {
	affected, _, err := r.db.Exec(
		`UPDATE sales SET status = ? WHERE id = ?`, types.SaleStatusUnsold, id,
	)
	if err != nil {
		return false, fmt.Errorf("marking sale %d unsold: %w", id, err)
	}
	return affected > 0, nil
}

// Get returns the sale with the given id, or ok=false when absent.
func (r *SaleRepo) Get(id int64) (types.Sale, bool, error) {
	var sale types.Sale
	err := r.db.QueryRow(
		`SELECT id, game, league, item_name, source, listed_price, currency,
		    listed_at, status, sold_price, sold_at, time_to_sale
		 FROM sales WHERE id = ?`,
		func(row *sql.Row) error { return scanSaleRow(row, &sale) },
		id,
	)
	if err == sql.ErrNoRows {
		return types.Sale{}, false, nil
	}
	if err != nil {
		return types.Sale{}, false, fmt.Errorf("getting sale %d: %w", id, err)
	}
	return sale, true, nil
}

// Recent returns the most recent sales, newest listing first. textFilter
// matches the item name as a case-insensitive substring; source filters by
// exact listing source. limit <= 0 means no limit.
func (r *SaleRepo) Recent(limit int, textFilter, source string) ([]types.Sale, error) {
	query := `SELECT id, game, league, item_name, source, listed_price, currency,
		listed_at, status, sold_price, sold_at, time_to_sale FROM sales`
	var conditions []string
	var args []any

	if textFilter != "" {
		conditions = append(conditions, "item_name LIKE ? COLLATE NOCASE")
		args = append(args, "%"+textFilter+"%")
	}
	if source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, source)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY listed_at DESC, id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var sales []types.Sale
	err := r.db.Query(query, func(rows *sql.Rows) error {
		for rows.Next() {
			var sale types.Sale
			if err := scanSaleRows(rows, &sale); err != nil {
				return err
			}
			sales = append(sales, sale)
		}
		return nil
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	return sales, nil
}

// saleColumns is the shared scan target for both *sql.Row and *sql.Rows.
type saleColumns struct {
	listedAt   string
	soldPrice  sql.NullFloat64
	soldAt     sql.NullString
	timeToSale sql.NullInt64
}

func (c *saleColumns) apply(sale *types.Sale) {
	sale.ListedAt, _ = types.ParseTimestamp(c.listedAt)
	if c.soldPrice.Valid {
		sale.SoldPrice = c.soldPrice.Float64
	}
	if c.soldAt.Valid {
		sale.SoldAt, _ = types.ParseTimestamp(c.soldAt.String)
	}
	if c.timeToSale.Valid {
		sale.TimeToSale = time.Duration(c.timeToSale.Int64) * time.Second
	}
}

func scanSaleRow(row *sql.Row, sale *types.Sale) error {
	var c saleColumns
	if err := row.Scan(&sale.ID, &sale.Game, &sale.League, &sale.ItemName,
		&sale.Source, &sale.ListedPrice, &sale.Currency, &c.listedAt,
		&sale.Status, &c.soldPrice, &c.soldAt, &c.timeToSale); err != nil {
		return err
	}
	c.apply(sale)
	return nil
}

func scanSaleRows(rows *sql.Rows, sale *types.Sale) error {
	var c saleColumns
	if err := rows.Scan(&sale.ID, &sale.Game, &sale.League, &sale.ItemName,
		&sale.Source, &sale.ListedPrice, &sale.Currency, &c.listedAt,
		&sale.Status, &c.soldPrice, &c.soldAt, &c.timeToSale); err != nil {
		return fmt.Errorf("scanning sale: %w", err)
	}
	c.apply(sale)
	return nil
}
