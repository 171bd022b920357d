package marketdata

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// PostgresFeed reads stored quote sets from a Postgres table. It is a
// point-in-time read of previously captured quotes, not a live market feed.
//
// Expected schema:
//
//	CREATE TABLE swap_quotes (
//	    curve_date  date             NOT NULL,
//	    tenor_years double precision NOT NULL,
//	    rate        double precision NOT NULL,
//	    is_fixing   boolean          NOT NULL,
//	    PRIMARY KEY (curve_date, tenor_years)
//	);
type PostgresFeed struct {
	db *sql.DB
}

var _ QuoteFeed = (*PostgresFeed)(nil)

// OpenPostgresFeed opens a quote feed against the given Postgres DSN.
func OpenPostgresFeed(dsn string) (*PostgresFeed, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenPostgresFeed: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenPostgresFeed: ping: %w", err)
	}
	return &PostgresFeed{db: db}, nil
}

// QuotesOn returns the quote set stored for the given curve date, sorted by
// ascending tenor, and validates it before returning.
func (f *PostgresFeed) QuotesOn(date time.Time) ([]Quote, error) {
	rows, err := f.db.Query(
		`SELECT tenor_years, rate, is_fixing
		   FROM swap_quotes
		  WHERE curve_date = $1
		  ORDER BY tenor_years`,
		date.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("QuotesOn: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.TenorYears, &q.Rate, &q.IsFixing); err != nil {
			return nil, fmt.Errorf("QuotesOn: scan: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("QuotesOn: %w", err)
	}
	if err := ValidateQuotes(quotes); err != nil {
		return nil, fmt.Errorf("QuotesOn: %s: %w", date.Format("2006-01-02"), err)
	}
	return quotes, nil
}

// Close releases the underlying connection pool.
func (f *PostgresFeed) Close() error {
	return f.db.Close()
}
