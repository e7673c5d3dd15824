// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores the observable events of the engine in sqlite, so
// that off-process indexers can follow deposits, reward arrivals, claims and
// the withdrawal lifecycle.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/lrt"
)

// EventDB is the sqlite-backed event store.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens the event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer := sqlite3DriverVersion()
	return &EventDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the event db.
func (db *EventDB) Close() {
	db.db.Close()
}

// Path returns the file path of the event db.
func (db *EventDB) Path() string {
	return db.path
}

// Write appends events in one transaction. Sequence numbers are assigned by
// the db and not read back.
func (db *EventDB) Write(events []*Event) (err error) {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin event batch")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, ev := range events {
		var amount any
		if ev.Amount != nil {
			amount = ev.Amount.String()
		}
		if _, err = tx.Exec(
			"INSERT INTO event(eventTime, name, account, token, amount, recipient) VALUES(?,?,?,?,?,?);",
			ev.Time,
			ev.Name,
			addressBlob(ev.Account),
			addressBlob(ev.Token),
			amount,
			addressBlob(ev.Recipient),
		); err != nil {
			return errors.Wrap(err, "insert event")
		}
	}
	return tx.Commit()
}

// Filter queries events matching the filter. A nil filter returns all events
// in ascending order.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY seq ASC")
	}

	var args []any
	stmt := "SELECT * FROM event WHERE 1"

	if len(filter.Names) > 0 {
		stmt += " AND name IN (?" + strings.Repeat(",?", len(filter.Names)-1) + ")"
		for _, name := range filter.Names {
			args = append(args, name)
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ?"
	}
	if filter.Token != nil {
		args = append(args, filter.Token.Bytes())
		stmt += " AND token = ?"
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND eventTime >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND eventTime <= ?"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *EventDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			event     Event
			account   []byte
			token     []byte
			amount    sql.NullString
			recipient []byte
		)
		if err := rows.Scan(
			&event.Sequence,
			&event.Time,
			&event.Name,
			&account,
			&token,
			&amount,
			&recipient,
		); err != nil {
			return nil, err
		}
		event.Account = blobAddress(account)
		event.Token = blobAddress(token)
		event.Recipient = blobAddress(recipient)
		if amount.Valid {
			value, ok := new(big.Int).SetString(amount.String, 10)
			if !ok {
				return nil, errors.Errorf("malformed amount %q", amount.String)
			}
			event.Amount = value
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

func addressBlob(addr *lrt.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

func blobAddress(blob []byte) *lrt.Address {
	if len(blob) == 0 {
		return nil
	}
	addr := lrt.BytesToAddress(blob)
	return &addr
}
