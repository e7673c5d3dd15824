// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	eventTime INTEGER NOT NULL,
	name TEXT NOT NULL,
	account BLOB,
	token BLOB,
	amount TEXT,
	recipient BLOB
);

CREATE INDEX IF NOT EXISTS eventTimeIndex ON event(eventTime);
CREATE INDEX IF NOT EXISTS nameIndex ON event(name);
CREATE INDEX IF NOT EXISTS accountIndex ON event(account);
CREATE INDEX IF NOT EXISTS tokenIndex ON event(token);`
