// log_query.go reads entries back out of the audit log and prunes old ones.
//
// Separated from log_storage.go because writing is best-effort and silent,
// while reading and pruning are user-facing operations whose errors matter.

package log

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotOpen is returned when the log is queried before Open.
var ErrNotOpen = errors.New("audit log not open")

// DefaultLimit is the number of entries Query returns when Filter.Limit is 0.
const DefaultLimit = 50

// Filter narrows a Query.
type Filter struct {
	Project string        // project root; empty matches every project
	Source  string        // source prefix, e.g. "nav" or "mcp:"
	Since   time.Duration // only entries started within this window; 0 = all
	Limit   int           // maximum entries, newest first; 0 = DefaultLimit
}

// handle returns the open logger.
func handle() (*Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return nil, ErrNotOpen
	}
	return global, nil
}

// Query returns log entries matching f, newest first.
func Query(ctx context.Context, f Filter) ([]Entry, error) {
	l, err := handle()
	if err != nil {
		return nil, err
	}

	q := `SELECT source, action, path, target, count, start, "end", success, error, detail
		FROM log WHERE 1 = 1`
	var args []any
	if f.Project != "" {
		q += " AND project = ?"
		args = append(args, hash(f.Project))
	}
	if f.Source != "" {
		q += ` AND source LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(f.Source)+"%")
	}
	if f.Since > 0 {
		q += " AND start >= ?"
		args = append(args, time.Now().Add(-f.Since).Unix())
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                         Entry
			path, target, msg, detail sql.NullString
			count                     sql.NullInt64
			success                   int
		)
		if err := rows.Scan(&e.Source, &e.Action, &path, &target, &count,
			&e.Start, &e.End, &success, &msg, &detail); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		e.Path = path.String
		e.Target = target.String
		e.Count = int(count.Int64)
		e.Success = success == 1
		e.Error = msg.String
		if detail.Valid {
			// A malformed detail column loses the detail, not the entry.
			_ = json.Unmarshal([]byte(detail.String), &e.Detail)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries that started before olderThan ago and compacts the
// database. With dryRun set nothing is deleted; the count is what would be.
func Prune(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error) {
	l, err := handle()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan).Unix()

	if dryRun {
		var n int64
		err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM log WHERE start < ?", cutoff).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("count log: %w", err)
		}
		return n, nil
	}

	res, err := l.db.ExecContext(ctx, "DELETE FROM log WHERE start < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if _, err := l.db.ExecContext(ctx, "VACUUM"); err != nil {
			return n, fmt.Errorf("vacuum log: %w", err)
		}
	}
	return n, nil
}

// escapeLike escapes the LIKE wildcards in s.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
