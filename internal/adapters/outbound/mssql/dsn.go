package mssql

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/microsoft/go-mssqldb/msdsn"
)

const (
	urlPrefix  = "sqlserver://"
	odbcPrefix = "odbc:"
)

// withDatabase rewrites the connection string to connect to database.
// The result is parsed back and must name exactly that database.
func withDatabase(connString, database string) (string, error) {
	lower := strings.ToLower(connString)

	var out string

	switch {
	case strings.HasPrefix(lower, urlPrefix):
		u, err := url.Parse(connString)
		if err != nil {
			return "", fmt.Errorf("parse connection url: %w", err)
		}

		q := u.Query()
		q.Set("database", database)
		u.RawQuery = q.Encode()
		out = u.String()
	case strings.HasPrefix(lower, odbcPrefix):
		out = strings.TrimRight(connString, "; ") + ";database={" + strings.ReplaceAll(database, "}", "}}") + "}"
	default:
		out = strings.TrimRight(connString, "; ") + ";database=" + database
	}

	cfg, err := msdsn.Parse(out)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrDatabaseOverride, database, err)
	}

	if cfg.Database != database {
		return "", fmt.Errorf("%w %q: connection string resolves to %q", ErrDatabaseOverride, database, cfg.Database)
	}

	return out, nil
}
