package mssql

import "errors"

var (
	ErrEmptyDatabase    = errors.New("database name is not set and connection string has no database")
	ErrDatabaseOverride = errors.New("cannot set database in connection string")
)

// AlreadyAtTargetError reports that the database already runs the requested objective.
type AlreadyAtTargetError struct {
	Objective string
}

func (e *AlreadyAtTargetError) Error() string {
	return "database already at service objective " + e.Objective
}

func (e *AlreadyAtTargetError) IsAlreadyAtTarget() {}
