package store

import (
	"database/sql"

	"github.com/Christopher22/larry/internal/domain"
)

func toNullInt64(a domain.Attendance) sql.NullInt64 {
	b := a.Bool()
	if b == nil {
		return sql.NullInt64{}
	}
	v := int64(0)
	if *b {
		v = 1
	}
	return sql.NullInt64{Int64: v, Valid: true}
}

func fromNullInt64(ns sql.NullInt64) domain.Attendance {
	if !ns.Valid {
		return domain.Unknown
	}
	if ns.Int64 != 0 {
		return domain.Attending
	}
	return domain.Declined
}
