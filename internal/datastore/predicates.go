package datastore

import (
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm/clause"
)

// Predicates built here are opaque clause expressions; callers combine them
// with logical AND by passing the whole slice to a query method.

// FreqRange returns predicates restricting a text frequency column to the
// open interval (lower, upper) kHz. The CAST spelling works on both SQLite
// (numeric affinity) and MySQL.
func FreqRange(column string, lower, upper float64) []clause.Expression {
	cast := fmt.Sprintf("CAST(%s AS DECIMAL(10,2))", column)
	return []clause.Expression{
		clause.Expr{SQL: cast + " > ?", Vars: []any{lower}},
		clause.Expr{SQL: cast + " < ?", Vars: []any{upper}},
	}
}

// HasPrefix returns a predicate matching rows whose column starts with the
// given prefix. Matching is case-sensitive, no normalization; substr is
// used instead of LIKE because SQLite's LIKE folds ASCII case. substr
// counts characters, so the length is in runes, not bytes.
func HasPrefix(column, prefix string) clause.Expression {
	return clause.Expr{
		SQL:  fmt.Sprintf("substr(%s, 1, ?) = ?", column),
		Vars: []any{utf8.RuneCountInString(prefix), prefix},
	}
}

// Eq returns a simple equality predicate.
func Eq(column string, value any) clause.Expression {
	return clause.Eq{
		Column: clause.Column{Name: column},
		Value:  value,
	}
}

// After returns a predicate matching rows whose column is strictly after
// the given value.
func After(column string, value any) clause.Expression {
	return clause.Gt{
		Column: clause.Column{Name: column},
		Value:  value,
	}
}

