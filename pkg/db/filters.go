package db

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const (
	// TableColumns is a shortcut for all columns of the queried table.
	TableColumns = "t.*"

	StatusEnabled = 1
	StatusDeleted = 3

	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

type SortDirection string

// SortField describes an ORDER BY clause element.
type SortField struct {
	Column    string
	Direction SortDirection
}

// Pager limits query results.
type Pager struct {
	Page     int
	PageSize int
}

var (
	PagerDefault = Pager{Page: 1, PageSize: 100}
	PagerOne     = Pager{Page: 1, PageSize: 1}
	PagerTwo     = Pager{Page: 1, PageSize: 2}
	PagerNoLimit = Pager{Page: 1, PageSize: 0}
)

// Filter is a base restriction applied to every query over a table.
type Filter func(q *orm.Query) *orm.Query

// StatusFilter hides soft-deleted rows.
func StatusFilter(q *orm.Query) *orm.Query {
	return q.Where("?TableAlias.\"statusId\" != ?", StatusDeleted)
}

// StatusEnabledFilter keeps enabled rows only.
func StatusEnabledFilter(q *orm.Query) *orm.Query {
	return q.Where("?TableAlias.\"statusId\" = ?", StatusEnabled)
}

// Searcher applies search conditions to a query.
type Searcher interface {
	Apply(q *orm.Query) *orm.Query
}

// OpFunc modifies a query: columns, sort, relations.
type OpFunc func(q *orm.Query) *orm.Query

// WithColumns sets selected columns and joined relations. Relation names
// follow Go struct field naming ("User", "Transaction"), plain columns are
// lowerCamel ("statusId"), matching the Columns registry in model.go.
func WithColumns(cols ...string) OpFunc {
	return func(q *orm.Query) *orm.Query {
		for _, col := range cols {
			if isRelationName(col) {
				q = q.Relation(col)
			} else {
				q = q.Column(col)
			}
		}
		return q
	}
}

func isRelationName(col string) bool {
	r, _ := utf8.DecodeRuneInString(col)
	return unicode.IsUpper(r)
}

// WithSort adds ORDER BY clauses.
func WithSort(fields ...SortField) OpFunc {
	return func(q *orm.Query) *orm.Query {
		for _, f := range fields {
			q = q.OrderExpr("? ?", pg.Ident(f.Column), pg.Safe(f.Direction))
		}
		return q
	}
}

func applyOps(q *orm.Query, ops ...OpFunc) *orm.Query {
	for _, op := range ops {
		q = op(q)
	}
	return q
}

// buildQuery assembles a select query from base filters, search conditions and pager.
func buildQuery(ctx context.Context, dbo orm.DB, model interface{}, search Searcher, filters []Filter, pager Pager, ops ...OpFunc) *orm.Query {
	q := dbo.ModelContext(ctx, model)

	for _, f := range filters {
		q = f(q)
	}

	if search != nil {
		q = search.Apply(q)
	}

	if pager.PageSize > 0 {
		q = q.Limit(pager.PageSize).Offset((pager.Page - 1) * pager.PageSize)
	}

	return applyOps(q, ops...)
}
