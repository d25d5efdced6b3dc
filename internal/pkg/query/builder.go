// Package query builds parameterized Spanner SELECT statements.
package query

import (
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction of an ORDER BY term.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Builder is immutable: every method returns a new Builder, so a base query
// can be shared and specialized. Condition parameters are numbered @p0, @p1...
// in the order the conditions were added.
type Builder struct {
	table   string
	columns []string
	where   []Condition
	orderBy []orderTerm
	limit   int64
}

type orderTerm struct {
	column    string
	direction Direction
}

// From starts a query on table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns; without any the query selects *.
func (b *Builder) Select(columns ...string) *Builder {
	next := b.clone()
	next.columns = append(next.columns, columns...)
	return next
}

// Where adds a condition. Conditions are joined with AND.
func (b *Builder) Where(c Condition) *Builder {
	next := b.clone()
	next.where = append(next.where, c)
	return next
}

// OrderBy sets the primary ordering, replacing any set earlier.
func (b *Builder) OrderBy(column string, d Direction) *Builder {
	next := b.clone()
	next.orderBy = []orderTerm{{column: column, direction: d}}
	return next
}

// ThenBy appends a tie-breaking sort column.
func (b *Builder) ThenBy(column string, d Direction) *Builder {
	next := b.clone()
	next.orderBy = append(next.orderBy, orderTerm{column: column, direction: d})
	return next
}

// Limit caps the number of rows; zero means no limit.
func (b *Builder) Limit(n int64) *Builder {
	next := b.clone()
	next.limit = n
	return next
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sb strings.Builder
	params := make(map[string]interface{})

	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	b.writeWhere(&sb, params)
	b.writeOrderBy(&sb)

	if b.limit > 0 {
		sb.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}

	return spanner.Statement{SQL: sb.String(), Params: params}
}

func (b *Builder) writeWhere(sb *strings.Builder, params map[string]interface{}) {
	if len(b.where) == 0 {
		return
	}
	parts := make([]string, 0, len(b.where))
	next := 0
	for _, c := range b.where {
		fragment, bound := c.SQL(next)
		parts = append(parts, fragment)
		for k, v := range bound {
			params[k] = v
		}
		next += len(bound)
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(parts, " AND "))
}

func (b *Builder) writeOrderBy(sb *strings.Builder) {
	if len(b.orderBy) == 0 {
		return
	}
	terms := make([]string, len(b.orderBy))
	for i, o := range b.orderBy {
		terms[i] = o.column + " " + o.direction.String()
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(terms, ", "))
}

func (b *Builder) clone() *Builder {
	return &Builder{
		table:   b.table,
		columns: append([]string(nil), b.columns...),
		where:   append([]Condition(nil), b.where...),
		orderBy: append([]orderTerm(nil), b.orderBy...),
		limit:   b.limit,
	}
}
