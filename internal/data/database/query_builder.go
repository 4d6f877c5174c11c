// Package database builds parameterized list queries with sanitized identifiers.
package database

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Op is a comparison operator in a WHERE condition.
type Op string

const (
	Equal Op = "="
	ILike Op = "ILIKE"
	// IRegex is a case-insensitive POSIX regex match. Callers escape input
	// they want matched literally.
	IRegex Op = "~*"
)

// Condition compares Field against a bound Value. Conditions are ANDed.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Where is shorthand for a Condition literal.
func Where(field string, op Op, value any) Condition {
	return Condition{Field: field, Op: op, Value: value}
}

// OrderTerm is one ORDER BY expression. Direction is ASC or DESC; anything else is dropped.
type OrderTerm struct {
	Column    string
	Direction string
}

// Page bounds a result set. Negative values are omitted from the SQL.
type Page struct {
	Limit  int
	Offset int
}

// ListQuery describes a filtered, ordered and optionally paged SELECT over one table.
//
//	q := ListQuery{
//		Table:   "jobs",
//		Columns: []string{"id", "company"},
//		Where:   []Condition{Where("created_by", Equal, owner)},
//		OrderBy: []OrderTerm{{"created_at", "DESC"}, {"id", "ASC"}},
//		Page:    &Page{Limit: 10, Offset: 0},
//	}
//	countSQL, countArgs := q.CountSQL()
//	pageSQL, pageArgs := q.PageSQL()
//
// CountSQL and PageSQL share the WHERE clause, so countArgs is always a prefix of pageArgs.
type ListQuery struct {
	Table   string
	Columns []string
	Where   []Condition
	OrderBy []OrderTerm
	Page    *Page
}

// CountSQL returns SELECT COUNT(*) over the filtered rows, ignoring order and paging.
func (q ListQuery) CountSQL() (string, []any) {
	var b sqlBuilder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(sanitizeIdentifier(q.Table))
	b.where(q.Where)
	return b.String(), b.args
}

// PageSQL returns the filtered, ordered and paged SELECT.
func (q ListQuery) PageSQL() (string, []any) {
	var b sqlBuilder
	b.WriteString("SELECT ")
	b.WriteString(selectList(q.Columns))
	b.WriteString(" FROM ")
	b.WriteString(sanitizeIdentifier(q.Table))
	b.where(q.Where)
	b.orderBy(q.OrderBy)
	if q.Page != nil {
		if q.Page.Limit >= 0 {
			b.WriteString(" LIMIT ")
			b.bind(q.Page.Limit)
		}
		if q.Page.Offset >= 0 {
			b.WriteString(" OFFSET ")
			b.bind(q.Page.Offset)
		}
	}
	return b.String(), b.args
}

// sanitizeIdentifier quotes identifiers like "column" or "table.column".
func sanitizeIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

func selectList(cols []string) string {
	if len(cols) == 0 {
		return "*"
	}
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = sanitizeIdentifier(col)
	}
	return strings.Join(quoted, ", ")
}

// sqlBuilder accumulates SQL text and numbers placeholders in bind order.
type sqlBuilder struct {
	strings.Builder
	args []any
}

func (b *sqlBuilder) bind(v any) {
	b.args = append(b.args, v)
	b.WriteString("$" + strconv.Itoa(len(b.args)))
}

func (b *sqlBuilder) where(conds []Condition) {
	first := true
	for _, c := range conds {
		if c.Field == "" || !c.Op.valid() {
			continue
		}
		if first {
			b.WriteString(" WHERE ")
			first = false
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(sanitizeIdentifier(c.Field))
		b.WriteString(" " + string(c.Op) + " ")
		b.bind(c.Value)
	}
}

func (b *sqlBuilder) orderBy(terms []OrderTerm) {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Column == "" {
			continue
		}
		part := sanitizeIdentifier(t.Column)
		if dir := strings.ToUpper(t.Direction); dir == "ASC" || dir == "DESC" {
			part += " " + dir
		}
		parts = append(parts, part)
	}
	if len(parts) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}
}

func (o Op) valid() bool {
	switch o {
	case Equal, ILike, IRegex:
		return true
	}
	return false
}
