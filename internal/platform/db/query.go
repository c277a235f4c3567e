package db

import (
	"fmt"
	"strings"

	"github.com/ambulance/ambulance/pkg/pagination"
)

// Query builds a SELECT with a conjunctive WHERE clause and positional
// arguments.
type Query struct {
	table   string
	cols    string
	where   []string
	args    []interface{}
	orderBy string
}

func NewQuery(table, cols string) *Query {
	return &Query{table: table, cols: cols}
}

// Where appends a condition. clause holds one %d verb that is replaced by
// the placeholder index of arg, e.g. "rating >= $%d".
func (q *Query) Where(clause string, arg interface{}) {
	q.args = append(q.args, arg)
	q.where = append(q.where, fmt.Sprintf(clause, len(q.args)))
}

func (q *Query) OrderBy(orderBy string) {
	q.orderBy = orderBy
}

// SQL returns the statement with ordering and the page window applied.
func (q *Query) SQL(p pagination.Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", q.cols, q.table)
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.orderBy)
	}
	b.WriteString(p.SQL())
	return b.String()
}

func (q *Query) Args() []interface{} {
	return q.args
}
