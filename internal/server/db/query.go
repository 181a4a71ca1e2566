package db

import (
	"fmt"
	"strings"

	"github.com/mkorobovs/sitekeeper/internal/common"
)

// The builders in this file assemble parameterized statements from two kinds
// of placeholder: identifiers (validated against the closed Table/Column
// enums, then quoted into the SQL text) and values (always $n parameters).
// Callers supply values positionally in the order the builder documents.

func checkTable(t Table) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownTable, t)
	}
	return nil
}

func checkColumns(cols ...Column) error {
	for _, c := range cols {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", common.ErrUnknownColumn, c)
		}
	}
	return nil
}

func columnList(cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = quoteIdent(string(c))
	}
	return strings.Join(parts, ", ")
}

// whereClause renders `"a" = $n AND "b" = $n+1 ...` starting at parameter
// number start, returning the clause and the next free parameter number.
func whereClause(where []Column, start int) (string, int) {
	parts := make([]string, len(where))
	for i, c := range where {
		parts[i] = fmt.Sprintf("%s = $%d", quoteIdent(string(c)), start)
		start++
	}
	return strings.Join(parts, " AND "), start
}

// BuildSelect returns `SELECT cols FROM table WHERE w1 = $1 AND w2 = $2 ...`.
// Value order: the where-constraint values.
func BuildSelect(table Table, cols []Column, where []Column) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	if err := checkColumns(append(append([]Column{}, cols...), where...)...); err != nil {
		return "", err
	}

	q := fmt.Sprintf("SELECT %s FROM %s", columnList(cols), string(table))
	if len(where) > 0 {
		clause, _ := whereClause(where, 1)
		q += " WHERE " + clause
	}
	return q, nil
}

// BuildSelectDistinct returns a DISTINCT single-column select with optional
// constraints, ordered by the selected column descending.
// Value order: the where-constraint values.
func BuildSelectDistinct(table Table, col Column, where []Column) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	if err := checkColumns(append([]Column{col}, where...)...); err != nil {
		return "", err
	}

	q := fmt.Sprintf("SELECT DISTINCT %s FROM %s", quoteIdent(string(col)), string(table))
	if len(where) > 0 {
		clause, _ := whereClause(where, 1)
		q += " WHERE " + clause
	}
	q += fmt.Sprintf(" ORDER BY %s DESC", quoteIdent(string(col)))
	return q, nil
}

// BuildList returns a bounded listing: optional constraints, optional
// descending order, and a LIMIT parameter.
// Value order: the where-constraint values, then the limit.
func BuildList(table Table, cols []Column, where []Column, orderBy Column) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	all := append(append([]Column{}, cols...), where...)
	if orderBy != "" {
		all = append(all, orderBy)
	}
	if err := checkColumns(all...); err != nil {
		return "", err
	}

	q := fmt.Sprintf("SELECT %s FROM %s", columnList(cols), string(table))
	next := 1
	if len(where) > 0 {
		var clause string
		clause, next = whereClause(where, 1)
		q += " WHERE " + clause
	}
	if orderBy != "" {
		q += fmt.Sprintf(" ORDER BY %s DESC", quoteIdent(string(orderBy)))
	}
	q += fmt.Sprintf(" LIMIT $%d", next)
	return q, nil
}

// BuildInsert returns a variable-column insert for exactly the columns
// supplied. Value order: one value per column, in the given order.
func BuildInsert(table Table, cols []Column) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("%w: empty column list", common.ErrUnknownColumn)
	}
	if err := checkColumns(cols...); err != nil {
		return "", err
	}

	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		string(table), columnList(cols), strings.Join(params, ", ")), nil
}

// BuildUpdate returns a dynamic SET update over exactly the columns
// supplied, constrained by a single column.
// Value order: one value per SET column, then the constraint value.
func BuildUpdate(table Table, set []Column, constraint Column) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	if len(set) == 0 {
		return "", fmt.Errorf("%w: empty SET list", common.ErrUnknownColumn)
	}
	if err := checkColumns(append(append([]Column{}, set...), constraint)...); err != nil {
		return "", err
	}

	parts := make([]string, len(set))
	n := 1
	for i, c := range set {
		parts[i] = fmt.Sprintf("%s = $%d", quoteIdent(string(c)), n)
		n++
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		string(table), strings.Join(parts, ", "), quoteIdent(string(constraint)), n), nil
}

// BuildDelete returns a delete constrained by every given column.
// Value order: the where-constraint values.
func BuildDelete(table Table, where []Column) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	if len(where) == 0 {
		return "", fmt.Errorf("%w: empty constraint list", common.ErrUnknownColumn)
	}
	if err := checkColumns(where...); err != nil {
		return "", err
	}

	clause, _ := whereClause(where, 1)
	return fmt.Sprintf("DELETE FROM %s WHERE %s", string(table), clause), nil
}
