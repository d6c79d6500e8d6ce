package persistence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// primaryKeyColumn is the id column every entity table carries
const primaryKeyColumn = "id"

// likeEscaper escapes LIKE wildcards so user input matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ApplyFilter adds one WHERE condition per criterion. Criteria are ANDed; an
// empty list leaves the query unchanged.
func ApplyFilter(db *gorm.DB, fields shared.FieldSet, criteria []shared.Criterion) (*gorm.DB, error) {
	for _, c := range criteria {
		expr, err := criterionExpr(fields, c)
		if err != nil {
			return nil, err
		}
		db = db.Where(expr)
	}
	return db, nil
}

// ApplySearch matches term case-insensitively as a substring of any searchable field.
// A blank term or an entity without searchable fields leaves the query unchanged.
func ApplySearch(db *gorm.DB, fields shared.FieldSet, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	searchable := fields.Searchable()
	if term == "" || len(searchable) == 0 {
		return db
	}

	pattern := "%" + likeEscaper.Replace(fold(term)) + "%"

	exprs := make([]clause.Expression, 0, len(searchable))
	for _, f := range searchable {
		exprs = append(exprs, likeExpr(f.Column, pattern))
	}
	return db.Where(clause.Or(exprs...))
}

// ApplySort orders by the given field and then by primary key. An empty field
// orders by primary key only.
func ApplySort(db *gorm.DB, fields shared.FieldSet, sortField, sortOrder string) (*gorm.DB, error) {
	order, err := shared.ParseSortOrder(sortOrder)
	if err != nil {
		return nil, err
	}
	desc := order == shared.SortDesc

	sortField = strings.TrimSpace(sortField)
	if sortField == "" {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: primaryKeyColumn}, Desc: desc}), nil
	}

	f, ok := fields.Lookup(sortField)
	if !ok {
		return nil, shared.NewSortError(fmt.Sprintf("Unknown sort field '%s'", sortField))
	}
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: f.Column}, Desc: desc})
	if f.Column != primaryKeyColumn {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: primaryKeyColumn}})
	}
	return db, nil
}

// Paginate restricts the query to one 1-based page.
func Paginate(db *gorm.DB, pageNumber, pageSize int) *gorm.DB {
	return db.Offset((pageNumber - 1) * pageSize).Limit(pageSize)
}

func criterionExpr(fields shared.FieldSet, c shared.Criterion) (clause.Expression, error) {
	f, ok := fields.Lookup(c.PropertyName)
	if !ok {
		return nil, shared.NewFilterError(fmt.Sprintf("Unknown filter property '%s'", c.PropertyName))
	}
	op, ok := shared.ParseOperator(string(c.Operator))
	if !ok {
		return nil, shared.NewFilterError(fmt.Sprintf("Unknown operator '%s'", c.Operator))
	}
	if !f.Kind.Supports(op) {
		return nil, shared.NewFilterError(fmt.Sprintf("Operator '%s' is not supported for %s property '%s'", op, f.Kind, f.Name))
	}

	switch op {
	case shared.OpContains:
		return likeExpr(f.Column, "%"+likeEscaper.Replace(fold(c.Value))+"%"), nil
	case shared.OpStartsWith:
		return likeExpr(f.Column, likeEscaper.Replace(fold(c.Value))+"%"), nil
	case shared.OpEndsWith:
		return likeExpr(f.Column, "%"+likeEscaper.Replace(fold(c.Value))), nil
	}

	value, err := parseValue(f, c.Value)
	if err != nil {
		return nil, err
	}
	col := clause.Column{Name: f.Column}
	switch op {
	case shared.OpEqual:
		return clause.Eq{Column: col, Value: value}, nil
	case shared.OpNotEqual:
		// NULL differs from every value
		return clause.Or(clause.Neq{Column: col, Value: value}, clause.Eq{Column: col, Value: nil}), nil
	case shared.OpGreaterThan:
		return clause.Gt{Column: col, Value: value}, nil
	case shared.OpGreaterThanOrEqual:
		return clause.Gte{Column: col, Value: value}, nil
	case shared.OpLessThan:
		return clause.Lt{Column: col, Value: value}, nil
	default:
		return clause.Lte{Column: col, Value: value}, nil
	}
}

// fold lower-cases s for case-insensitive matching. A Caser keeps state, so
// one is created per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// likeExpr matches a folded pattern against LOWER(column). Postgres lowers the column
// with full Unicode case mapping; SQLite's built-in LOWER only maps ASCII, so on the
// sqlite driver non-ASCII letters stored in upper case do not match a lower-case term.
func likeExpr(column, pattern string) clause.Expression {
	return clause.Expr{
		SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
		Vars: []any{clause.Column{Name: column}, pattern},
	}
}

// parseValue converts the textual criterion value to the field's Go type so it
// is bound as a typed parameter.
func parseValue(f shared.Field, raw string) (any, error) {
	if f.Kind == shared.KindString {
		return raw, nil
	}
	raw = strings.TrimSpace(raw)
	invalid := func() error {
		return shared.NewFilterError(fmt.Sprintf("Value '%s' is not a valid %s for property '%s'", raw, f.Kind, f.Name))
	}

	switch f.Kind {
	case shared.KindInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, invalid()
		}
		return v, nil
	case shared.KindDecimal:
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, invalid()
		}
		return v, nil
	case shared.KindTime:
		if v, err := time.Parse(time.RFC3339, raw); err == nil {
			return v.UTC(), nil
		}
		v, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, invalid()
		}
		return v, nil
	case shared.KindUUID:
		v, err := uuid.Parse(raw)
		if err != nil {
			return nil, invalid()
		}
		return v, nil
	case shared.KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalid()
		}
		return v, nil
	default:
		return nil, invalid()
	}
}
