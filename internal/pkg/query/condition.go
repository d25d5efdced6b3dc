package query

import "fmt"

// Condition is one WHERE predicate. SQL renders it with the named parameter
// @p<paramIndex> and returns the parameters it binds.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

// predicate binds a single value; format receives the column and the parameter name.
type predicate struct {
	field  string
	format string
	value  interface{}
}

func (p predicate) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf(p.format, p.field, name), map[string]interface{}{name: p.value}
}

// Eq matches field = value.
func Eq(field string, value interface{}) Condition {
	return predicate{field: field, format: "%s = @%s", value: value}
}

// Gte matches field >= value.
func Gte(field string, value interface{}) Condition {
	return predicate{field: field, format: "%s >= @%s", value: value}
}

// Lte matches field <= value.
func Lte(field string, value interface{}) Condition {
	return predicate{field: field, format: "%s <= @%s", value: value}
}

// In matches any of values, bound as one ARRAY<STRING> parameter:
// In("category_slug", slugs) renders "category_slug IN UNNEST(@p0)".
func In(field string, values []string) Condition {
	return predicate{field: field, format: "%s IN UNNEST(@%s)", value: values}
}
