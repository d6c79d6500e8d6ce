package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Operator is a comparison applied by a filter criterion
type Operator string

// Supported operators
const (
	OpEqual              Operator = "Equal"
	OpNotEqual           Operator = "NotEqual"
	OpGreaterThan        Operator = "GreaterThan"
	OpGreaterThanOrEqual Operator = "GreaterThanOrEqual"
	OpLessThan           Operator = "LessThan"
	OpLessThanOrEqual    Operator = "LessThanOrEqual"
	OpContains           Operator = "Contains"
	OpStartsWith         Operator = "StartsWith"
	OpEndsWith           Operator = "EndsWith"
)

var operators = []Operator{
	OpEqual, OpNotEqual,
	OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual,
	OpContains, OpStartsWith, OpEndsWith,
}

// ParseOperator resolves an operator name case-insensitively
func ParseOperator(name string) (Operator, bool) {
	for _, op := range operators {
		if strings.EqualFold(string(op), strings.TrimSpace(name)) {
			return op, true
		}
	}
	return "", false
}

// Criterion is a single property/operator/value predicate
type Criterion struct {
	PropertyName string   `json:"PropertyName"`
	Operator     Operator `json:"Operator"`
	Value        string   `json:"Value"`
}

// UnmarshalJSON accepts scalar values of any JSON type and keeps their text form,
// so {"Value": 5} and {"Value": "5"} are equivalent.
func (c *Criterion) UnmarshalJSON(data []byte) error {
	var raw struct {
		PropertyName string          `json:"PropertyName"`
		Operator     string          `json:"Operator"`
		Value        json.RawMessage `json:"Value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.PropertyName = raw.PropertyName
	c.Operator = Operator(raw.Operator)
	c.Value = ""

	value := bytes.TrimSpace(raw.Value)
	switch {
	case len(value) == 0 || bytes.Equal(value, []byte("null")):
	case value[0] == '"':
		if err := json.Unmarshal(value, &c.Value); err != nil {
			return err
		}
	case value[0] == '{' || value[0] == '[':
		return fmt.Errorf("value of %q must be a scalar", raw.PropertyName)
	default:
		c.Value = string(value)
	}
	return nil
}

// ParseCriteria decodes the JSON-encoded criteria list passed in the filters query parameter.
// An empty string yields no criteria.
func ParseCriteria(raw string) ([]Criterion, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var criteria []Criterion
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return nil, ErrMalformedJSON
	}
	return criteria, nil
}
