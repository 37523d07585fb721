package expression

import (
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
)

// Literal is the constant value expression. The 'typed' value is the literal converted
// into the Go type of the compared attribute.
type Literal struct {
	value string
	typed interface{}
}

// NewLiteral creates new untyped literal.
func NewLiteral(value string) *Literal {
	return &Literal{value: value}
}

// NewTypedLiteral creates new literal with the 'typed' value.
func NewTypedLiteral(value string, typed interface{}) *Literal {
	return &Literal{value: value, typed: typed}
}

// Value returns the raw string value.
func (l *Literal) Value() string {
	return l.value
}

// Typed returns the converted value or the raw string if the literal is not typed.
func (l *Literal) Typed() interface{} {
	if l.typed == nil {
		return l.value
	}
	return l.typed
}

// String implements fmt.Stringer interface.
func (l *Literal) String() string {
	return "'" + strings.ReplaceAll(l.value, "'", "''") + "'"
}

func (*Literal) expression() {}

// Null is the 'null' constant expression.
type Null struct{}

// NullValue is the only Null expression instance.
var NullValue = &Null{}

// String implements fmt.Stringer interface.
func (*Null) String() string {
	return "null"
}

func (*Null) expression() {}

// ComparisonOperator is the comparison operator.
type ComparisonOperator int

// Comparison operators.
const (
	Equals ComparisonOperator = iota
	GreaterThan
	GreaterOrEqual
	LessThan
	LessOrEqual
)

var comparisonOperators = map[string]ComparisonOperator{
	"equals":         Equals,
	"greaterThan":    GreaterThan,
	"greaterOrEqual": GreaterOrEqual,
	"lessThan":       LessThan,
	"lessOrEqual":    LessOrEqual,
}

// ParseComparisonOperator gets the comparison operator by its case sensitive keyword.
func ParseComparisonOperator(keyword string) (ComparisonOperator, bool) {
	op, ok := comparisonOperators[keyword]
	return op, ok
}

// String implements fmt.Stringer interface.
func (c ComparisonOperator) String() string {
	switch c {
	case Equals:
		return "equals"
	case GreaterThan:
		return "greaterThan"
	case GreaterOrEqual:
		return "greaterOrEqual"
	case LessThan:
		return "lessThan"
	case LessOrEqual:
		return "lessOrEqual"
	}
	return "unknown"
}

// Comparison is the binary comparison filter i.e.: equals(title,'Classified').
type Comparison struct {
	operator    ComparisonOperator
	left, right Expression
}

// NewComparison creates new comparison expression. The 'left' operand must be a field chain or a count function.
func NewComparison(operator ComparisonOperator, left, right Expression) (*Comparison, error) {
	switch left.(type) {
	case *ResourceFieldChain, *Count:
	default:
		return nil, errors.WrapDetf(ErrInvalidExpression, "invalid left comparison operand: '%s'", left)
	}
	switch right.(type) {
	case *ResourceFieldChain, *Count, *Literal, *Null:
	default:
		return nil, errors.WrapDetf(ErrInvalidExpression, "invalid right comparison operand: '%v'", right)
	}
	return &Comparison{operator: operator, left: left, right: right}, nil
}

// Operator returns the comparison operator.
func (c *Comparison) Operator() ComparisonOperator {
	return c.operator
}

// Left returns the left operand.
func (c *Comparison) Left() Expression {
	return c.left
}

// Right returns the right operand.
func (c *Comparison) Right() Expression {
	return c.right
}

// String implements fmt.Stringer interface.
func (c *Comparison) String() string {
	return c.operator.String() + "(" + c.left.String() + "," + c.right.String() + ")"
}

func (*Comparison) expression() {}
func (*Comparison) filter()     {}

// TextMatchKind is the kind of the text matching.
type TextMatchKind int

// Text match kinds.
const (
	Contains TextMatchKind = iota
	StartsWith
	EndsWith
)

// ParseTextMatchKind gets the text match kind by its case sensitive keyword.
func ParseTextMatchKind(keyword string) (TextMatchKind, bool) {
	switch keyword {
	case "contains":
		return Contains, true
	case "startsWith":
		return StartsWith, true
	case "endsWith":
		return EndsWith, true
	}
	return 0, false
}

// String implements fmt.Stringer interface.
func (t TextMatchKind) String() string {
	switch t {
	case Contains:
		return "contains"
	case StartsWith:
		return "startsWith"
	case EndsWith:
		return "endsWith"
	}
	return "unknown"
}

// MatchText is the text matching filter i.e.: contains(title,'news').
type MatchText struct {
	kind   TextMatchKind
	target *ResourceFieldChain
	text   *Literal
}

// NewMatchText creates new text matching expression.
func NewMatchText(kind TextMatchKind, target *ResourceFieldChain, text *Literal) (*MatchText, error) {
	if target == nil || text == nil {
		return nil, errors.WrapDet(ErrInvalidExpression, "match text requires target attribute and text value")
	}
	return &MatchText{kind: kind, target: target, text: text}, nil
}

// Kind returns the text matching kind.
func (m *MatchText) Kind() TextMatchKind {
	return m.kind
}

// Target returns the matched attribute chain.
func (m *MatchText) Target() *ResourceFieldChain {
	return m.target
}

// Text returns the matched text.
func (m *MatchText) Text() *Literal {
	return m.text
}

// String implements fmt.Stringer interface.
func (m *MatchText) String() string {
	return m.kind.String() + "(" + m.target.String() + "," + m.text.String() + ")"
}

func (*MatchText) expression() {}
func (*MatchText) filter()     {}

// Any is the filter that matches the attribute with any of the constants i.e.: any(title,'a','b').
type Any struct {
	target    *ResourceFieldChain
	constants []*Literal
}

// NewAny creates new any expression. At least one constant is required.
func NewAny(target *ResourceFieldChain, constants ...*Literal) (*Any, error) {
	if target == nil || len(constants) == 0 {
		return nil, errors.WrapDet(ErrInvalidExpression, "any expression requires target attribute and at least one constant")
	}
	c := make([]*Literal, len(constants))
	copy(c, constants)
	return &Any{target: target, constants: c}, nil
}

// Target returns the matched attribute chain.
func (a *Any) Target() *ResourceFieldChain {
	return a.target
}

// Constants returns the matched constants.
func (a *Any) Constants() []*Literal {
	return a.constants
}

// String implements fmt.Stringer interface.
func (a *Any) String() string {
	sb := &strings.Builder{}
	sb.WriteString("any(")
	sb.WriteString(a.target.String())
	for _, c := range a.constants {
		sb.WriteRune(',')
		sb.WriteString(c.String())
	}
	sb.WriteRune(')')
	return sb.String()
}

func (*Any) expression() {}
func (*Any) filter()     {}

// Has is the filter that checks if the to-many relationship contains any (matching) resource i.e.: has(comments).
type Has struct {
	target    *ResourceFieldChain
	predicate FilterExpression
}

// NewHas creates new has expression. The 'filter' is optional.
func NewHas(target *ResourceFieldChain, filter FilterExpression) (*Has, error) {
	if target == nil {
		return nil, errors.WrapDet(ErrInvalidExpression, "has expression requires target collection")
	}
	return &Has{target: target, predicate: filter}, nil
}

// Target returns the to-many relationship chain.
func (h *Has) Target() *ResourceFieldChain {
	return h.target
}

// Filter returns the optional filter applied on the related resources.
func (h *Has) Filter() FilterExpression {
	return h.predicate
}

// String implements fmt.Stringer interface.
func (h *Has) String() string {
	if h.predicate == nil {
		return "has(" + h.target.String() + ")"
	}
	return "has(" + h.target.String() + "," + h.predicate.String() + ")"
}

func (*Has) expression() {}
func (*Has) filter()     {}

// Count is the function that counts the to-many relationship resources i.e.: count(comments).
type Count struct {
	target *ResourceFieldChain
}

// NewCount creates new count function expression.
func NewCount(target *ResourceFieldChain) (*Count, error) {
	if target == nil {
		return nil, errors.WrapDet(ErrInvalidExpression, "count expression requires target collection")
	}
	return &Count{target: target}, nil
}

// Target returns the to-many relationship chain.
func (c *Count) Target() *ResourceFieldChain {
	return c.target
}

// String implements fmt.Stringer interface.
func (c *Count) String() string {
	return "count(" + c.target.String() + ")"
}

func (*Count) expression() {}

// LogicalOperator is the logical filter operator.
type LogicalOperator int

// Logical operators.
const (
	And LogicalOperator = iota
	Or
)

// String implements fmt.Stringer interface.
func (l LogicalOperator) String() string {
	if l == Or {
		return "or"
	}
	return "and"
}

// Logical is the logical combination of at least two filters i.e.: and(equals(a,'1'),equals(b,'2')).
type Logical struct {
	operator LogicalOperator
	terms    []FilterExpression
}

// NewLogical creates new logical expression. It requires at least two terms.
func NewLogical(operator LogicalOperator, terms ...FilterExpression) (*Logical, error) {
	if len(terms) < 2 {
		return nil, errors.WrapDetf(ErrInvalidExpression, "logical expression requires at least two terms, got: %d", len(terms))
	}
	for _, term := range terms {
		if term == nil {
			return nil, errors.WrapDet(ErrInvalidExpression, "logical expression contains nil term")
		}
	}
	t := make([]FilterExpression, len(terms))
	copy(t, terms)
	return &Logical{operator: operator, terms: t}, nil
}

// Operator returns the logical operator.
func (l *Logical) Operator() LogicalOperator {
	return l.operator
}

// Terms returns the logical terms.
func (l *Logical) Terms() []FilterExpression {
	return l.terms
}

// String implements fmt.Stringer interface.
func (l *Logical) String() string {
	terms := make([]string, len(l.terms))
	for i, term := range l.terms {
		terms[i] = term.String()
	}
	return l.operator.String() + "(" + strings.Join(terms, ",") + ")"
}

func (*Logical) expression() {}
func (*Logical) filter()     {}

// AndAll combines the non nil filters with the logical 'and'. If there is only one filter it is returned directly.
// Returns nil if there are no filters.
func AndAll(filters ...FilterExpression) FilterExpression {
	var terms []FilterExpression
	for _, f := range filters {
		if f != nil {
			terms = append(terms, f)
		}
	}
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return terms[0]
	}
	return &Logical{operator: And, terms: terms}
}

// Not is the negation of the filter i.e.: not(equals(title,'x')).
type Not struct {
	child FilterExpression
}

// NewNot creates new negation expression.
func NewNot(child FilterExpression) (*Not, error) {
	if child == nil {
		return nil, errors.WrapDet(ErrInvalidExpression, "not expression requires a child filter")
	}
	return &Not{child: child}, nil
}

// Child returns the negated filter.
func (n *Not) Child() FilterExpression {
	return n.child
}

// String implements fmt.Stringer interface.
func (n *Not) String() string {
	return "not(" + n.child.String() + ")"
}

func (*Not) expression() {}
func (*Not) filter()     {}
