// Package queryable contains the provider-native query model - a tree of the method calls with the lambda
// expressions, i.e.: articles.Where(article => (article.Title == "x")).Skip(20).Take(10).
// The data stores execute the trees built by the query/builder package.
package queryable

import (
	"fmt"
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/resource"
)

// ErrUnsupportedExpression is the error classification used by the visitors that doesn't handle given node.
var ErrUnsupportedExpression = errors.Wrap(errors.ErrInternal, "unsupported queryable expression")

// Expression is the queryable tree node.
type Expression interface {
	fmt.Stringer
	queryable()
}

// Source is the root collection of the resources of given type.
type Source struct {
	ResourceType *resource.Type
}

// String implements fmt.Stringer interface.
func (s *Source) String() string {
	return s.ResourceType.Name()
}

// Parameter is the lambda parameter - a single resource of given type.
type Parameter struct {
	Name         string
	ResourceType *resource.Type
}

// String implements fmt.Stringer interface.
func (p *Parameter) String() string {
	return p.Name
}

// Lambda is the anonymous function with a single parameter.
type Lambda struct {
	Parameter *Parameter
	Body      Expression
}

// String implements fmt.Stringer interface.
func (l *Lambda) String() string {
	return l.Parameter.Name + " => " + l.Body.String()
}

// Member is the access to the resource field of the target.
type Member struct {
	Target Expression
	Field  resource.Field
}

// String implements fmt.Stringer interface.
func (m *Member) String() string {
	return m.Target.String() + "." + m.Field.Name()
}

// Constant is the constant value. The nil value is the null.
type Constant struct {
	Value interface{}
}

// String implements fmt.Stringer interface.
func (c *Constant) String() string {
	return formatConstant(c.Value)
}

func formatConstant(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case []interface{}:
		values := make([]string, len(v))
		for i, e := range v {
			values[i] = formatConstant(e)
		}
		return "[" + strings.Join(values, ", ") + "]"
	case fmt.Stringer:
		return fmt.Sprintf("%q", v.String())
	}
	return fmt.Sprint(value)
}

// BinaryOperator is the operator of the binary expression.
type BinaryOperator int

// Binary operators.
const (
	Equal BinaryOperator = iota
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	AndAlso
	OrElse
)

// String implements fmt.Stringer interface.
func (b BinaryOperator) String() string {
	switch b {
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case AndAlso:
		return "&&"
	case OrElse:
		return "||"
	}
	return "?"
}

// Binary is the binary operation.
type Binary struct {
	Operator    BinaryOperator
	Left, Right Expression
}

// String implements fmt.Stringer interface.
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Operator.String() + " " + b.Right.String() + ")"
}

// Not is the logical negation.
type Not struct {
	Operand Expression
}

// String implements fmt.Stringer interface.
func (n *Not) String() string {
	return "!" + n.Operand.String()
}

// Conditional is the ternary expression.
type Conditional struct {
	Test, IfTrue, IfFalse Expression
}

// String implements fmt.Stringer interface.
func (c *Conditional) String() string {
	return "(" + c.Test.String() + " ? " + c.IfTrue.String() + " : " + c.IfFalse.String() + ")"
}

// MemberBinding sets the resource field to the value of the expression.
type MemberBinding struct {
	Field resource.Field
	Value Expression
}

// String implements fmt.Stringer interface.
func (m *MemberBinding) String() string {
	return m.Field.Name() + " = " + m.Value.String()
}

// MemberInit creates new resource instance with the fields set by the bindings.
type MemberInit struct {
	ResourceType *resource.Type
	Bindings     []*MemberBinding
}

// String implements fmt.Stringer interface.
func (m *MemberInit) String() string {
	bindings := make([]string, len(m.Bindings))
	for i, b := range m.Bindings {
		bindings[i] = b.String()
	}
	return "new " + m.ResourceType.GoType().Name() + " { " + strings.Join(bindings, ", ") + " }"
}

// IncludePath is the eager loaded relationship path argument of the Include method.
type IncludePath struct {
	Relationships []*resource.Relationship
}

// String implements fmt.Stringer interface.
func (i *IncludePath) String() string {
	names := make([]string, len(i.Relationships))
	for j, r := range i.Relationships {
		names[j] = r.Name()
	}
	return "\"" + strings.Join(names, ".") + "\""
}

// Method is the queryable method.
type Method int

// Queryable methods.
const (
	// Include eager loads the IncludePath argument.
	Include Method = iota
	Where
	OrderBy
	OrderByDescending
	ThenBy
	ThenByDescending
	Skip
	Take
	Select
	// Count counts the elements of the target collection.
	Count
	// Any checks if the target collection has any element matching the optional lambda argument.
	Any
	// Contains checks if the target collection contains the argument, or if the target text contains the argument.
	Contains
	StartsWith
	EndsWith
	// ToList materializes the nested collection.
	ToList
)

var methodNames = map[Method]string{
	Include:           "Include",
	Where:             "Where",
	OrderBy:           "OrderBy",
	OrderByDescending: "OrderByDescending",
	ThenBy:            "ThenBy",
	ThenByDescending:  "ThenByDescending",
	Skip:              "Skip",
	Take:              "Take",
	Select:            "Select",
	Count:             "Count",
	Any:               "Any",
	Contains:          "Contains",
	StartsWith:        "StartsWith",
	EndsWith:          "EndsWith",
	ToList:            "ToList",
}

// String implements fmt.Stringer interface.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "Unknown"
}

// Call is the method call on the target expression.
type Call struct {
	Method    Method
	Target    Expression
	Arguments []Expression
}

// NewCall creates new method call.
func NewCall(method Method, target Expression, arguments ...Expression) *Call {
	return &Call{Method: method, Target: target, Arguments: arguments}
}

// String implements fmt.Stringer interface.
func (c *Call) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Target.String() + "." + c.Method.String() + "(" + strings.Join(args, ", ") + ")"
}

func (*Source) queryable()        {}
func (*Parameter) queryable()     {}
func (*Lambda) queryable()        {}
func (*Member) queryable()        {}
func (*Constant) queryable()      {}
func (*Binary) queryable()        {}
func (*Not) queryable()           {}
func (*Conditional) queryable()   {}
func (*MemberBinding) queryable() {}
func (*MemberInit) queryable()    {}
func (*IncludePath) queryable()   {}
func (*Call) queryable()          {}
