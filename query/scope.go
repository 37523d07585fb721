package query

import (
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// ExpressionInScope is the expression with the relationship chain scope it applies to.
// The nil Scope is the top-level scope.
type ExpressionInScope struct {
	Scope      *expression.ResourceFieldChain
	Expression expression.Expression
}

// String implements fmt.Stringer interface.
func (e ExpressionInScope) String() string {
	if e.Scope == nil {
		return e.Expression.String()
	}
	return e.Scope.String() + ": " + e.Expression.String()
}

// ConstraintProvider provides the expressions in scope read from the request.
type ConstraintProvider interface {
	Constraints() []ExpressionInScope
}

// ConstraintProviderFunc is the function that implements ConstraintProvider interface.
type ConstraintProviderFunc func() []ExpressionInScope

// Constraints implements ConstraintProvider interface.
func (c ConstraintProviderFunc) Constraints() []ExpressionInScope {
	return c()
}

// Constraints is the static set of the expressions in scope. It implements ConstraintProvider interface.
type Constraints []ExpressionInScope

// Constraints implements ConstraintProvider interface.
func (c Constraints) Constraints() []ExpressionInScope {
	return c
}

// inScope gets the expressions that applies to the exact relationship 'chain'. The nil chain is the top-level scope.
func inScope(constraints []ExpressionInScope, chain []resource.Field) []expression.Expression {
	var expressions []expression.Expression
	for _, c := range constraints {
		if !scopeEquals(c.Scope, chain) {
			continue
		}
		expressions = append(expressions, c.Expression)
	}
	return expressions
}

func scopeEquals(scope *expression.ResourceFieldChain, chain []resource.Field) bool {
	if scope == nil || len(chain) == 0 {
		return scope == nil && len(chain) == 0
	}
	fields := scope.Fields()
	if len(fields) != len(chain) {
		return false
	}
	for i := range fields {
		if fields[i] != chain[i] {
			return false
		}
	}
	return true
}
