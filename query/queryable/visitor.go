package queryable

import (
	"github.com/neuronlabs/jsonapi/errors"
)

// Visitor is the function set matching every queryable node type.
type Visitor[A, R any] interface {
	VisitSource(e *Source, arg A) (R, error)
	VisitParameter(e *Parameter, arg A) (R, error)
	VisitLambda(e *Lambda, arg A) (R, error)
	VisitMember(e *Member, arg A) (R, error)
	VisitConstant(e *Constant, arg A) (R, error)
	VisitBinary(e *Binary, arg A) (R, error)
	VisitNot(e *Not, arg A) (R, error)
	VisitConditional(e *Conditional, arg A) (R, error)
	VisitMemberInit(e *MemberInit, arg A) (R, error)
	VisitIncludePath(e *IncludePath, arg A) (R, error)
	VisitCall(e *Call, arg A) (R, error)
}

// Visit matches the node type and calls related Visitor method.
func Visit[A, R any](e Expression, v Visitor[A, R], arg A) (R, error) {
	switch n := e.(type) {
	case *Source:
		return v.VisitSource(n, arg)
	case *Parameter:
		return v.VisitParameter(n, arg)
	case *Lambda:
		return v.VisitLambda(n, arg)
	case *Member:
		return v.VisitMember(n, arg)
	case *Constant:
		return v.VisitConstant(n, arg)
	case *Binary:
		return v.VisitBinary(n, arg)
	case *Not:
		return v.VisitNot(n, arg)
	case *Conditional:
		return v.VisitConditional(n, arg)
	case *MemberInit:
		return v.VisitMemberInit(n, arg)
	case *IncludePath:
		return v.VisitIncludePath(n, arg)
	case *Call:
		return v.VisitCall(n, arg)
	}
	var zero R
	return zero, errors.WrapDetf(ErrUnsupportedExpression, "unknown queryable expression type: '%T'", e)
}

// Walk calls the 'fn' for the 'e' and all its descendants in the depth-first order.
// The descendants are not visited when the 'fn' returns false.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case *Lambda:
		Walk(n.Parameter, fn)
		Walk(n.Body, fn)
	case *Member:
		Walk(n.Target, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Not:
		Walk(n.Operand, fn)
	case *Conditional:
		Walk(n.Test, fn)
		Walk(n.IfTrue, fn)
		Walk(n.IfFalse, fn)
	case *MemberBinding:
		Walk(n.Value, fn)
	case *MemberInit:
		for _, b := range n.Bindings {
			Walk(b, fn)
		}
	case *Call:
		Walk(n.Target, fn)
		for _, a := range n.Arguments {
			Walk(a, fn)
		}
	}
}

// Calls gets the chain of the method calls applied on the root of the 'e' in the order of application.
// i.e. for articles.Where(...).Take(10) it returns [Where, Take].
func Calls(e Expression) []*Call {
	var calls []*Call
	for {
		call, ok := e.(*Call)
		if !ok {
			break
		}
		calls = append(calls, call)
		e = call.Target
	}
	for i, j := 0, len(calls)-1; i < j; i, j = i+1, j-1 {
		calls[i], calls[j] = calls[j], calls[i]
	}
	return calls
}

// BaseVisitor is the Visitor that returns the ErrUnsupportedExpression error for all the nodes.
type BaseVisitor[A, R any] struct{}

func unsupported[R any](e Expression) (R, error) {
	var zero R
	return zero, errors.WrapDetf(ErrUnsupportedExpression, "queryable expression: '%T' - '%s' is not supported", e, e)
}

// VisitSource implements Visitor interface.
func (BaseVisitor[A, R]) VisitSource(e *Source, _ A) (R, error) { return unsupported[R](e) }

// VisitParameter implements Visitor interface.
func (BaseVisitor[A, R]) VisitParameter(e *Parameter, _ A) (R, error) { return unsupported[R](e) }

// VisitLambda implements Visitor interface.
func (BaseVisitor[A, R]) VisitLambda(e *Lambda, _ A) (R, error) { return unsupported[R](e) }

// VisitMember implements Visitor interface.
func (BaseVisitor[A, R]) VisitMember(e *Member, _ A) (R, error) { return unsupported[R](e) }

// VisitConstant implements Visitor interface.
func (BaseVisitor[A, R]) VisitConstant(e *Constant, _ A) (R, error) { return unsupported[R](e) }

// VisitBinary implements Visitor interface.
func (BaseVisitor[A, R]) VisitBinary(e *Binary, _ A) (R, error) { return unsupported[R](e) }

// VisitNot implements Visitor interface.
func (BaseVisitor[A, R]) VisitNot(e *Not, _ A) (R, error) { return unsupported[R](e) }

// VisitConditional implements Visitor interface.
func (BaseVisitor[A, R]) VisitConditional(e *Conditional, _ A) (R, error) { return unsupported[R](e) }

// VisitMemberInit implements Visitor interface.
func (BaseVisitor[A, R]) VisitMemberInit(e *MemberInit, _ A) (R, error) { return unsupported[R](e) }

// VisitIncludePath implements Visitor interface.
func (BaseVisitor[A, R]) VisitIncludePath(e *IncludePath, _ A) (R, error) { return unsupported[R](e) }

// VisitCall implements Visitor interface.
func (BaseVisitor[A, R]) VisitCall(e *Call, _ A) (R, error) { return unsupported[R](e) }
