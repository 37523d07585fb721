package memory

import (
	"context"
	"reflect"
	"sort"
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/internal/typeconv"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
)

// sequence is the evaluated collection of the resource models - pointers to the structs.
type sequence struct {
	resourceType *resource.Type
	items        []reflect.Value
	includes     *includeTree
	orderings    []ordering
	// projected is true when the items are the results of the Select.
	projected bool
}

type ordering struct {
	key        *queryable.Lambda
	descending bool
}

func (s *sequence) with(items []reflect.Value) *sequence {
	cp := *s
	cp.items = items
	return &cp
}

// projected wraps the models created by the member init expressions.
type projected struct {
	value reflect.Value
}

type environment struct {
	ctx            context.Context
	store          *Store
	compareStrings func(a, b string) int
	parameter      *queryable.Parameter
	value          reflect.Value
	parent         *environment
}

func (e *environment) bind(p *queryable.Parameter, v reflect.Value) *environment {
	return &environment{ctx: e.ctx, store: e.store, compareStrings: e.compareStrings, parameter: p, value: v, parent: e}
}

func (e *environment) lookup(p *queryable.Parameter) (reflect.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if env.parameter == p {
			return env.value, true
		}
	}
	return reflect.Value{}, false
}

// evaluator evaluates the queryable expressions by reflection. The results are one of: *sequence,
// reflect.Value (invalid for the null), projected or []interface{} for the constant lists.
type evaluator struct{}

var _ queryable.Visitor[*environment, interface{}] = &evaluator{}

func (ev *evaluator) eval(e queryable.Expression, env *environment) (interface{}, error) {
	return queryable.Visit[*environment, interface{}](e, ev, env)
}

func (ev *evaluator) evalValue(e queryable.Expression, env *environment) (reflect.Value, error) {
	result, err := ev.eval(e, env)
	if err != nil {
		return reflect.Value{}, err
	}
	switch r := result.(type) {
	case reflect.Value:
		return r, nil
	case projected:
		return r.value, nil
	}
	return reflect.Value{}, errors.WrapDetf(ErrInternal, "expression: '%s' is not a single value", e)
}

func (ev *evaluator) evalBool(e queryable.Expression, env *environment) (bool, error) {
	v, err := ev.evalValue(e, env)
	if err != nil {
		return false, err
	}
	if v.Kind() != reflect.Bool {
		return false, errors.WrapDetf(ErrInternal, "expression: '%s' is not a predicate", e)
	}
	return v.Bool(), nil
}

func (ev *evaluator) evalSequence(e queryable.Expression, env *environment) (*sequence, error) {
	result, err := ev.eval(e, env)
	if err != nil {
		return nil, err
	}
	seq, ok := result.(*sequence)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "expression: '%s' is not a collection", e)
	}
	return seq, nil
}

// VisitSource implements queryable.Visitor interface.
func (ev *evaluator) VisitSource(e *queryable.Source, env *environment) (interface{}, error) {
	return &sequence{resourceType: e.ResourceType, items: env.store.source(e.ResourceType), includes: newIncludeTree()}, nil
}

// VisitParameter implements queryable.Visitor interface.
func (ev *evaluator) VisitParameter(e *queryable.Parameter, env *environment) (interface{}, error) {
	v, ok := env.lookup(e)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "unbound lambda parameter: '%s'", e)
	}
	return v, nil
}

// VisitLambda implements queryable.Visitor interface.
func (ev *evaluator) VisitLambda(e *queryable.Lambda, _ *environment) (interface{}, error) {
	return nil, errors.WrapDetf(ErrInternal, "lambda: '%s' evaluated outside of the method call", e)
}

// VisitMember implements queryable.Visitor interface.
func (ev *evaluator) VisitMember(e *queryable.Member, env *environment) (interface{}, error) {
	target, err := ev.evalValue(e.Target, env)
	if err != nil {
		return nil, err
	}
	rel, isRelationship := e.Field.(*resource.Relationship)
	base, ok := typeconv.Dereference(target)
	if !target.IsValid() || !ok {
		if isRelationship && rel.IsToMany() {
			return &sequence{resourceType: rel.RightType(), includes: eagerTree(rel.RightType(), map[*resource.Type]struct{}{})}, nil
		}
		return reflect.Value{}, nil
	}
	if base.Kind() != reflect.Struct {
		return nil, errors.WrapDetf(ErrInternal, "member: '%s' target is not a resource", e)
	}
	field := base.FieldByIndex(e.Field.Index())
	if isRelationship && rel.IsToMany() {
		items := make([]reflect.Value, 0, field.Len())
		for i := 0; i < field.Len(); i++ {
			item := field.Index(i)
			if item.Kind() == reflect.Struct {
				item = item.Addr()
			} else if item.IsNil() {
				continue
			}
			items = append(items, item)
		}
		return &sequence{resourceType: rel.RightType(), items: items, includes: eagerTree(rel.RightType(), map[*resource.Type]struct{}{})}, nil
	}
	return field, nil
}

// VisitConstant implements queryable.Visitor interface.
func (ev *evaluator) VisitConstant(e *queryable.Constant, _ *environment) (interface{}, error) {
	switch v := e.Value.(type) {
	case nil:
		return reflect.Value{}, nil
	case []interface{}:
		return v, nil
	}
	return reflect.ValueOf(e.Value), nil
}

// VisitBinary implements queryable.Visitor interface.
func (ev *evaluator) VisitBinary(e *queryable.Binary, env *environment) (interface{}, error) {
	switch e.Operator {
	case queryable.AndAlso, queryable.OrElse:
		left, err := ev.evalBool(e.Left, env)
		if err != nil {
			return nil, err
		}
		if (e.Operator == queryable.AndAlso) != left {
			return reflect.ValueOf(left), nil
		}
		right, err := ev.evalBool(e.Right, env)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(right), nil
	}
	left, err := ev.evalValue(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalValue(e.Right, env)
	if err != nil {
		return nil, err
	}
	leftNull, rightNull := isNull(left), isNull(right)
	switch e.Operator {
	case queryable.Equal, queryable.NotEqual:
		equal := leftNull && rightNull
		if !leftNull && !rightNull {
			equal = env.equal(left, right)
		}
		return reflect.ValueOf(equal == (e.Operator == queryable.Equal)), nil
	}
	if leftNull || rightNull {
		return reflect.ValueOf(false), nil
	}
	c, ok := typeconv.Compare(left.Interface(), right.Interface(), env.compareStrings)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "operands of: '%s' are not comparable", e)
	}
	var result bool
	switch e.Operator {
	case queryable.LessThan:
		result = c < 0
	case queryable.LessThanOrEqual:
		result = c <= 0
	case queryable.GreaterThan:
		result = c > 0
	case queryable.GreaterThanOrEqual:
		result = c >= 0
	default:
		return nil, errors.WrapDetf(ErrInternal, "unknown binary operator: '%s'", e.Operator)
	}
	return reflect.ValueOf(result), nil
}

// VisitNot implements queryable.Visitor interface.
func (ev *evaluator) VisitNot(e *queryable.Not, env *environment) (interface{}, error) {
	operand, err := ev.evalBool(e.Operand, env)
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(!operand), nil
}

// VisitConditional implements queryable.Visitor interface.
func (ev *evaluator) VisitConditional(e *queryable.Conditional, env *environment) (interface{}, error) {
	test, err := ev.evalBool(e.Test, env)
	if err != nil {
		return nil, err
	}
	if test {
		return ev.eval(e.IfTrue, env)
	}
	return ev.eval(e.IfFalse, env)
}

// VisitMemberInit implements queryable.Visitor interface.
func (ev *evaluator) VisitMemberInit(e *queryable.MemberInit, env *environment) (interface{}, error) {
	model := e.ResourceType.NewValue()
	for _, binding := range e.Bindings {
		value, err := ev.eval(binding.Value, env)
		if err != nil {
			return nil, err
		}
		field := model.Elem().FieldByIndex(binding.Field.Index())
		if err = assign(field, binding.Field, value); err != nil {
			return nil, err
		}
	}
	return projected{value: model}, nil
}

// VisitIncludePath implements queryable.Visitor interface.
func (ev *evaluator) VisitIncludePath(e *queryable.IncludePath, _ *environment) (interface{}, error) {
	return nil, errors.WrapDetf(ErrInternal, "include path: '%s' evaluated outside of the Include method", e)
}

// VisitCall implements queryable.Visitor interface.
func (ev *evaluator) VisitCall(e *queryable.Call, env *environment) (interface{}, error) {
	if err := env.ctx.Err(); err != nil {
		return nil, err
	}
	switch e.Method {
	case queryable.Contains, queryable.StartsWith, queryable.EndsWith:
		return ev.evalTextOrMembership(e, env)
	}
	seq, err := ev.evalSequence(e.Target, env)
	if err != nil {
		return nil, err
	}
	switch e.Method {
	case queryable.Include:
		return ev.include(e, seq)
	case queryable.Where:
		return ev.where(e, seq, env)
	case queryable.OrderBy, queryable.OrderByDescending, queryable.ThenBy, queryable.ThenByDescending:
		return ev.orderBy(e, seq, env)
	case queryable.Skip, queryable.Take:
		return ev.skipTake(e, seq, env)
	case queryable.Select:
		return ev.selectItems(e, seq, env)
	case queryable.Count:
		return reflect.ValueOf(int64(len(seq.items))), nil
	case queryable.Any:
		return ev.anyItem(e, seq, env)
	case queryable.ToList:
		return seq, nil
	}
	return nil, errors.WrapDetf(queryable.ErrUnsupportedExpression, "unsupported method call: '%s'", e.Method)
}

func (ev *evaluator) lambda(e *queryable.Call) (*queryable.Lambda, error) {
	if len(e.Arguments) != 1 {
		return nil, errors.WrapDetf(ErrInternal, "method: '%s' requires single argument", e.Method)
	}
	l, ok := e.Arguments[0].(*queryable.Lambda)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "method: '%s' argument is not a lambda", e.Method)
	}
	return l, nil
}

func (ev *evaluator) include(e *queryable.Call, seq *sequence) (interface{}, error) {
	if len(e.Arguments) != 1 {
		return nil, errors.WrapDetf(ErrInternal, "include requires single path argument")
	}
	path, ok := e.Arguments[0].(*queryable.IncludePath)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "include argument: '%s' is not a path", e.Arguments[0])
	}
	result := seq.with(seq.items)
	result.includes = seq.includes.with(path.Relationships)
	return result, nil
}

func (ev *evaluator) where(e *queryable.Call, seq *sequence, env *environment) (interface{}, error) {
	predicate, err := ev.lambda(e)
	if err != nil {
		return nil, err
	}
	items := make([]reflect.Value, 0, len(seq.items))
	for _, item := range seq.items {
		ok, err := ev.evalBool(predicate.Body, env.bind(predicate.Parameter, item))
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
	}
	return seq.with(items), nil
}

func (ev *evaluator) orderBy(e *queryable.Call, seq *sequence, env *environment) (interface{}, error) {
	key, err := ev.lambda(e)
	if err != nil {
		return nil, err
	}
	result := seq.with(append([]reflect.Value(nil), seq.items...))
	o := ordering{key: key, descending: e.Method == queryable.OrderByDescending || e.Method == queryable.ThenByDescending}
	if e.Method == queryable.OrderBy || e.Method == queryable.OrderByDescending {
		result.orderings = []ordering{o}
	} else {
		result.orderings = append(append([]ordering(nil), seq.orderings...), o)
	}

	keys := make([][]reflect.Value, len(result.items))
	for i, item := range result.items {
		keys[i] = make([]reflect.Value, len(result.orderings))
		for j, o := range result.orderings {
			if keys[i][j], err = ev.evalValue(o.key.Body, env.bind(o.key.Parameter, item)); err != nil {
				return nil, err
			}
		}
	}
	indices := make([]int, len(result.items))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		for j, o := range result.orderings {
			c := env.compare(keys[indices[a]][j], keys[indices[b]][j])
			if c == 0 {
				continue
			}
			if o.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	sorted := make([]reflect.Value, len(indices))
	for i, index := range indices {
		sorted[i] = result.items[index]
	}
	result.items = sorted
	return result, nil
}

func (ev *evaluator) skipTake(e *queryable.Call, seq *sequence, env *environment) (interface{}, error) {
	if len(e.Arguments) != 1 {
		return nil, errors.WrapDetf(ErrInternal, "method: '%s' requires single argument", e.Method)
	}
	v, err := ev.evalValue(e.Arguments[0], env)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() || v.Kind() < reflect.Int || v.Kind() > reflect.Int64 {
		return nil, errors.WrapDetf(ErrInternal, "method: '%s' argument is not an integer", e.Method)
	}
	n := int(v.Int())
	if n < 0 {
		n = 0
	}
	if n > len(seq.items) {
		n = len(seq.items)
	}
	if e.Method == queryable.Skip {
		return seq.with(seq.items[n:]), nil
	}
	return seq.with(seq.items[:n]), nil
}

func (ev *evaluator) selectItems(e *queryable.Call, seq *sequence, env *environment) (interface{}, error) {
	selector, err := ev.lambda(e)
	if err != nil {
		return nil, err
	}
	items := make([]reflect.Value, len(seq.items))
	for i, item := range seq.items {
		if items[i], err = ev.evalValue(selector.Body, env.bind(selector.Parameter, item)); err != nil {
			return nil, err
		}
	}
	result := seq.with(items)
	result.projected = true
	return result, nil
}

func (ev *evaluator) anyItem(e *queryable.Call, seq *sequence, env *environment) (interface{}, error) {
	if len(e.Arguments) == 0 {
		return reflect.ValueOf(len(seq.items) > 0), nil
	}
	predicate, err := ev.lambda(e)
	if err != nil {
		return nil, err
	}
	for _, item := range seq.items {
		ok, err := ev.evalBool(predicate.Body, env.bind(predicate.Parameter, item))
		if err != nil {
			return nil, err
		}
		if ok {
			return reflect.ValueOf(true), nil
		}
	}
	return reflect.ValueOf(false), nil
}

func (ev *evaluator) evalTextOrMembership(e *queryable.Call, env *environment) (interface{}, error) {
	if len(e.Arguments) != 1 {
		return nil, errors.WrapDetf(ErrInternal, "method: '%s' requires single argument", e.Method)
	}
	target, err := ev.eval(e.Target, env)
	if err != nil {
		return nil, err
	}
	argument, err := ev.evalValue(e.Arguments[0], env)
	if err != nil {
		return nil, err
	}
	if list, ok := target.([]interface{}); ok && e.Method == queryable.Contains {
		if isNull(argument) {
			return reflect.ValueOf(false), nil
		}
		for _, element := range list {
			if element != nil && env.equal(argument, reflect.ValueOf(element)) {
				return reflect.ValueOf(true), nil
			}
		}
		return reflect.ValueOf(false), nil
	}
	text, ok := target.(reflect.Value)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "method: '%s' target is not a text", e.Method)
	}
	text, notNull := typeconv.Dereference(text)
	argument, _ = typeconv.Dereference(argument)
	if !text.IsValid() || !notNull || !argument.IsValid() {
		return reflect.ValueOf(false), nil
	}
	if text.Kind() != reflect.String || argument.Kind() != reflect.String {
		return nil, errors.WrapDetf(ErrInternal, "method: '%s' operands are not strings", e.Method)
	}
	var result bool
	switch e.Method {
	case queryable.Contains:
		result = strings.Contains(text.String(), argument.String())
	case queryable.StartsWith:
		result = strings.HasPrefix(text.String(), argument.String())
	case queryable.EndsWith:
		result = strings.HasSuffix(text.String(), argument.String())
	}
	return reflect.ValueOf(result), nil
}

// equal compares the strings by their bytes, the collation is used only for the ordering.
func (e *environment) equal(a, b reflect.Value) bool {
	if c, ok := typeconv.Compare(a.Interface(), b.Interface(), nil); ok {
		return c == 0
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// compare orders the values with the nulls first.
func (e *environment) compare(a, b reflect.Value) int {
	aNull, bNull := isNull(a), isNull(b)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return -1
	case bNull:
		return 1
	}
	c, _ := typeconv.Compare(a.Interface(), b.Interface(), e.compareStrings)
	return c
}

func isNull(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}
