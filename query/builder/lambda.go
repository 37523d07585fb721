package builder

import (
	"strconv"

	"github.com/iancoleman/strcase"

	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
)

// LambdaParameterNameFactory creates unique lambda parameter names. The names are derived from the resource
// type go name in camel case - 'article', and suffixed with the number on collision - 'article1'.
type LambdaParameterNameFactory struct {
	used map[string]struct{}
}

// NewLambdaParameterNameFactory creates new name factory.
func NewLambdaParameterNameFactory() *LambdaParameterNameFactory {
	return &LambdaParameterNameFactory{used: map[string]struct{}{}}
}

// Create reserves the unique name for the 'typeName'. The name is available again after the scope is released.
func (f *LambdaParameterNameFactory) Create(typeName string) *LambdaParameterNameScope {
	base := strcase.ToLowerCamel(typeName)
	name := base
	for counter := 1; ; counter++ {
		if _, ok := f.used[name]; !ok {
			break
		}
		name = base + strconv.Itoa(counter)
	}
	f.used[name] = struct{}{}
	return &LambdaParameterNameScope{Name: name, factory: f}
}

func (f *LambdaParameterNameFactory) release(name string) {
	delete(f.used, name)
}

// LambdaParameterNameScope is the reserved lambda parameter name.
type LambdaParameterNameScope struct {
	Name    string
	factory *LambdaParameterNameFactory
}

// Release releases the name.
func (s *LambdaParameterNameScope) Release() {
	if s.factory != nil {
		s.factory.release(s.Name)
		s.factory = nil
	}
}

// LambdaScope is the lambda parameter with the expression used to access the resource fields.
// The accessor is the parameter itself or a member of the outer scope accessor.
type LambdaScope struct {
	Parameter *queryable.Parameter
	Accessor  queryable.Expression

	name *LambdaParameterNameScope
}

// Release releases the lambda parameter name.
func (s *LambdaScope) Release() {
	s.name.Release()
}

// LambdaScopeFactory creates the lambda scopes with unique parameter names.
type LambdaScopeFactory struct {
	names *LambdaParameterNameFactory
}

// NewLambdaScopeFactory creates new scope factory.
func NewLambdaScopeFactory(names *LambdaParameterNameFactory) *LambdaScopeFactory {
	if names == nil {
		names = NewLambdaParameterNameFactory()
	}
	return &LambdaScopeFactory{names: names}
}

// CreateScope creates the lambda scope for the resource type 'rt'. If the 'accessor' is nil
// the parameter is the accessor.
func (f *LambdaScopeFactory) CreateScope(rt *resource.Type, accessor queryable.Expression) *LambdaScope {
	name := f.names.Create(rt.GoType().Name())
	parameter := &queryable.Parameter{Name: name.Name, ResourceType: rt}
	if accessor == nil {
		accessor = parameter
	}
	return &LambdaScope{Parameter: parameter, Accessor: accessor, name: name}
}

// access creates the member access chain of the 'fields' starting from the 'target'.
func access(target queryable.Expression, fields ...resource.Field) queryable.Expression {
	for _, f := range fields {
		target = &queryable.Member{Target: target, Field: f}
	}
	return target
}
