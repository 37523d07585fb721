/*
Package builder lowers the composed query layers into the queryable method-call trees.

The QueryableBuilder applies the clauses in the order: Include, Where, OrderBy/ThenBy, Skip, Take, Select.
Each lambda parameter gets unique name derived from the resource type, released when the nested
builder finishes so that the sibling branches reuse the same names.
*/
package builder
