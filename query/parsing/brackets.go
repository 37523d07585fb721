package parsing

import (
	"strings"

	"github.com/neuronlabs/jsonapi/query"
)

// SplitBracketParameter splits the parameters within the '[' and ']' brackets.
func SplitBracketParameter(bracketed string) (values []string, err error) {
	doubleOpen := func() error {
		return newParameterError(query.ErrSyntax, bracketed, "open square bracket '[' found, without closing ']'")
	}

	// set initial indexes
	startIndex := -1
	endIndex := -1

	for i := 0; i < len(bracketed); i++ {
		switch bracketed[i] {
		case '[':
			if startIndex > endIndex {
				return nil, doubleOpen()
			}
			startIndex = i
		case ']':
			// if opening bracket not set or in case of more than one brackets
			// if start was not set before this endIndex
			if startIndex == -1 || startIndex < endIndex {
				return nil, newParameterError(query.ErrSyntax, bracketed, "close square bracket ']' found, without opening '['")
			}
			endIndex = i
			values = append(values, bracketed[startIndex+1:endIndex])
		}
	}
	if (startIndex != -1 && endIndex == -1) || startIndex > endIndex {
		return nil, doubleOpen()
	}
	return values, nil
}

// splitParameterName splits the parameter name i.e. 'filter[comments.author]' into the base
// name 'filter' and the bracket content 'comments.author'. The bracket is optional.
func splitParameterName(parameter string) (base, bracket string, hasBracket bool, err error) {
	i := strings.IndexByte(parameter, '[')
	if i == -1 {
		if strings.IndexByte(parameter, ']') != -1 {
			return "", "", false, newParameterError(query.ErrSyntax, parameter, "close square bracket ']' found, without opening '['")
		}
		return parameter, "", false, nil
	}
	values, err := SplitBracketParameter(parameter[i:])
	if err != nil {
		if perr, ok := err.(*InvalidQueryStringParameterError); ok {
			perr.Parameter = parameter
		}
		return "", "", false, err
	}
	if len(values) != 1 || !strings.HasSuffix(parameter, "]") {
		return "", "", false, newParameterError(query.ErrSyntax, parameter, "exactly one bracketed value expected")
	}
	return parameter[:i], values[0], true, nil
}
