// Package buildutil provides utilities for extracting attributes from
// buildtools AST nodes.
package buildutil

import (
	"strconv"

	"github.com/bazelbuild/buildtools/build"
)

// Attr returns the value expression of a named argument, or nil when the
// call does not set it.
func Attr(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		lhs, ok := assign.LHS.(*build.Ident)
		if !ok || lhs.Name != name {
			continue
		}
		return assign.RHS
	}
	return nil
}

// String extracts a string attribute from a function call by name.
// If name is empty and the call has positional arguments, returns the first
// positional string argument.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	// Handle first positional argument when name is empty
	if name == "" && len(call.List) > 0 {
		if str, ok := call.List[0].(*build.StringExpr); ok {
			return str.Value
		}
		return ""
	}

	if str, ok := Attr(call, name).(*build.StringExpr); ok {
		return str.Value
	}
	return ""
}

// StringList extracts a list of strings attribute from a function call by name.
// Returns nil if the attribute is not found or not a list.
// Non-string elements in the list are silently skipped.
func StringList(call *build.CallExpr, name string) []string {
	list, ok := Attr(call, name).(*build.ListExpr)
	if !ok {
		return nil
	}
	return stringsOf(list)
}

// StringOrList extracts an attribute that may be written either as a single
// string or as a list of strings. A single string becomes a one-element
// list. Returns nil if the attribute is not found or has another type.
func StringOrList(call *build.CallExpr, name string) []string {
	switch e := Attr(call, name).(type) {
	case *build.StringExpr:
		return []string{e.Value}
	case *build.ListExpr:
		return StringList(call, name)
	default:
		return nil
	}
}

// StringListDict extracts a dict attribute whose values are strings or lists
// of strings. Entries with non-string keys or other value types are skipped.
// Returns nil if the attribute is not found or not a dict.
func StringListDict(call *build.CallExpr, name string) map[string][]string {
	dict, ok := Attr(call, name).(*build.DictExpr)
	if !ok {
		return nil
	}
	result := make(map[string][]string, len(dict.List))
	for key, value := range ExtractValue(dict).(map[string]any) {
		switch v := value.(type) {
		case string:
			result[key] = []string{v}
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					list = append(list, s)
				}
			}
			result[key] = list
		}
	}
	return result
}

func stringsOf(list *build.ListExpr) []string {
	result := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		if str, ok := elem.(*build.StringExpr); ok {
			result = append(result, str.Value)
		}
	}
	return result
}

// ExtractValue converts a build.Expr to a Go value.
// Handles strings, integers, booleans (True/False/None), lists, and dicts.
// Returns the raw expression for unhandled types.
func ExtractValue(expr build.Expr) any {
	switch e := expr.(type) {
	case *build.StringExpr:
		return e.Value
	case *build.LiteralExpr:
		if val, err := strconv.Atoi(e.Token); err == nil {
			return val
		}
		return e.Token
	case *build.Ident:
		switch e.Name {
		case "True":
			return true
		case "False":
			return false
		case "None":
			return nil
		default:
			return e.Name
		}
	case *build.ListExpr:
		result := make([]any, 0, len(e.List))
		for _, item := range e.List {
			result = append(result, ExtractValue(item))
		}
		return result
	case *build.DictExpr:
		result := make(map[string]any)
		for _, kv := range e.List {
			if keyStr, ok := kv.Key.(*build.StringExpr); ok {
				result[keyStr.Value] = ExtractValue(kv.Value)
			}
		}
		return result
	default:
		return expr
	}
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

// IsFuncCall returns true if the call is for the specified function name.
func IsFuncCall(call *build.CallExpr, name string) bool {
	return FuncName(call) == name
}
