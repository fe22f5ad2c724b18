package ast

import (
	"fmt"
	"math/big"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Inspect traverses the tree rooted at n in depth-first order. If f returns
// false the children of that node are skipped. Back references such as
// ClassDecl.Outer are not followed.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	walkStruct(reflect.ValueOf(n), f)
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func walkStruct(v reflect.Value, f func(Node) bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("ast") == "-" {
			continue
		}
		if sf.Anonymous {
			walkStruct(v.Field(i), f)
			continue
		}
		walkField(v.Field(i), f)
	}
}

func walkField(v reflect.Value, f func(Node) bool) {
	switch v.Kind() {
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			walkField(v.Index(i), f)
		}
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return
		}
		if n, ok := v.Interface().(Node); ok {
			Inspect(n, f)
		}
	}
}

// ToTree converts n into nested maps and slices suitable for serialisation.
// Every map has a "kind" and a "span" entry; zero valued fields are left out.
func ToTree(n Node) map[string]any {
	v := reflect.ValueOf(n)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	out := map[string]any{
		"kind": v.Type().Name(),
		"span": n.Location().String(),
	}
	if s, ok := n.(Statement); ok && len(s.Labels()) > 0 {
		out["labels"] = s.Labels()
	}
	if c, ok := n.(*ConstantExpr); ok {
		out["type"] = string(c.Type)
		out["directType"] = c.DirectType
		switch c.Value.(type) {
		case *big.Int, *big.Rat:
			out["value"] = c.Text()
		default:
			out["value"] = c.Value
		}
		return out
	}
	fillTree(v, out)
	return out
}

func fillTree(v reflect.Value, out map[string]any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("ast") == "-" {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous {
			if fv.Kind() == reflect.Struct {
				fillTree(fv, out)
			}
			continue
		}
		if val, ok := treeValue(fv); ok {
			out[lowerFirst(sf.Name)] = val
		}
	}
}

func treeValue(v reflect.Value) (any, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
		if n, ok := v.Interface().(Node); ok {
			return ToTree(n), true
		}
		return treeValue(v.Elem())
	case reflect.Slice:
		if v.Len() == 0 {
			return nil, false
		}
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if val, ok := treeValue(v.Index(i)); ok {
				items = append(items, val)
			}
		}
		return items, true
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		text := s.String()
		return text, text != ""
	}
	switch v.Kind() {
	case reflect.Bool:
		return true, v.Bool()
	case reflect.String:
		return v.String(), v.String() != ""
	case reflect.Int, reflect.Int32, reflect.Int64:
		return v.Int(), v.Int() != 0
	}
	return nil, false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
