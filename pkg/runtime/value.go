// Package runtime defines the HopeLang value model and the lexical scope
// chain the evaluator runs against.
package runtime

import (
	"context"

	"github.com/sandrolain/hopelang/pkg/types"
)

// Kind enumerates runtime value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindNativeFunction
	KindFunction
)

var kindNames = [...]string{
	KindNull:           "null",
	KindBoolean:        "boolean",
	KindNumber:         "number",
	KindString:         "string",
	KindObject:         "object",
	KindNativeFunction: "native-fn",
	KindFunction:       "function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is any runtime value. The set of implementations is closed.
type Value interface {
	Kind() Kind
	value()
}

// Null is the absent value.
type Null struct{}

// Boolean wraps a bool.
type Boolean bool

// Number is the only numeric type.
type Number float64

// String wraps text.
type String string

// Object is a name to value mapping. Object literals currently always
// produce an empty one.
type Object struct {
	Properties map[string]Value
}

// NativeFunc is the host call contract. It receives the evaluated arguments
// and the calling Environment, which is where a native resolves "print".
type NativeFunc func(ctx context.Context, args []Value, env *Environment) (Value, error)

// NativeFunction is a host-implemented callable.
type NativeFunction struct {
	Name string
	Fn   NativeFunc
}

// Function is a user-defined closure over its declaration Environment.
type Function struct {
	Name   string
	Params []string
	Body   []types.Statement
	Env    *Environment
}

func (Null) Kind() Kind            { return KindNull }
func (Boolean) Kind() Kind         { return KindBoolean }
func (Number) Kind() Kind          { return KindNumber }
func (String) Kind() Kind          { return KindString }
func (*Object) Kind() Kind         { return KindObject }
func (*NativeFunction) Kind() Kind { return KindNativeFunction }
func (*Function) Kind() Kind       { return KindFunction }

func (Null) value()            {}
func (Boolean) value()         {}
func (Number) value()          {}
func (String) value()          {}
func (*Object) value()         {}
func (*NativeFunction) value() {}
func (*Function) value()       {}

// NewObject returns an Object with an empty property table.
func NewObject() *Object {
	return &Object{Properties: map[string]Value{}}
}

// NewNative wraps fn as a NativeFunction value.
func NewNative(name string, fn NativeFunc) *NativeFunction {
	return &NativeFunction{Name: name, Fn: fn}
}

// Truthy applies the condition rule used by if and while.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, Null:
		return false
	case Boolean:
		return bool(v)
	case Number:
		// NaN compares unequal to everything, including itself.
		return v != 0 && v == v
	case String:
		return v != ""
	default:
		return true
	}
}

// Equal reports whether a and b have the same kind and payload. Objects and
// functions compare by identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Boolean:
		return av == b.(Boolean)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case *Object:
		return av == b.(*Object)
	case *NativeFunction:
		return av == b.(*NativeFunction)
	case *Function:
		return av == b.(*Function)
	}
	return false
}
