package rt

import (
	"cmp"
	"fmt"
	"math"
)

// Op names an arithmetic operator for dynamic dispatch.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Equal reports a == b. Values of different kinds are never equal; there is
// no implicit conversion between kinds.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindChar:
		return a.c == b.c
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return cmp.Compare(a.f, b.f) == 0
	default:
		return equalObjects(a.ptr.ref(), b.ptr.ref())
	}
}

// Compare orders a against b. Kinds must match; comparing across kinds is a
// fatal TypeError. Floats order NaN first so the order stays total.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		typeMismatch(a.kind.String(), b.kind.String())
	}
	switch a.kind {
	case KindBool:
		return compareBool(a.b, b.b)
	case KindChar:
		return cmp.Compare(a.c, b.c)
	case KindInt:
		return cmp.Compare(a.i, b.i)
	case KindFloat:
		return cmp.Compare(a.f, b.f)
	default:
		return compareObjects(a.ptr.ref(), b.ptr.ref())
	}
}

// Arith applies op to two values of the same kind. Ints wrap on overflow and
// fail on division by zero; floats follow IEEE-754. Pointer operands dispatch
// through DynArith.
func Arith(op Op, a, b Value) Value {
	if a.kind != b.kind {
		typeMismatch(a.kind.String(), b.kind.String())
	}
	switch a.kind {
	case KindInt:
		return MakeInt(arithInt(op, a.i, b.i))
	case KindFloat:
		return MakeFloat(arithFloat(op, a.f, b.f))
	case KindPointer:
		lhs := a.ptr.Get()
		d, ok := lhs.(DynArith)
		if !ok {
			unsupported(op.String(), typeName(lhs))
		}
		res, ok := d.ArithObject(op, b.ptr.Get())
		if !ok {
			unsupported(op.String(), typeName(lhs)+" and "+typeName(b.ptr.Get()))
		}
		return valueOfObject(res)
	default:
		unsupported(op.String(), a.kind.String())
		return Value{}
	}
}

// Increment returns v + 1 for ints, floats and chars. A pointer operand must
// reference a Box, which is incremented in place.
func Increment(v Value) Value {
	switch v.kind {
	case KindInt:
		return MakeInt(v.i + 1)
	case KindFloat:
		return MakeFloat(v.f + 1)
	case KindChar:
		return MakeChar(v.c + 1)
	case KindPointer:
		if b, ok := v.ptr.Get().(*Box); ok {
			return valueOfObject(b.Incr())
		}
		unsupported("++", typeName(v.ptr.Get()))
	default:
		unsupported("++", v.kind.String())
	}
	return Value{}
}

func arithInt(op Op, x, y Int) Int {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv, OpMod:
		if y == 0 {
			fatalf(CodeDivideByZero, "integer %s by zero", map[Op]string{OpDiv: "division", OpMod: "modulo"}[op])
		}
		if op == OpDiv {
			return x / y
		}
		return x % y
	}
	unsupported(op.String(), "int")
	return 0
}

func arithFloat(op Op, x, y Float) Float {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	case OpMod:
		return math.Mod(x, y)
	}
	unsupported(op.String(), "float")
	return 0
}

func compareBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}

// equalObjects compares two possibly-nil objects. Identity implies equality;
// otherwise the left operand must be DynEquatable.
func equalObjects(x, y Object) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	if x == y {
		return true
	}
	d, ok := x.(DynEquatable)
	if !ok {
		unsupported("==", typeName(x))
	}
	return d.EqualObject(y)
}

// compareObjects orders two possibly-nil objects; null sorts first.
func compareObjects(x, y Object) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}
	d, ok := x.(DynOrderable)
	if !ok {
		unsupported("<", typeName(x))
	}
	return d.CompareObject(y)
}

// equalElems and compareElems give containers one comparison rule for every
// element type they can hold: primitives, Values, handles and raw objects.
func equalElems(a, b any) bool {
	switch x := a.(type) {
	case Int:
		return x == b.(Int)
	case Float:
		return cmp.Compare(x, b.(Float)) == 0
	case Char:
		return x == b.(Char)
	case Bool:
		return x == b.(Bool)
	case int:
		return x == b.(int)
	case string:
		return x == b.(string)
	case Value:
		return Equal(x, b.(Value))
	case handle:
		return equalObjects(x.ref(), b.(handle).ref())
	case Object:
		return equalObjects(x, b.(Object))
	default:
		unsupported("==", fmt.Sprintf("%T", a))
		return false
	}
}

func compareElems(a, b any) int {
	switch x := a.(type) {
	case Int:
		return cmp.Compare(x, b.(Int))
	case Float:
		return cmp.Compare(x, b.(Float))
	case Char:
		return cmp.Compare(x, b.(Char))
	case Bool:
		return compareBool(x, b.(Bool))
	case int:
		return cmp.Compare(x, b.(int))
	case string:
		return cmp.Compare(x, b.(string))
	case Value:
		return Compare(x, b.(Value))
	case handle:
		return compareObjects(x.ref(), b.(handle).ref())
	case Object:
		return compareObjects(x, b.(Object))
	default:
		unsupported("<", fmt.Sprintf("%T", a))
		return 0
	}
}
