package rt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
		get  func(Value) any
		want any
	}{
		{"bool", MakeBool(true), KindBool, func(v Value) any { return v.AsBool() }, true},
		{"char", MakeChar('x'), KindChar, func(v Value) any { return v.AsChar() }, Char('x')},
		{"int", MakeInt(-42), KindInt, func(v Value) any { return v.AsInt() }, Int(-42)},
		{"int max", MakeInt(math.MaxInt64), KindInt, func(v Value) any { return v.AsInt() }, Int(math.MaxInt64)},
		{"float", MakeFloat(2.5), KindFloat, func(v Value) any { return v.AsFloat() }, Float(2.5)},
	}
	accessors := map[Kind]func(Value){
		KindBool:    func(v Value) { v.AsBool() },
		KindChar:    func(v Value) { v.AsChar() },
		KindInt:     func(v Value) { v.AsInt() },
		KindFloat:   func(v Value) { v.AsFloat() },
		KindPointer: func(v Value) { v.AsPtr() },
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.want, tt.get(tt.v))
			for k, access := range accessors {
				if k == tt.kind {
					continue
				}
				err := requireFatal(t, CodeTypeMismatch, func() { access(tt.v) })
				assert.Contains(t, err.Message, "expected "+k.String()+", got "+tt.kind.String())
			}
		})
	}
}

func TestValueNoCoercion(t *testing.T) {
	assert.False(t, Equal(MakeInt(1), MakeFloat(1)))
	assert.False(t, Equal(MakeChar('1'), MakeInt('1')))
	requireFatal(t, CodeTypeMismatch, func() { Compare(MakeInt(1), MakeFloat(1)) })
	requireFatal(t, CodeTypeMismatch, func() { Arith(OpAdd, MakeInt(1), MakeFloat(1)) })
}

func TestValueSetReleasesOldReferent(t *testing.T) {
	h := freshHeap(t)
	s := StringOf("a")
	v := MakePtr(s)
	assert.Equal(t, 2, s.RefCount())

	v.Set(MakeInt(3))
	assert.Equal(t, KindInt, v.Kind())
	assert.Equal(t, Int(3), v.AsInt())
	assert.Equal(t, 1, s.RefCount())

	// Set to the same referent keeps it alive throughout.
	w := MakePtr(s)
	v.Set(w)
	v.Set(w)
	assert.Equal(t, 3, s.RefCount())

	w.Clear()
	v.Clear()
	assert.True(t, v.IsNil())
	s.Clear()
	assert.Equal(t, 0, h.Live())
}

func TestValueOf(t *testing.T) {
	h := freshHeap(t)
	assert.Equal(t, KindBool, ValueOf(true).Kind())
	assert.Equal(t, KindChar, ValueOf(byte('c')).Kind())
	assert.Equal(t, Int(7), ValueOf(7).AsInt())
	assert.Equal(t, Int(7), ValueOf(uint32(7)).AsInt())
	assert.Equal(t, Float(1.5), ValueOf(float32(1.5)).AsFloat())
	assert.True(t, ValueOf(nil).IsNil())

	requireFatal(t, CodeTypeMismatch, func() { ValueOf(uint64(math.MaxUint64)) })
	requireFatal(t, CodeTypeMismatch, func() { ValueOf(struct{}{}) })

	s := StringOf("x")
	v := ValueOf(s)
	assert.Equal(t, 2, s.RefCount(), "handles pass through retained")
	got := PtrOf[*String](v)
	assert.Equal(t, "x", got.Get().Value())
	requireFatal(t, CodeTypeMismatch, func() { PtrOf[*Tuple](v) })
	requireFatal(t, CodeTypeMismatch, func() { PtrOf[*String](MakeInt(1)) })

	boxed := ValueOf("go string")
	assert.Equal(t, `"go string"`, Repr(boxed))

	got.Clear()
	v.Clear()
	s.Clear()
	boxed.Clear()
	assert.Equal(t, 0, h.Live())
}

func TestArith(t *testing.T) {
	assert.Equal(t, Int(7), Arith(OpAdd, MakeInt(3), MakeInt(4)).AsInt())
	assert.Equal(t, Int(-1), Arith(OpSub, MakeInt(3), MakeInt(4)).AsInt())
	assert.Equal(t, Int(12), Arith(OpMul, MakeInt(3), MakeInt(4)).AsInt())
	assert.Equal(t, Int(2), Arith(OpDiv, MakeInt(9), MakeInt(4)).AsInt())
	assert.Equal(t, Int(1), Arith(OpMod, MakeInt(9), MakeInt(4)).AsInt())
	assert.Equal(t, Int(math.MinInt64), Arith(OpAdd, MakeInt(math.MaxInt64), MakeInt(1)).AsInt())
	assert.Equal(t, Float(2.25), Arith(OpDiv, MakeFloat(9), MakeFloat(4)).AsFloat())
	assert.Equal(t, Float(1), Arith(OpMod, MakeFloat(9), MakeFloat(4)).AsFloat())
	assert.True(t, math.IsInf(Arith(OpDiv, MakeFloat(1), MakeFloat(0)).AsFloat(), 1))

	err := requireFatal(t, CodeDivideByZero, func() { Arith(OpDiv, MakeInt(1), MakeInt(0)) })
	assert.Equal(t, "ZeroDivisionError: integer division by zero", err.Error())
	requireFatal(t, CodeDivideByZero, func() { Arith(OpMod, MakeInt(1), MakeInt(0)) })
	requireFatal(t, CodeUnsupported, func() { Arith(OpAdd, MakeBool(true), MakeBool(false)) })
}

func TestArithOnObjects(t *testing.T) {
	h := freshHeap(t)
	a := ValueOf("foo")
	b := ValueOf("bar")
	sum := Arith(OpAdd, a, b)
	assert.Equal(t, `"foobar"`, Repr(sum))

	err := requireFatal(t, CodeUnsupported, func() { Arith(OpMul, a, b) })
	assert.Contains(t, err.Message, "*")

	bx, by := New(NewBox(MakeInt(2))), New(NewBox(MakeInt(5)))
	x, y := MakePtr(bx), MakePtr(by)
	bx.Clear()
	by.Clear()
	prod := Arith(OpMul, x, y)
	assert.Equal(t, "10", Str(prod))

	for _, v := range []*Value{&a, &b, &sum, &x, &y, &prod} {
		v.Clear()
	}
	assert.Equal(t, 0, h.Live())
}

func TestIncrement(t *testing.T) {
	freshHeap(t)
	assert.Equal(t, Int(2), Increment(MakeInt(1)).AsInt())
	assert.Equal(t, Char('b'), Increment(MakeChar('a')).AsChar())
	assert.Equal(t, Float(1.5), Increment(MakeFloat(0.5)).AsFloat())
	requireFatal(t, CodeUnsupported, func() { Increment(MakeBool(true)) })

	box := New(NewBox(MakeInt(41)))
	v := MakePtr(box)
	r := Increment(v)
	assert.Equal(t, Int(42), Deref[Value](box).AsInt())
	assert.True(t, Equal(v, r), "box incremented in place")

	same := Incr(box)
	assert.True(t, same.Same(box))
	assert.Equal(t, "43", Str(box))

	same.Clear()
	r.Clear()
	v.Clear()
	box.Clear()
}

func TestFloatOrderIsTotal(t *testing.T) {
	nan := MakeFloat(math.NaN())
	assert.True(t, Equal(nan, nan))
	assert.Equal(t, -1, Compare(nan, MakeFloat(math.Inf(-1))))
}

func TestObjectify(t *testing.T) {
	h := freshHeap(t)
	p := Objectify(5)
	require.False(t, p.IsNil())
	assert.Equal(t, "Box", typeName(p.Get()))
	assert.Equal(t, "5", Str(p))

	s := StringOf("s")
	q := Objectify(s)
	assert.True(t, q.Get() == Object(s.Get()), "objects are not boxed twice")

	p.Clear()
	q.Clear()
	s.Clear()
	assert.Equal(t, 0, h.Live())
}
