package programs

import (
	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

func init() {
	driver.Register(&driver.Program{
		Name: "vectors",
		Doc:  "builds Vector<Int> [5, 1, 2, 3] and compares it with other vectors",
		Main: vectorsMain,
		Cases: []driver.Case{
			{Name: "default", Stdout: "1\n4\n[5, 1, 2, 3]\n11\ntrue\nfalse\n[5, 1, 2]\n3\n"},
		},
	})
}

func vectorsMain(env *rt.Env) {
	env.Calls.Call("vectors.xc", 1, "main", func() {
		v := rt.VectorOf[rt.Int]()
		defer v.Clear()

		v.Get().Push(5)
		env.Print(rt.Size(v))
		for _, x := range []rt.Int{1, 2, 3} {
			v.Get().Push(x)
		}
		env.Print(rt.Size(v))
		env.Print(v)

		sum := rt.Invoke(env.Calls, "vectors.xc", 12, "sum", func() rt.Int {
			return sumInts(v)
		})
		env.Print(sum)

		w := rt.VectorOf[rt.Int](5, 1, 2, 4)
		defer w.Clear()
		env.Print(rt.Lt(v, w))
		env.Print(rt.Eq(v, w))

		last := v.Get().Pop()
		env.Print(v)
		env.Print(last)
	})
}

func sumInts(v rt.Ptr[*rt.Vector[rt.Int]]) rt.Int {
	var total rt.Int
	for x := range rt.Each[rt.Int](v) {
		total += x
	}
	return total
}
