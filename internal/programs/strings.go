package programs

import (
	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

func init() {
	driver.Register(&driver.Program{
		Name: "strings",
		Doc:  "exercises String concatenation, ordering, indexing and repr",
		Main: stringsMain,
		Cases: []driver.Case{
			{Name: "default", Stdout: "foobar\n6\ntrue\n'b'\n\"tab\\there\"\nT[1, \"x\", 2.5]\n<3>\n"},
		},
	})
}

func stringsMain(env *rt.Env) {
	env.Calls.Call("strings.xc", 1, "main", func() {
		foo := rt.StringOf("foo")
		defer foo.Clear()
		bar := rt.StringOf("bar")
		defer bar.Clear()

		joined := rt.Add(foo, bar)
		defer joined.Clear()
		env.Print(joined)
		env.Print(rt.Size(joined))
		env.Print(rt.Lt(bar, foo))
		env.Print(rt.Repr(joined.Get().At(3)))

		tab := rt.ReprOf("tab\there")
		defer tab.Clear()
		env.Print(tab)

		x := rt.StringOf("x")
		defer x.Clear()
		t := rt.TupleOf(rt.Int(1), x, rt.Float(2.5))
		defer t.Clear()
		env.Print(t)

		boxed := rt.Objectify(rt.Int(2))
		defer boxed.Clear()
		b := rt.Cast[*rt.Box](boxed)
		defer b.Clear()
		b.Get().Incr()
		env.Print("<" + rt.Str(b) + ">")
	})
}
