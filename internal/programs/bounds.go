package programs

import (
	"strconv"

	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

func init() {
	driver.Register(&driver.Program{
		Name: "bounds",
		Doc:  "indexes a three element vector with its first argument",
		Main: boundsMain,
		Cases: []driver.Case{
			{Name: "inside", Args: []string{"2"}, Stdout: "'c'\n"},
			{Name: "negative", Args: []string{"-1"}, ExitCode: 1, Fatal: rt.CodeOutOfBounds},
			{Name: "past-end", Args: []string{"3"}, ExitCode: 1, Fatal: rt.CodeOutOfBounds},
			{Name: "not-a-number", Args: []string{"x"}, ExitCode: 1, Fatal: rt.CodeUser},
			{Name: "usage", Stdout: "usage: bounds <index>\n", ExitCode: 2},
		},
	})
}

func boundsMain(env *rt.Env) {
	env.Calls.Call("bounds.xc", 1, "main", func() {
		if rt.Size(env.Args) != 2 {
			env.Print("usage: bounds <index>")
			env.Exit(2)
			return
		}
		arg := env.Args.Get().At(1).Get().Value()
		i, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			env.Calls.Fatal("not an index: " + strconv.Quote(arg))
		}
		v := rt.VectorOf[rt.Char]('a', 'b', 'c')
		defer v.Clear()
		c := rt.Invoke(env.Calls, "bounds.xc", 9, "pick", func() rt.Char {
			return v.Get().At(rt.Int(i))
		})
		env.Print(rt.Repr(c))
	})
}
