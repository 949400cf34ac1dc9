package programs

import (
	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

func init() {
	driver.Register(&driver.Program{
		Name: "assert",
		Doc:  "checks that its argument count is even, failing with a traceback otherwise",
		Main: assertMain,
		Cases: []driver.Case{
			{Name: "even", Args: []string{"a", "b"}, Stdout: "ok 2\n"},
			{Name: "odd", Args: []string{"a"}, ExitCode: 1, Fatal: rt.CodeAssertion},
			{Name: "none", Stdout: "ok 0\n"},
			{Name: "err", Args: []string{"--fail"}, ExitCode: 1, Fatal: rt.CodeUser},
		},
	})
}

func assertMain(env *rt.Env) {
	env.Calls.Call("assert.xc", 1, "main", func() {
		n := rt.Size(env.Args) - 1
		if n == 1 && env.Args.Get().At(1).Get().Value() == "--fail" {
			env.Calls.Call("assert.xc", 4, "fail", func() {
				msg := rt.StringOf("asked to fail")
				defer msg.Clear()
				env.Calls.Fail(msg)
			})
		}
		env.Calls.Call("assert.xc", 7, "check_even", func() {
			diag := rt.TupleOf("argc", n)
			defer diag.Clear()
			env.Calls.AssertMsg(n%2 == 0, diag)
		})
		env.Print("ok " + rt.Str(n))
	})
}
