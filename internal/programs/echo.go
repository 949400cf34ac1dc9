package programs

import (
	"strings"

	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

func init() {
	driver.Register(&driver.Program{
		Name: "echo",
		Doc:  "prints its arguments separated by spaces",
		Main: echoMain,
		Cases: []driver.Case{
			{Name: "none", Stdout: "\n"},
			{Name: "words", Args: []string{"hello", "xc"}, Stdout: "hello xc\n"},
			{Name: "nfc", Args: []string{"cafe\u0301"}, Stdout: "caf\u00e9\n"},
		},
	})
}

func echoMain(env *rt.Env) {
	env.Calls.Call("echo.xc", 1, "main", func() {
		args := env.Args.Get()
		words := make([]string, 0, args.Size())
		for i := rt.Int(1); i < args.Size(); i++ {
			words = append(words, args.At(i).Get().Value())
		}
		env.Print(strings.Join(words, " "))
	})
}
