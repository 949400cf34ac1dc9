package programs

import (
	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

func init() {
	driver.Register(&driver.Program{
		Name: "cat",
		Doc:  "copies stdin to stdout line by line, numbering lines with -n",
		Main: catMain,
		Cases: []driver.Case{
			{Name: "empty"},
			{Name: "lines", Stdin: "one\ntwo\r\nthree", Stdout: "one\ntwo\nthree\n"},
			{Name: "numbered", Args: []string{"-n"}, Stdin: "a\nb\n", Stdout: "1\ta\n2\tb\n"},
		},
	})
}

func catMain(env *rt.Env) {
	env.Calls.Call("cat.xc", 1, "main", func() {
		numbered := false
		if rt.Size(env.Args) > 1 {
			flag := env.Args.Get().At(1)
			numbered = flag.Get().Value() == "-n"
		}
		all := env.Stdin.Get().Read()
		defer all.Clear()
		if all.Get().Size() == 0 {
			return
		}
		lines := splitLines(all.Get().Value())
		defer lines.Clear()
		n := rt.Int(0)
		for line := range rt.Each[rt.Ptr[*rt.String]](lines) {
			n++
			if numbered {
				env.Stdout.Get().Write(n)
				env.Stdout.Get().Write(rt.Char('\t'))
			}
			env.Print(line)
		}
	})
}

// splitLines breaks text on newlines, dropping a trailing \r from each line
// and the empty piece after a final newline.
func splitLines(text string) rt.Ptr[*rt.Vector[rt.Ptr[*rt.String]]] {
	out := rt.VectorOf[rt.Ptr[*rt.String]]()
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		if i == len(text) && start == i {
			break
		}
		end := i
		if end > start && text[end-1] == '\r' {
			end--
		}
		s := rt.StringOf(text[start:end])
		out.Get().Push(s)
		s.Clear()
		start = i + 1
	}
	return out
}
