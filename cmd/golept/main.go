// Command golept is the CLI collaborator around the golept/lisp
// interpreter: a REPL when given no arguments, or a file runner
// (including the deftest convention for files ending in _test.lisp)
// when given one or more filenames. Flag parsing, REPL UI, file
// ingestion, and the deftest convention are all external-collaborator
// concerns the library (interp) deliberately stays out of.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/golept/lisp/interp"
)

func main() {
	gcGrowth := flag.Float64("gc-growth", 0, "GC growth-factor trigger threshold (0 uses the library default)")
	gcMinAlloc := flag.Int("gc-min-alloc", 0, "GC cold-start allocation threshold (0 uses the library default)")
	flag.Parse()

	opt := interp.Options{GCGrowthFactor: *gcGrowth, GCMinAlloc: *gcMinAlloc}

	args := flag.Args()
	if len(args) == 0 {
		runREPL(opt)
		return
	}

	failed := false
	for _, path := range args {
		if strings.HasSuffix(path, "_test.lisp") {
			ok, err := runTestFile(path, opt)
			if err != nil {
				log.Printf("%s: %v", path, err)
				failed = true
				continue
			}
			if !ok {
				failed = true
			}
			continue
		}
		if err := runFile(path, opt); err != nil {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func runFile(path string, opt interp.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return err
	}
	in := interp.New(opt)
	return in.Exec(data)
}

// runREPL implements the REPL collaborator from §6: read a line, feed
// it to EXEC, terminate on the literal line "(exit)". Line editing and
// history use github.com/peterh/liner rather than a hand-rolled
// bufio.Scanner loop.
func runREPL(opt interp.Options) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	in := interp.New(opt)

	for {
		text, err := line.Prompt("golept> ")
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				return
			}
			log.Println(err)
			return
		}
		if strings.TrimSpace(text) == "(exit)" {
			return
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		line.AppendHistory(text)
		_ = in.Exec([]byte(text))
	}
}

// runTestFile implements RUN-TESTS from §6: stream top-level forms,
// invoke only those whose head symbol is deftest, expect a true
// result for a pass, and print PASS/FAIL per test. It registers
// deftest as a builtin macro in the interpreter's global frame so
// that the forms it rewrites — (deftest name body...) -> (do
// body...) — run through the same evaluator as everything else,
// keeping the convention itself out of the core package.
func runTestFile(path string, opt interp.Options) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	in := interp.New(opt)
	in.Global.Put("deftest", in.Heap.NewBuiltinMacro("deftest", deftestExpand))

	r := interp.NewReader(in.Heap, data)
	pass, fail := 0, 0
	for {
		form, eof := r.Read()
		if eof {
			break
		}
		if form.IsError() {
			return false, fmt.Errorf("%s", form.String())
		}

		name, isTest := testName(form)
		result := interp.Eval(in.Heap, in.Global, form)
		if result.IsError() && !isTest {
			return false, fmt.Errorf("%s", result.String())
		}
		if !isTest {
			continue
		}
		if result.IsBool() && result.Bool() {
			fmt.Printf("PASS %s\n", name)
			pass++
		} else {
			fmt.Printf("FAIL %s", name)
			if result.IsError() {
				fmt.Printf(" (%s)", result.String())
			}
			fmt.Println()
			fail++
		}
	}

	fmt.Printf("%d passed, %d failed\n", pass, fail)
	return fail == 0, nil
}

func testName(form *interp.Object) (string, bool) {
	if !form.IsCons() || !form.Car().IsSymbol() || form.Car().Text() != "deftest" {
		return "", false
	}
	nameForm := form.Cdr().Car()
	if nameForm.IsSymbol() || nameForm.IsString() {
		return nameForm.Text(), true
	}
	return nameForm.String(), true
}

func deftestExpand(h *interp.Heap, frame *interp.Frame, args []*interp.Object) *interp.Object {
	if len(args) < 1 {
		return h.NewError("arity error: deftest expects (deftest name body...)")
	}
	body := append([]*interp.Object{h.NewSymbol("do")}, args[1:]...)
	return h.NewList(body...)
}
