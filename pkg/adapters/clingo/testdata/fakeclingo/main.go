// Command fakeclingo imitates the clingo command line for tests.
//
// With --text it echoes the program read from stdin. Otherwise it prints one
// `Answer:` block per entry of FAKECLINGO_ANSWERS (separated by "|") and exits with
// FAKECLINGO_EXIT. FAKECLINGO_MODE=fail reports an error, FAKECLINGO_MODE=hang blocks
// after the first answer. FAKECLINGO_RECORD names a file that receives the arguments
// and the program of the last call.
package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

func main() {
	args := os.Args[1:]
	program, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if path := os.Getenv("FAKECLINGO_RECORD"); path != "" {
		record := strings.Join(args, " ") + "\n" + string(program)
		if err := os.WriteFile(path, []byte(record), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if slices.Contains(args, "--text") {
		os.Stdout.Write(program)
		return
	}

	fmt.Println("clingo version 5.7.1")
	fmt.Println("Reading from stdin")
	switch os.Getenv("FAKECLINGO_MODE") {
	case "fail":
		fmt.Fprintln(os.Stderr, "*** ERROR: (clingo): fake failure")
		os.Exit(65)
	case "hang":
		fmt.Println("Solving...")
		fmt.Println("Answer: 1")
		fmt.Println("a")
		time.Sleep(time.Hour)
		return
	}

	fmt.Println("Solving...")
	var answers []string
	if v := os.Getenv("FAKECLINGO_ANSWERS"); v != "" {
		answers = strings.Split(v, "|")
	}
	for i, a := range answers {
		fmt.Printf("Answer: %d\n%s\n", i+1, a)
	}

	code := 20
	if len(answers) > 0 {
		code = 30
		fmt.Println("SATISFIABLE")
	} else {
		fmt.Println("UNSATISFIABLE")
	}
	if v := os.Getenv("FAKECLINGO_EXIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			code = n
		}
	}
	os.Exit(code)
}
