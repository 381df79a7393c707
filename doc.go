// Package gawk implements a small AWK-like byte-oriented text-scanning
// engine: it scans a byte buffer line by line, tests each line against a
// literal or regular-expression pattern, optionally splits matching lines
// into fields, and can substitute matches in place. The engine is
// byte-exact and Unicode-unaware by design, and it never interprets an
// encoding.
//
// The matching and field-extraction core is shared by a CPU path and a
// goroutine-pool stand-in for a GPU compute-kernel path; both interpret
// the same compiled representation (see the nfa package), so results are
// identical regardless of which backend actually ran (see
// backend.Dispatcher.Dispatch and the gpu package tests).
//
// Argument parsing, file I/O, and a full AWK-style interpreter with
// BEGIN/END blocks and user-defined functions are out of scope: this
// package is the engine a collaborator CLI or interpreter drives, not that
// collaborator itself.
//
// Basic usage:
//
//	s := gawk.NewScanner()
//	res, err := s.Scan(input, []byte("error"), gawk.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range res.Matches {
//	    fmt.Println(string(input[m.LineStart:m.LineEnd]))
//	}
package gawk
