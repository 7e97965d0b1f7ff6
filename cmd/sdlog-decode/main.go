// Command sdlog-decode is an interactive inspector for binary log files
// written by the sdlog kit.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/stemsat/sdlog/internal/record"
)

func main() {
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	if len(os.Args) > 1 {
		openFile(os.Args[1])
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("input error:", err)
			return
		}

		words, err := shellquote.Split(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "exit":
			return
		case "help":
			printHelp()
		case "open":
			if len(words) != 2 {
				fmt.Println("usage: open <file>")
				continue
			}
			openFile(words[1])
		case "info":
			printInfo()
		case "dump":
			limit := len(loaded)
			if len(words) == 2 {
				n, err := strconv.Atoi(words[1])
				if err != nil || n < 0 {
					fmt.Println("usage: dump [n]")
					continue
				}
				if n < limit {
					limit = n
				}
			}
			dumpEntries(limit)
		default:
			fmt.Println("Invalid Command")
		}
	}
}

var (
	loaded     []record.Entry
	loadedPath string
)

func openFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("open error:", err)
		return
	}
	defer f.Close()

	var entries []record.Entry
	s := record.NewScanner(f)
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		fmt.Printf("warning: stopped at malformed data after %d entries: %v\n", len(entries), err)
	}

	loaded = entries
	loadedPath = path
	fmt.Printf("loaded %d entries from %s\n", len(entries), path)
}

func printInfo() {
	if loadedPath == "" {
		fmt.Println("no file loaded, use: open <file>")
		return
	}

	counts := make(map[record.SensorType]int)
	haveTimeRef := false
	var unix, millis uint32

	for _, e := range loaded {
		if e.TimeRef {
			haveTimeRef = true
			unix, millis = e.UnixSeconds, e.SessionMillis
			continue
		}
		counts[e.Record.Type]++
	}

	fmt.Println("file:", loadedPath)
	if haveTimeRef {
		fmt.Printf("time reference: unix=%d at session millis=%d\n", unix, millis)
	} else {
		fmt.Println("time reference: none (clock was not running)")
	}
	for typ, n := range counts {
		fmt.Printf("  %-12s %d\n", typ, n)
	}
}

func dumpEntries(limit int) {
	if loadedPath == "" {
		fmt.Println("no file loaded, use: open <file>")
		return
	}

	for _, e := range loaded[:limit] {
		if e.TimeRef {
			fmt.Printf("time ref      unix=%d millis=%d\n", e.UnixSeconds, e.SessionMillis)
			continue
		}
		r := e.Record
		fmt.Printf("%8d ms  %-12s id=%d values=%v\n", r.Timestamp, r.Type, r.ID, r.Values)
	}
}

func printHelp() {
	fmt.Print(`
Available Commands:

open <file>
  Load a binary log file and decode its records.

info
  Show the time reference and per-sensor record counts.

dump [n]
  Print the first n decoded entries (all when n is omitted).

help
  Show this help message.

exit
  Quit.
`)
}
