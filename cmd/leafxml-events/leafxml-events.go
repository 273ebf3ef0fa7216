package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/leafxml/leafxml"
)

type cmdopts struct {
	Version bool `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("leafxml-events: using leafxml version %s\n", leafxml.Version)
}

func showUsage() {
	fmt.Printf(`Usage : leafxml-events [options] XMLfiles ...
	Parse the XML files and print the event trace ('-' reads stdin)
	--version : display the version of the library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	for _, f := range args {
		var buf []byte
		name := f
		if f == "-" {
			name = "stdin"
			buf, err = io.ReadAll(os.Stdin)
		} else {
			buf, err = os.ReadFile(f)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		p, err := leafxml.NewFromBytes(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q: %s\n", name, err)
			return 1
		}
		p.SetSourceName(name)

		var d leafxml.Dumper
		if err := d.Dump(os.Stdout, p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}
