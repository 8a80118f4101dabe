// Command ima inspects, merges, and converts IMA mesh files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

// cliConfig holds the CLI-wide defaults every subcommand consults,
// loaded once in main from an optional YAML file.
var cliConfig = defaultConfig()

var commands = []struct {
	name string
	do   func(args []string) error
}{
	{"info", doInfo},
	{"check", doCheck},
	{"merge", doMerge},
	{"delete", doDelete},
	{"user-data", doUserData},
	{"convert-obj", doConvertOBJ},
	{"help", doHelp},
}

func usage() {
	fmt.Fprint(os.Stderr, `ima is a tool for inspecting and manipulating IMA mesh files.

Usage:

	ima command [arguments]

The commands are:

	info         print a file's descriptor summary
	check        verify a file's checksums and invariants
	merge        combine meshes from multiple files into one
	delete       remove meshes by index
	user-data    get or set a file's user-data region
	convert-obj  convert a Wavefront OBJ file to IMA

`)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML defaults file (compression_level, verify)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	cliConfig = cfg

	if err := run(flag.Args()); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("ima: no command given")
	}

	for _, c := range commands {
		if args[0] == c.name {
			return c.do(args[1:])
		}
	}

	usage()

	return fmt.Errorf("ima: unknown command %q", args[0])
}

func doHelp(args []string) error {
	usage()
	return nil
}
