package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iyesgames/ima/container"
)

func doUserData(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: ima user-data <get|set> ...")
	}

	switch args[0] {
	case "get":
		return doUserDataGet(args[1:])
	case "set":
		return doUserDataSet(args[1:])
	default:
		return fmt.Errorf("ima user-data: unknown subcommand %q", args[0])
	}
}

func doUserDataGet(args []string) error {
	flags := flag.NewFlagSet("user-data get", flag.ExitOnError)
	out := flags.String("out", "", "output file path (default: stdout)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: ima user-data get [-out=path] <file.ima>")
	}

	data, err := os.ReadFile(rest[0])
	if err != nil {
		return err
	}

	r, err := container.NewReader(data)
	if err != nil {
		return err
	}

	if _, err := r.OpenHeader(); err != nil {
		return err
	}

	if _, err := r.OpenDescriptor(); err != nil {
		return err
	}

	userData, err := r.UserData()
	if err != nil {
		return err
	}

	if *out == "" {
		_, err := os.Stdout.Write(userData)
		return err
	}

	return os.WriteFile(*out, userData, 0o644)
}

func doUserDataSet(args []string) error {
	flags := flag.NewFlagSet("user-data set", flag.ExitOnError)
	dataPath := flags.String("data", "", "path to the new user-data bytes")
	out := flags.String("out", "", "output file path (default: overwrite input)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: ima user-data set -data=path [-out=path] <file.ima>")
	}

	if *dataPath == "" {
		return fmt.Errorf("ima user-data set: -data is required")
	}

	path := rest[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	r, err := container.NewReader(data)
	if err != nil {
		return err
	}

	if _, err := r.OpenHeader(); err != nil {
		return err
	}

	d, err := r.OpenDescriptor()
	if err != nil {
		return err
	}

	_, indices, vertexBuffers, err := r.Full()
	if err != nil {
		return err
	}

	newUserData, err := os.ReadFile(*dataPath)
	if err != nil {
		return err
	}

	d.UserDataLen = uint32(len(newUserData))

	file, err := container.Write(d, newUserData, indices, vertexBuffers)
	if err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = path
	}

	return os.WriteFile(outPath, file, 0o644)
}
