package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/iyesgames/ima/container"
	"github.com/iyesgames/ima/objimport"
)

func doConvertOBJ(args []string) error {
	flags := flag.NewFlagSet("convert-obj", flag.ExitOnError)
	out := flags.String("out", "", "output file path")
	level := flags.Int("level", 0, "zstd compression level (0: use config default)")
	cacheDir := flags.String("cache", "", "parse-cache directory (default: none)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) != 1 || *out == "" {
		return fmt.Errorf("usage: ima convert-obj -out=mesh.ima [-level=N] [-cache=dir] <mesh.obj>")
	}

	source, err := os.ReadFile(rest[0])
	if err != nil {
		return err
	}

	var mesh *objimport.Mesh

	if *cacheDir != "" {
		cache, err := objimport.NewCache(*cacheDir)
		if err != nil {
			return err
		}

		mesh, err = objimport.ParseCached(cache, source)
		if err != nil {
			return err
		}
	} else {
		mesh, err = objimport.Parse(bytes.NewReader(source))
		if err != nil {
			return err
		}
	}

	d, indices, vertexBuffers := objimport.Convert(mesh)

	effectiveLevel := *level
	if effectiveLevel == 0 {
		effectiveLevel = cliConfig.CompressionLevel
	}

	var opts []container.WriterOption
	if effectiveLevel > 0 {
		opts = append(opts, container.WithCompressionLevel(effectiveLevel))
	}

	file, err := container.Write(d, nil, indices, vertexBuffers, opts...)
	if err != nil {
		return err
	}

	return os.WriteFile(*out, file, 0o644)
}
