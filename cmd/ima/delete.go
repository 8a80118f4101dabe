package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iyesgames/ima/container"
	"github.com/iyesgames/ima/descriptor"
)

// doDelete removes one or more meshes by index. It never rewrites or
// re-bounds the shared vertex or index buffers: deleting a mesh record
// only shrinks the meshes list. The payload is still decompressed and
// recompressed in full to write the new file.
func doDelete(args []string) error {
	flags := flag.NewFlagSet("delete", flag.ExitOnError)
	meshesFlag := flags.String("meshes", "", "comma-separated mesh indices to delete")
	out := flags.String("out", "", "output file path (default: overwrite input)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: ima delete -meshes=i,j,k [-out=path] <file.ima>")
	}

	toDelete, err := parseIndexList(*meshesFlag)
	if err != nil {
		return err
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

	userData, indices, vertexBuffers, err := r.Full()
	if err != nil {
		return err
	}

	remove := make(map[int]bool, len(toDelete))
	for _, i := range toDelete {
		if i < 0 || i >= len(d.Meshes) {
			return fmt.Errorf("ima delete: mesh index %d out of range [0, %d)", i, len(d.Meshes))
		}

		remove[i] = true
	}

	kept := make([]descriptor.MeshInfo, 0, len(d.Meshes)-len(remove))
	for i, m := range d.Meshes {
		if !remove[i] {
			kept = append(kept, m)
		}
	}
	d.Meshes = kept

	file, err := container.Write(d, userData, indices, vertexBuffers)
	if err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = path
	}

	return os.WriteFile(outPath, file, 0o644)
}

func parseIndexList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("ima delete: -meshes is required")
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))

	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("ima delete: bad mesh index %q: %w", p, err)
		}

		out = append(out, n)
	}

	return out, nil
}
