package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iyesgames/ima/container"
	"github.com/iyesgames/ima/descriptor"
)

// descriptorSummary is the YAML-friendly view info prints; it mirrors
// descriptor.IyesMeshDescriptor but with attribute usages rendered as
// strings instead of the tagged-variant struct.
type descriptorSummary struct {
	NVertices   uint32   `yaml:"n_vertices"`
	UserDataLen uint32   `yaml:"user_data_len"`
	MeshCount   int      `yaml:"mesh_count"`
	Indices     *string  `yaml:"indices,omitempty"`
	NIndices    uint32   `yaml:"n_indices,omitempty"`
	Attributes  []string `yaml:"attributes"`
}

func summarize(d *descriptor.IyesMeshDescriptor) descriptorSummary {
	s := descriptorSummary{
		NVertices:   d.NVertices,
		UserDataLen: d.UserDataLen,
		MeshCount:   len(d.Meshes),
	}

	if d.Indices != nil {
		format := d.Indices.Format.String()
		s.Indices = &format
		s.NIndices = d.Indices.NIndices
	}

	for _, attr := range d.Attributes {
		s.Attributes = append(s.Attributes, fmt.Sprintf("%s: %s", attr.Usage, attr.Format))
	}

	return s
}

func doInfo(args []string) error {
	flags := flag.NewFlagSet("info", flag.ExitOnError)
	format := flags.String("format", "text", `output format: "text" or "yaml"`)

	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: ima info [-format=text|yaml] <file.ima>")
	}

	d, err := openDescriptor(rest[0], cliConfig.Verify)
	if err != nil {
		return err
	}

	summary := summarize(d)

	switch *format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()

		return enc.Encode(summary)
	case "text":
		fmt.Printf("n_vertices:    %d\n", summary.NVertices)
		fmt.Printf("user_data_len: %d\n", summary.UserDataLen)
		fmt.Printf("meshes:        %d\n", summary.MeshCount)

		if summary.Indices != nil {
			fmt.Printf("indices:       %s (%d)\n", *summary.Indices, summary.NIndices)
		} else {
			fmt.Println("indices:       none")
		}

		for _, attr := range summary.Attributes {
			fmt.Printf("attribute:     %s\n", attr)
		}

		return nil
	default:
		return fmt.Errorf("ima info: unknown format %q", *format)
	}
}

func doCheck(args []string) error {
	flags := flag.NewFlagSet("check", flag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: ima check <file.ima>")
	}

	if _, err := openDescriptor(rest[0], true); err != nil {
		return err
	}

	fmt.Println("ok")

	return nil
}

// openDescriptor reads path's header and descriptor, optionally also
// verifying the data checksum, and returns the decoded descriptor.
func openDescriptor(path string, verifyData bool) (*descriptor.IyesMeshDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := container.NewReader(data, container.WithVerify(verifyData))
	if err != nil {
		return nil, err
	}

	if _, err := r.OpenHeader(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d, err := r.OpenDescriptor()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}
