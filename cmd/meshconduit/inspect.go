package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-conduit/conduit"
	"github.com/robert-malhotra/go-conduit/relay"
)

type inspectOpts struct {
	maxDepth int
	values   bool
}

var exampleForInspectCmd = `
  meshconduit inspect mesh.cdt
  meshconduit inspect mesh.cdt --max-depth 2
  meshconduit inspect mesh.cdt --values
`

func newInspectCmd(_ *rootOpts) *cobra.Command {
	opts := &inspectOpts{}

	cmd := &cobra.Command{
		Use:     "inspect BUNDLE",
		Short:   "Print the structure of a saved bundle",
		Example: exampleForInspectCmd,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			h, err := readBundleHeader(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "=== %s ===\n", args[0])
			fmt.Fprintf(out, "byte order: %s, compression: %s, shuffled: %t, payload: %d bytes\n\n",
				h.ByteOrder, h.Compression, h.Shuffled, h.Length)

			node, err := relay.Load(args[0])
			if err != nil {
				return err
			}
			if opts.values {
				text, err := node.ToYAML()
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, text)
				return err
			}
			return printTree(out, node, opts.maxDepth)
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "stop descending below this depth, 0 means no limit")
	cmd.Flags().BoolVar(&opts.values, "values", false, "print the whole tree as YAML")
	return cmd
}

func printTree(out io.Writer, root *conduit.Node, maxDepth int) error {
	return conduit.Walk(root, func(path string, n *conduit.Node) error {
		depth := 0
		if path != "" {
			depth = strings.Count(path, "/") + 1
		}
		if maxDepth > 0 && depth > maxDepth {
			return nil
		}
		indent := strings.Repeat("  ", depth)
		name := n.Name()
		if path == "" {
			name = "/"
		}
		switch {
		case n.IsObject():
			fmt.Fprintf(out, "%s%s: %d children\n", indent, name, n.NumberOfChildren())
		case n.IsEmpty():
			fmt.Fprintf(out, "%s%s: [empty]\n", indent, name)
		default:
			fmt.Fprintf(out, "%s%s: %s\n", indent, name, n.DataType())
		}
		return nil
	})
}

func readBundleHeader(path string) (relay.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return relay.Header{}, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return relay.ReadHeader(f)
}
