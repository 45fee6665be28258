package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-conduit/blueprint"
	"github.com/robert-malhotra/go-conduit/conduit"
	"github.com/robert-malhotra/go-conduit/internal/meshfile"
	"github.com/robert-malhotra/go-conduit/relay"
)

var exampleForVerifyCmd = `
  meshconduit verify mesh.yaml
  meshconduit verify mesh.cdt
`

func newVerifyCmd(root *rootOpts) *cobra.Command {
	opts := &convertOpts{}

	cmd := &cobra.Command{
		Use:     "verify FILE",
		Short:   "Check that a description or bundle yields a valid blueprint mesh",
		Example: exampleForVerifyCmd,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadTree(args[0], opts)
			if err != nil {
				return err
			}
			if err := blueprint.Verify(node); err != nil {
				if merr, ok := err.(*multierror.Error); ok {
					for _, e := range merr.Errors {
						fmt.Fprintf(cmd.OutOrStdout(), "FAIL %v\n", e)
					}
				}
				return errors.Errorf("%s is not a valid mesh", args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", args[0])
			return err
		},
	}

	cmd.Flags().StringVar(&opts.topology, "topology", "", "name of the topology when converting")
	cmd.Flags().StringVar(&opts.coordset, "coordset", "", "name of the coordinate set when converting")
	return cmd
}

// loadTree converts descriptions and loads anything else as a bundle.
func loadTree(path string, opts *convertOpts) (*conduit.Node, error) {
	if _, err := meshfile.FormatOf(path); err == nil {
		return convertDescription(path, opts)
	}
	return relay.Load(path)
}
