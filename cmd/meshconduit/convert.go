package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-conduit/conduit"
	"github.com/robert-malhotra/go-conduit/insitu"
	"github.com/robert-malhotra/go-conduit/internal/meshfile"
	"github.com/robert-malhotra/go-conduit/relay"
)

const (
	formatYAML   = "yaml"
	formatJSON   = "json"
	formatBundle = "bundle"
)

var supportedFormats = []string{formatYAML, formatJSON, formatBundle}

const (
	codecZstd    = "zstd"
	codecDeflate = "deflate"
)

var supportedCodecs = []string{codecZstd, codecDeflate}

type convertOpts struct {
	output   string
	topology string
	coordset string
}

var longConvertCmdDescription = `Convert a dataset description into a mesh blueprint tree.

The tree is printed as YAML or JSON, or saved as a binary bundle that the
inspect and verify commands can read back.`

var exampleForConvertCmd = `
  meshconduit convert mesh.yaml
  meshconduit convert mesh.toml --format json --output mesh.json
  meshconduit convert mesh.yaml --format bundle --compress 3 --output mesh.cdt
  meshconduit convert mesh.yaml --format bundle --codec deflate --compress 9 --shuffle -o mesh.cdt
`

func newConvertCmd(root *rootOpts) *cobra.Command {
	opts := &convertOpts{}

	cmd := &cobra.Command{
		Use:     "convert FILE",
		Short:   "Convert a dataset description into a blueprint tree",
		Long:    longConvertCmdDescription,
		Example: exampleForConvertCmd,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := root.v
			_ = v.BindPFlag("output.format", cmd.Flags().Lookup("format"))
			_ = v.BindPFlag("output.compression", cmd.Flags().Lookup("compress"))
			_ = v.BindPFlag("output.codec", cmd.Flags().Lookup("codec"))
			_ = v.BindPFlag("output.shuffle", cmd.Flags().Lookup("shuffle"))

			bundleOpts, err := bundleOptions(v.GetString("output.codec"), v.GetInt("output.compression"), v.GetBool("output.shuffle"))
			if err != nil {
				return err
			}
			node, err := convertDescription(args[0], opts)
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), node, opts.output, v.GetString("output.format"), bundleOpts)
		},
	}

	flags := cmd.Flags()
	flags.String("format", formatYAML, fmt.Sprintf("output format, the possible values can be %v", supportedFormats))
	flags.Int("compress", 0, "compression level for bundles, 0 disables compression")
	flags.String("codec", codecZstd, fmt.Sprintf("bundle compression codec, the possible values can be %v", supportedCodecs))
	flags.Bool("shuffle", false, "byte shuffle bundle leaf data before compression")
	flags.StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	flags.StringVar(&opts.topology, "topology", "", "name of the topology (default \"mesh\")")
	flags.StringVar(&opts.coordset, "coordset", "", "name of the coordinate set (default \"coords\")")
	return cmd
}

// convertDescription reads a description and converts it into a new tree.
// Conversion warnings are logged and do not fail the command.
func convertDescription(path string, opts *convertOpts) (*conduit.Node, error) {
	f, err := meshfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := f.DataObject()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid description %s", path)
	}

	c := insitu.New(
		insitu.WithLogger(logrus.StandardLogger()),
		insitu.WithTopologyName(opts.topology),
		insitu.WithCoordsetName(opts.coordset),
	)
	node := conduit.NewNode()
	report, err := c.Convert(obj, node)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert %s", path)
	}
	if merr, ok := report.Warnings().(*multierror.Error); ok {
		for _, w := range merr.Errors {
			logrus.Warnf("%s: %v", path, w)
		}
	}
	logrus.Debugf("converted %s %s into %d leaves", obj.ClassName(), path, len(conduit.Leaves(node)))
	return node, nil
}

func bundleOptions(codec string, level int, shuffle bool) ([]relay.Option, error) {
	opts := []relay.Option{relay.WithShuffle(shuffle)}
	switch codec {
	case codecZstd:
		opts = append(opts, relay.WithCompression(level))
	case codecDeflate:
		opts = append(opts, relay.WithDeflate(level))
	default:
		return nil, errors.Errorf("invalid codec %q, the possible values can be %v", codec, supportedCodecs)
	}
	return opts, nil
}

func writeTree(stdout io.Writer, node *conduit.Node, output, format string, bundleOpts []relay.Option) error {
	if format == formatBundle {
		if output == "" {
			return relay.Write(stdout, node, bundleOpts...)
		}
		if err := relay.Save(output, node, bundleOpts...); err != nil {
			return err
		}
		logrus.Infof("saved bundle %s", output)
		return nil
	}

	var (
		text string
		err  error
	)
	switch format {
	case formatYAML:
		text, err = node.ToYAML()
	case formatJSON:
		text, err = node.ToJSON()
	default:
		return errors.Errorf("invalid output format %q, the possible values can be %v", format, supportedFormats)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", format)
	}

	if output == "" {
		_, err = io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", output)
	}
	logrus.Infof("wrote %s", output)
	return nil
}
