package insitu

import "github.com/sirupsen/logrus"

// Option configures a Converter.
type Option func(*options)

type options struct {
	logger       logrus.FieldLogger
	topologyName string
	coordsetName string
}

func defaultOptions() *options {
	return &options{
		logger:       logrus.StandardLogger(),
		topologyName: "mesh",
		coordsetName: "coords",
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTopologyName sets the name of the topology under "topologies".
// Fields reference the topology by this name.
func WithTopologyName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.topologyName = name
		}
	}
}

// WithCoordsetName sets the name of the coordinate set under "coordsets".
func WithCoordsetName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.coordsetName = name
		}
	}
}
