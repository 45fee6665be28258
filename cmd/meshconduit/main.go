// Command meshconduit converts dataset descriptions into mesh blueprint
// trees, verifies them and inspects saved bundles.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Errorf("meshconduit-%s: %v", version, err)
		os.Exit(1)
	}
}
