// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Configure sets level and formatter on the standard logrus logger. Development
// gets colored text output, everything else JSON.
func Configure(out io.Writer, level string, dev bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	logrus.SetOutput(out)
	logrus.SetLevel(lvl)
	if dev {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}
