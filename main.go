package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"orb/internal/viz"
)

func main() {
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := viz.RunDesktop(flag.Arg(0)); err != nil {
		logrus.WithError(err).Error("exit")
		os.Exit(1)
	}
}
