package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tracepage/cmd/preview"
	"tracepage/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "tracepage"
	app.Usage = "Debug error pages for net/http servers"
	app.Version = Version

	app.Commands = []cli.Command{
		serveCMD,
		previewCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the demo server",
		Action:      serveAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the demo server. Configured through PORT, DEBUG, DEBUG_* and DATABASE_URL.`,
	}
	previewCMD = cli.Command{
		Name:      "preview",
		Usage:     "render a sample failure report",
		Action:    previewAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "format", Value: preview.FormatHTML, Usage: "html or text"},
			cli.StringFlag{Name: "out", Usage: "write the report to this file instead of stdout"},
			cli.StringFlag{Name: "theme", Usage: "light or dark"},
			cli.StringFlag{Name: "editor", Usage: "editor link template name"},
		},
		Description: `Render the report for a sample error chain.`,
	}
)

func serveAction(_ *cli.Context) error {
	logrus.Info("Starting serve CMD")

	if err := server.Run(); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}
	return nil
}

func previewAction(c *cli.Context) error {
	p := &preview.Preview{
		Format: c.String("format"),
		Out:    c.String("out"),
		Theme:  c.String("theme"),
		Editor: c.String("editor"),
	}
	if err := p.Start(); err != nil {
		logrus.WithError(err).Error("Rendering preview")
		return err
	}
	return nil
}
