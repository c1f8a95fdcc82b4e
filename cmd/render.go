// cmd/render.go

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/pkg/render"
	"github.com/invoice-generator/pkg/storage"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render one invoice from a JSON file without starting the server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "JSON invoice file, - for stdin", Value: "-"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "PDF path (default: invoice_<number>.pdf in the current directory)"},
			&cli.StringFlag{Name: "layout", Usage: "invoice layout: detailed or inline"},
		},
		Action: renderFile,
	}
}

func renderFile(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	raw, err := readInput(c)
	if err != nil {
		return err
	}
	var req invoice.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("invalid invoice JSON: %w", err)
	}

	normalizer := invoice.NewNormalizer()
	inv, err := normalizer.Normalize(req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.New(opts).Render(inv, &buf); err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = invoice.FileName(inv.Number, normalizer.Now())
	}
	store := storage.NewFileStore(filepath.Dir(output))
	if err := store.Init(); err != nil {
		return err
	}
	location, err := store.Save(c.Context, filepath.Base(output), buf.Bytes())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s (%s)\n", location, invoice.FormatMoney(inv.Total))
	return nil
}

func readInput(c *cli.Context) ([]byte, error) {
	input := c.String("input")
	if input == "-" {
		return io.ReadAll(c.App.Reader)
	}
	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return raw, nil
}
