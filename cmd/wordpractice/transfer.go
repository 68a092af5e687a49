package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordpractice/internal/app"
	"github.com/heartmarshall/wordpractice/internal/service/catalogue"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

// resolveFormat picks the explicit format or infers it from the file name.
func resolveFormat(format, path string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), "."+formatXLSX) {
			return formatXLSX, nil
		}
		return formatJSON, nil
	}
	switch f := strings.ToLower(format); f {
	case formatJSON, formatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or xlsx)", format)
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a catalogue to a JSON or XLSX file",
	}
	user := userFlag(cmd)
	out := cmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
	format := cmd.Flags().StringP("format", "f", "", "json or xlsx (default: from the file name)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		f, err := resolveFormat(*format, *out)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			ctx, _, err := asUser(ctx, *user)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch f {
			case formatXLSX:
				err = a.Catalogue.ExportXLSX(ctx, &buf)
			default:
				var data []byte
				data, err = a.Catalogue.ExportJSON(ctx)
				buf.Write(data)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if *out == "-" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			return os.WriteFile(*out, buf.Bytes(), 0o644)
		})
	}
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace a catalogue with the contents of a JSON or XLSX file",
		Args:  cobra.ExactArgs(1),
	}
	user := userFlag(cmd)
	format := cmd.Flags().StringP("format", "f", "", "json or xlsx (default: from the file name)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := resolveFormat(*format, path)
		if err != nil {
			return err
		}

		var data []byte
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			ctx, _, err := asUser(ctx, *user)
			if err != nil {
				return err
			}

			var res *catalogue.ImportResult
			switch f {
			case formatXLSX:
				res, err = a.Catalogue.ImportXLSX(ctx, bytes.NewReader(data))
			default:
				res, err = a.Catalogue.ImportJSON(ctx, data)
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d words\n", res.Imported)
			return nil
		})
	}
	return cmd
}
