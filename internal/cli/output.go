package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samvad-hq/guardctl/pkg/control"
	"gopkg.in/yaml.v3"
)

// writeResponse prints a control response in the requested format. Non-JSON
// bodies are printed as text regardless of format.
func writeResponse(w io.Writer, format string, resp *control.Response) error {
	data := resp.Data()
	if data == nil {
		return nil
	}
	if text, ok := data.(string); ok || format == "text" {
		if !ok {
			text = resp.Text()
		}
		_, err := io.WriteString(w, ensureNewline(text))
		return err
	}
	return writeValue(w, format, data)
}

func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeTable(w io.Writer, header []string, rows func(row func(...string))) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	rows(func(cols ...string) {
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	})
	return tw.Flush()
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
