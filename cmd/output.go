package cmd

import (
	"encoding/json"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode output")
}

func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if _, err := io.WriteString(tw, strings.Join(header, "\t")+"\n"); err != nil {
		return errors.Wrap(err, "write table")
	}
	for _, row := range rows {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\n"); err != nil {
			return errors.Wrap(err, "write table")
		}
	}

	return errors.Wrap(tw.Flush(), "flush table")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
