package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/vitalvas/forthecity/apiclient"
	"github.com/vitalvas/forthecity/collection"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgYellow)
	dimColor    = color.New(color.Faint)
	errorColor  = color.New(color.FgRed)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}

func (a *app) printObjects(objs []collection.Object) error {
	if a.opts.jsonOutput {
		return printJSON(a.stdout, objs)
	}

	if len(objs) == 0 {
		dimColor.Fprintln(a.stdout, "(no items)")
		return nil
	}

	for i, obj := range objs {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}

		printObject(a.stdout, obj)
	}

	return nil
}

func printObject(w io.Writer, obj collection.Object) {
	headerColor.Fprintln(w, obj.Href())

	keys := make([]string, 0, len(obj))
	for k := range obj {
		if k != "href" && k != "links" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		labelColor.Fprintf(w, "  %s: ", k)
		fmt.Fprintln(w, formatValue(obj[k]))
	}
}

func (a *app) printTemplate(tmpl *collection.Template) error {
	if a.opts.jsonOutput {
		return printJSON(a.stdout, map[string]any{"template": tmpl})
	}

	for _, d := range tmpl.Data {
		labelColor.Fprintf(a.stdout, "  %s", d.Name)
		if d.Prompt != "" {
			dimColor.Fprintf(a.stdout, " (%s)", d.Prompt)
		}

		if v, ok := d.Resolve(); ok {
			fmt.Fprintf(a.stdout, ": %s", formatValue(v))
		}

		fmt.Fprintln(a.stdout)
	}

	return nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}

		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// printError prints err, including the error document of a failed
// response.
func printError(w io.Writer, err error) {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Failure != nil {
		errorColor.Fprintf(w, "%s", apiErr.Failure.Title)
		if apiErr.Failure.Code != "" {
			errorColor.Fprintf(w, " (%s)", apiErr.Failure.Code)
		}

		if apiErr.Failure.Message != "" {
			fmt.Fprintf(w, ": %s", apiErr.Failure.Message)
		}

		fmt.Fprintln(w)

		return
	}

	errorColor.Fprintln(w, err)
}
