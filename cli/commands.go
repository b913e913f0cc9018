package cli

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vitalvas/forthecity/apiclient"
	"github.com/vitalvas/forthecity/collection"
	"github.com/vitalvas/forthecity/hawk"
	"github.com/vitalvas/forthecity/query"
)

type (
	getter func(context.Context, string) (collection.Object, *apiclient.Response, error)
	lister func(context.Context) ([]collection.Object, *apiclient.Response, error)
)

func getters(c *apiclient.Client) map[string]getter {
	return map[string]getter{
		"opportunities": c.Opportunities().Get,
		"organizations": c.Organizations().Get,
		"users":         c.Admin().Users().Get,
	}
}

func listers(c *apiclient.Client) map[string]lister {
	return map[string]lister{
		"opportunities": c.Opportunities().List,
		"featured":      c.Opportunities().Featured,
		"organizations": c.Organizations().List,
		"users":         c.Admin().Users().List,
	}
}

func names[T any](m map[string]T) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return strings.Join(out, ", ")
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one resource",
		Long:  "Fetches one opportunity, organization or user by id.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			get, ok := getters(client)[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q (one of: %s)", args[0], names(getters(client)))
			}

			obj, _, err := get(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			return a.printObjects([]collection.Object{obj})
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <resource>",
		Short: "List resources",
		Long:  "Lists opportunities, featured opportunities, organizations or users.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			list, ok := listers(client)[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q (one of: %s)", args[0], names(listers(client)))
			}

			objs, _, err := list(cmd.Context())
			if err != nil {
				return err
			}

			return a.printObjects(objs)
		},
	}
}

func (a *app) searchCommand() *cobra.Command {
	var (
		text   string
		params []string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search opportunities",
		Long:  "Searches opportunities by text and filters. Each --param key=v1,v2 is sent as key[]=v1&key[]=v2.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := searchQuery(text, params)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			objs, _, err := client.Search(cmd.Context(), q)
			if err != nil {
				return err
			}

			return a.printObjects(objs)
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "Free text to search for")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Filter as key=v1,v2 (repeatable)")

	return cmd
}

func searchQuery(text string, params []string) (*query.Values, error) {
	q := query.New()
	if text != "" {
		q.Set("q", text)
	}

	for _, p := range params {
		key, values, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=v1,v2", p)
		}

		vs := make([]any, 0)
		for _, v := range strings.Split(values, ",") {
			if v != "" {
				vs = append(vs, v)
			}
		}

		q.Add(key, vs...)
	}

	return q, nil
}

func (a *app) signupTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "signup-template <opportunity>",
		Short: "Show the signup template of an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			tmpl, _, err := client.Signup().Template(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.printTemplate(tmpl)
		},
	}
}

func (a *app) signCommand() *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "sign <method> <url>",
		Short: "Print the Authorization header for a request",
		Long:  "Signs a request with the configured credentials without sending it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			if cfg.Algorithm == "" {
				cfg.Algorithm = hawk.AlgorithmSHA256
			}

			req, err := http.NewRequest(strings.ToUpper(args[0]), args[1], nil)
			if err != nil {
				return fmt.Errorf("%w: %w", hawk.ErrInvalidRequestSpec, err)
			}

			signed, err := hawk.SignRequest(req, hawk.SignConfig{
				Credentials:     hawk.StaticCredentials(cfg.Credentials()),
				Ext:             ext,
				LocaltimeOffset: cfg.LocaltimeOffset,
			})
			if err != nil {
				return err
			}

			if a.opts.jsonOutput {
				return printJSON(a.stdout, map[string]any{
					"authorization": signed.Header,
					"normalized":    signed.Artifacts.Normalized(hawk.KindHeader),
				})
			}

			fmt.Fprintln(a.stdout, signed.Header)
			if a.opts.verbose {
				dimColor.Fprint(a.stdout, signed.Artifacts.Normalized(hawk.KindHeader))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "Application data for the ext attribute")

	return cmd
}
