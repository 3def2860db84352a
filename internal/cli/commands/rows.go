package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squill-labs/squill/pkg/executor"
	"github.com/squill-labs/squill/pkg/filter"
	"github.com/squill-labs/squill/pkg/statement"
)

// RowsOptions holds the paging flags of the rows command.
type RowsOptions struct {
	Limit   int
	Offset  int
	Order   []string
	Where   []string
	Or      bool
	Select  []string
	Exact   bool
	NoTotal bool
}

// NewRowsCommand creates the rows command.
func NewRowsCommand(app *App) *cobra.Command {
	opts := &RowsOptions{}

	cmd := &cobra.Command{
		Use:   "rows <schema.table>",
		Short: "Page through the rows of a table",
		Example: `  # First 50 rows
  squill rows public.users --limit 50

  # Filtered and ordered
  squill rows public.users --where "age=>=:30" --order created_at:desc

  # Membership filter
  squill rows public.users --where "status=in:active,trial"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, url, err := app.Resolve()
			if err != nil {
				return err
			}
			schema, tbl, err := splitTable(args[0])
			if err != nil {
				return err
			}
			filters, err := parseWhere(opts.Where)
			if err != nil {
				return err
			}
			orderBy, err := parseOrder(opts.Order)
			if err != nil {
				return err
			}

			concat := filter.And
			if opts.Or {
				concat = filter.Or
			}

			set, err := statement.Rows(statement.RowsParams{
				Schema:  schema,
				Table:   tbl,
				Limit:   opts.Limit,
				Offset:  opts.Offset,
				OrderBy: orderBy,
				Filters: filters,
				Concat:  concat,
				Select:  opts.Select,
			})
			if err != nil {
				return err
			}
			stmt, err := set.For(engine, "page rows")
			if err != nil {
				return err
			}

			res, err := app.Exec.Execute(cmd.Context(), executor.Request{
				Engine: engine, ConnString: url, SQL: stmt.SQL, Args: stmt.Args,
			})
			if err != nil {
				return err
			}
			if err := renderResult(cmd.OutOrStdout(), res, app.JSON); err != nil {
				return err
			}

			if opts.NoTotal || app.JSON {
				return nil
			}
			total, estimated, err := app.Exec.Total(cmd.Context(), engine, url, statement.TotalParams{
				Schema: schema, Table: tbl, Filters: filters, Concat: concat,
			}, opts.Exact)
			if err != nil {
				return err
			}
			if estimated {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: ~%d (estimated)\n", total)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %d\n", total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "Maximum rows to fetch")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Rows to skip")
	cmd.Flags().StringArrayVar(&opts.Order, "order", nil, "Sort order, col or col:desc (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Where, "where", nil, "Filter, col=op:value (repeatable)")
	cmd.Flags().BoolVar(&opts.Or, "or", false, "Join filters with OR instead of AND")
	cmd.Flags().StringSliceVar(&opts.Select, "select", nil, "Columns to project (default all)")
	cmd.Flags().BoolVar(&opts.Exact, "exact", false, "Force an exact COUNT(*) total")
	cmd.Flags().BoolVar(&opts.NoTotal, "no-total", false, "Skip the row count")

	return cmd
}

// parseWhere turns col=op:value flags into filters. List operators take
// comma-separated values; IS NULL style operators take none.
func parseWhere(specs []string) ([]filter.Filter, error) {
	var filters []filter.Filter
	for _, spec := range specs {
		col, rest, ok := strings.Cut(spec, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid filter %q (expected col=op:value)", spec)
		}

		op, value, hasValue := strings.Cut(rest, ":")
		def, err := filter.Lookup(op)
		if err != nil {
			return nil, err
		}

		f := filter.Filter{Column: col, Operator: def.Operator}
		switch {
		case !def.HasValue:
			if hasValue && value != "" {
				return nil, fmt.Errorf("operator %s takes no value", def.Operator)
			}
		case def.IsList:
			f.Values = strings.Split(value, ",")
		default:
			f.Values = []string{value}
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// parseOrder turns col or col:desc flags into the ordered sort list.
func parseOrder(specs []string) ([]statement.Order, error) {
	var orderBy []statement.Order
	for _, spec := range specs {
		col, dir, _ := strings.Cut(spec, ":")
		order := statement.Order{Column: col}
		switch strings.ToLower(dir) {
		case "", "asc":
			order.Direction = "ASC"
		case "desc":
			order.Direction = "DESC"
		default:
			return nil, fmt.Errorf("invalid sort direction %q in %q", dir, spec)
		}
		orderBy = append(orderBy, order)
	}
	return orderBy, nil
}
