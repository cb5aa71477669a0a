package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/dashboard"
)

// createCommand creates the create command.
func (c *CLI) createCommand() *cobra.Command {
	var req category.CreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Example: `  cattree create --name Electronics --type physical
  cattree create -n "E-books" -t digital --description "Downloadable books"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMutation(cmd.Context(), cmd.ErrOrStderr(), dashboard.ActionCreate,
				func(r *dashboard.Runner) (*dashboard.Result, error) {
					return r.Create(cmd.Context(), req)
				})
		},
	}

	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "category name")
	cmd.Flags().StringVarP(&req.Type, "type", "t", "", "category type")
	cmd.Flags().StringVar(&req.Description, "description", "", "category description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// updateCommand creates the update command. Only flags that are given are
// sent to the backend.
func (c *CLI) updateCommand() *cobra.Command {
	var name, typ, description string

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a category",
		Example: `  cattree update 64f1c2 --name Phones --type physical`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req category.UpdateRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("type") {
				req.Type = &typ
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			return c.runMutation(cmd.Context(), cmd.ErrOrStderr(), dashboard.ActionUpdate,
				func(r *dashboard.Runner) (*dashboard.Result, error) {
					return r.Update(cmd.Context(), args[0], req)
				})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "new type")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

// deleteCommand creates the delete command. It asks for confirmation unless
// --yes is given.
func (c *CLI) deleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and its subcategories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			w := cmd.ErrOrStderr()
			if !yes {
				ok, err := confirm(c.in, w, fmt.Sprintf("Delete category %s and all its subcategories?", id))
				if err != nil {
					return err
				}
				if !ok {
					printInfo(w, "Cancelled")
					return nil
				}
			}
			return c.runMutation(cmd.Context(), w, dashboard.ActionDelete,
				func(r *dashboard.Runner) (*dashboard.Result, error) {
					return r.Delete(cmd.Context(), id)
				})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// runMutation shows the action's loading line while fn runs, then its
// success or failure line.
func (c *CLI) runMutation(ctx context.Context, w io.Writer, action dashboard.Action, fn func(*dashboard.Runner) (*dashboard.Result, error)) error {
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	notice := dashboard.Notices(action)
	spinner := newSpinner(ctx, w, notice.Loading)
	spinner.Start()

	res, err := fn(s.runner)
	if err != nil {
		spinner.StopWithError(notice.Failure)
		return err
	}
	spinner.StopWithSuccess(res.Message)
	if res.Category != nil {
		printDetail(w, "%s  %s", res.Category.ID, res.Category.Name)
	}
	return nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, w io.Writer, question string) (bool, error) {
	printWarning(w, "%s [y/N]", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
