package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxkimambo/dispatch/internal/api"
	"github.com/maxkimambo/dispatch/internal/dispatcher"
	"github.com/maxkimambo/dispatch/internal/presenter"
	"github.com/maxkimambo/dispatch/internal/runner"
	"github.com/maxkimambo/dispatch/internal/ui"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the execution order of the steps without running them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Nothing is dispatched, so the looper is never started.
			r := runner.New(api.NewClient(0), dispatcher.NewMain(1), presenter.NewToaster())
			workflow, err := r.Workflow()
			if err != nil {
				return err
			}
			order, err := workflow.Order()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(order))
			for i, id := range order {
				task := workflow.Tasks[id]
				rows = append(rows, []string{strconv.Itoa(i + 1), id, task.Description, strings.Join(task.DependsOn, ", ")})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workflow %s:\n", workflow.ID)
			fmt.Fprintln(out, ui.Table([]string{"#", "Task", "Description", "After"}, rows))
			return nil
		},
	}
}
