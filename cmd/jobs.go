package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/models"
)

// JobsCmd returns the jobs subcommand
func JobsCmd() *cobra.Command {
	return serverCommand(&cobra.Command{
		Use:   "jobs",
		Short: "List the job postings of the practice",
		Long:  "List the job postings whose IDs can be passed to --job.",
		Args:  cobra.NoArgs,
		RunE:  runJobs,
	})
}

type jobList []models.JobPosting

func (l jobList) String() string {
	if len(l) == 0 {
		return "No job postings found"
	}
	var b strings.Builder
	for _, j := range l {
		line := fmt.Sprintf("%-38s %s", j.ID, j.Title)
		if j.Department != "" {
			line += " (" + j.Department + ")"
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func runJobs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := outputFormatter(cmd)

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}
	if c.Config.PracticeID == "" {
		return cli.Report(formatter, app.ErrNoPractice)
	}

	jobs, err := c.Client.ListJobPostings(ctx, c.Config.PracticeID)
	if err != nil {
		return cli.Report(formatter, err)
	}

	if formatter.Quiet {
		for _, j := range jobs {
			fmt.Fprintln(cmd.OutOrStdout(), j.ID)
		}
		return nil
	}
	return formatter.Success(jobList(jobs))
}
