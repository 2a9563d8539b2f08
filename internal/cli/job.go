package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewJobCmd создаёт группу команд для управления jobs.
func NewJobCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage background analysis jobs",
	}

	cmd.AddCommand(
		newJobSubmitCmd(clientFn, outputFn),
		newJobShowCmd(clientFn, outputFn),
		newJobWaitCmd(clientFn, outputFn),
	)

	return cmd
}

func newJobSubmitCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var userID string
	var mealType string
	var userContext string

	cmd := &cobra.Command{
		Use:   "submit IMAGE_FILE",
		Short: "Submit a meal photo for background analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			image, err := readImage(args[0])
			if err != nil {
				return err
			}

			job, err := client.SubmitJob(AnalyzeRequest{
				UserID:    userID,
				ImageData: image,
				MealType:  mealType,
				Context:   userContext,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Job submitted: %s", job.ID))
			out.Print(
				[]string{"ID", "USER_ID", "STATUS", "CREATED"},
				[][]string{{job.ID, job.UserID, job.Status, job.CreatedAt}},
				job,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "User ID (required)")
	cmd.Flags().StringVar(&mealType, "meal-type", "", "Meal type (breakfast, lunch, dinner, snack)")
	cmd.Flags().StringVar(&userContext, "context", "", "Free-form context for the analysis")
	cmd.MarkFlagRequired("user-id")

	return cmd
}

func newJobShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show job details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			job, err := client.GetJob(args[0])
			if err != nil {
				return err
			}

			printJob(out, job)
			return nil
		},
	}
}

func newJobWaitCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var interval time.Duration
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "wait ID",
		Short: "Poll a job until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			deadline := time.Now().Add(timeout)
			for {
				job, err := client.GetJob(args[0])
				if err != nil {
					return err
				}

				if job.Status == "COMPLETED" || job.Status == "FAILED" {
					printJob(out, job)
					return nil
				}

				if time.Now().After(deadline) {
					return fmt.Errorf("job %s still %s after %s", job.ID, job.Status, timeout)
				}

				time.Sleep(interval)
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Polling interval")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum time to wait")

	return cmd
}

func printJob(out *Output, job *JobResponse) {
	resultStatus := ""
	if job.Result != nil {
		resultStatus = job.Result.Status
	}

	out.Print(
		[]string{"ID", "USER_ID", "STATUS", "RESULT", "ERROR", "UPDATED"},
		[][]string{{job.ID, job.UserID, job.Status, resultStatus, job.Error, job.UpdatedAt}},
		job,
	)

	if job.Result != nil {
		for _, w := range job.Result.Warnings {
			out.Warn(w)
		}
	}
}
