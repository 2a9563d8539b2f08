package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewAnalyzeCmd создаёт команду синхронного анализа фото.
func NewAnalyzeCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var userID string
	var mealType string
	var userContext string

	cmd := &cobra.Command{
		Use:   "analyze IMAGE_FILE",
		Short: "Analyze a meal photo synchronously",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			image, err := readImage(args[0])
			if err != nil {
				return err
			}

			result, err := client.Analyze(AnalyzeRequest{
				UserID:    userID,
				ImageData: image,
				MealType:  mealType,
				Context:   userContext,
			})
			if err != nil {
				return err
			}

			printAnalysis(out, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "User ID (required)")
	cmd.Flags().StringVar(&mealType, "meal-type", "", "Meal type (breakfast, lunch, dinner, snack)")
	cmd.Flags().StringVar(&userContext, "context", "", "Free-form context for the analysis")
	cmd.MarkFlagRequired("user-id")

	return cmd
}

// readImage читает файл и кодирует его в base64.
func readImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// printAnalysis выводит результат анализа: статус, калории, шаги, warnings.
func printAnalysis(out *Output, result *AnalysisResponse) {
	calories := ""
	items := ""
	if result.Vision != nil {
		calories = strconv.FormatFloat(result.Vision.TotalCalories, 'f', 0, 64)
		names := make([]string, len(result.Vision.Items))
		for i, it := range result.Vision.Items {
			names[i] = it.Name
		}
		items = strings.Join(names, ", ")
	}

	out.Print(
		[]string{"STATUS", "MEAL_TYPE", "CALORIES", "ITEMS", "DURATION_MS"},
		[][]string{{result.Status, result.MealType, calories, items, strconv.FormatInt(result.DurationMS, 10)}},
		result,
	)

	for _, w := range result.Warnings {
		out.Warn(w)
	}
}
