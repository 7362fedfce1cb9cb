package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewCategoryCmd создаёт группу команд для управления категориями.
func NewCategoryCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(
		newCategoryListCmd(clientFn, outputFn),
		newCategoryCreateCmd(clientFn, outputFn),
	)

	return cmd
}

func newCategoryListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			categories, err := client.ListCategories()
			if err != nil {
				return err
			}

			headers := []string{"ID", "TITLE", "DESCRIPTION", "CREATED"}
			rows := make([][]string, len(categories))
			for i, c := range categories {
				rows[i] = []string{strconv.FormatInt(c.ID, 10), c.Title, c.Description, c.CreatedAt}
			}

			out.Print(headers, rows, categories)
			return nil
		},
	}
}

func newCategoryCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new category",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			category, err := client.CreateCategory(CreateCategoryRequest{
				Title:       title,
				Description: description,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Category created: %s", category.Title))
			out.Print(
				[]string{"ID", "TITLE", "DESCRIPTION", "CREATED"},
				[][]string{{strconv.FormatInt(category.ID, 10), category.Title, category.Description, category.CreatedAt}},
				category,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Category title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Category description")
	cmd.MarkFlagRequired("title")

	return cmd
}
