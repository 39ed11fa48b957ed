package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stanhub/blog/internal/config"
	"github.com/stanhub/blog/internal/service"
	"github.com/stanhub/blog/internal/store"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "tag catalog commands",
}

func init() {
	tagCmd.AddCommand(createTagCommand())
	tagCmd.AddCommand(searchTagCommand())
}

func createTagCommand() *cobra.Command {
	var keyword string
	command := &cobra.Command{
		Use:   "create",
		Short: "Add a tag to the catalog",
		Run: func(cmd *cobra.Command, args []string) {
			if keyword == "" {
				fmt.Println("missing: --keyword")
				return
			}

			gs := store.NewGormStore(config.GetDb(config.LoadConfig()))
			tag, err := service.NewTagInfoService(gs).CreateTag(context.Background(), keyword)
			if err != nil {
				fmt.Println("error creating tag:", err)
				return
			}
			fmt.Printf("created tag %d: %s\n", tag.ID, tag.Keyword)
		},
	}
	command.Flags().StringVarP(&keyword, "keyword", "k", "", "tag keyword")

	return command
}

func searchTagCommand() *cobra.Command {
	var keyword string
	var page, size int
	command := &cobra.Command{
		Use:   "search",
		Short: "Search the tag catalog",
		Run: func(cmd *cobra.Command, args []string) {
			gs := store.NewGormStore(config.GetDb(config.LoadConfig()))
			result, err := service.NewTagInfoService(gs).SearchTags(context.Background(), keyword, page, size)
			if err != nil {
				fmt.Println("error searching tags:", err)
				return
			}

			fmt.Printf("%d tags total\n", result.Total)
			for _, tag := range result.Items {
				fmt.Printf("%6d  %s\n", tag.ID, tag.Keyword)
			}
		},
	}
	command.Flags().StringVarP(&keyword, "keyword", "k", "", "keyword substring")
	command.Flags().IntVarP(&page, "page", "p", 1, "page number")
	command.Flags().IntVar(&size, "size", 20, "page size")

	return command
}
