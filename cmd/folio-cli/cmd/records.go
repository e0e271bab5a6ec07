package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"folio/internal/application/commands"
	"folio/internal/domain"
)

var (
	categoryNew    bool
	categoryYes    bool
	categoryFields domain.Category

	tagNew    bool
	tagYes    bool
	tagFields domain.CategoryTag

	eventIndex     int
	eventYes       bool
	eventFields    domain.TimelineEvent
	eventMediaType string
	eventMediaURL  string
)

// overlay copies the flags the user set onto dst
func overlay(flags *pflag.FlagSet, fields map[string]*string, values map[string]string) {
	for name, dst := range fields {
		if flags.Changed(name) {
			*dst = values[name]
		}
	}
}

var categoryCmd = &cobra.Command{
	Use:   "category [save|delete]",
	Short: "Manage project categories",
}

var categorySaveCmd = &cobra.Command{
	Use:   "save <key>",
	Short: "Create (--new) or update a category",
	Long: `Create a category with --new, or update the title, icon and
description of an existing one. Fields not given keep their value.

Examples:
  folio-cli category save games --new --title "Game Development" --icon 🎮
  folio-cli category save web --description "Sites and web apps"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c := domain.Category{Key: args[0]}
		if !categoryNew {
			doc, err := GetRepo().Load(ctx)
			if err != nil {
				return err
			}
			if existing := doc.Category(args[0]); existing != nil {
				c = *existing
			}
		}
		overlay(cmd.Flags(), map[string]*string{
			"title":       &c.Title,
			"icon":        &c.Icon,
			"description": &c.Description,
		}, map[string]string{
			"title":       categoryFields.Title,
			"icon":        categoryFields.Icon,
			"description": categoryFields.Description,
		})

		saveCmd := commands.NewSaveCategoryCommand(GetRepo(), c, categoryNew)
		result, err := saveCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a category and its projects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deleteCmd := commands.NewDeleteCategoryCommand(GetRepo(), args[0], categoryYes)
		result, err := deleteCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag [list|save|delete]",
	Short: "Manage timeline category tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := GetRepo().Load(context.Background())
		if err != nil {
			return err
		}
		for _, t := range doc.Tags {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-8s %s\n", t.Key, t.Color, t.Label)
		}
		return nil
	},
}

var tagSaveCmd = &cobra.Command{
	Use:   "save <key>",
	Short: "Create (--new) or update a tag",
	Long: `Create a tag with --new, or update the label and color of an
existing one. Colors are #RGB or #RRGGBB.

Examples:
  folio-cli tag save music --new --label Music --color "#e91e63"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		t := domain.CategoryTag{Key: args[0]}
		if !tagNew {
			doc, err := GetRepo().Load(ctx)
			if err != nil {
				return err
			}
			if existing, ok := doc.Tag(args[0]); ok {
				t = existing
			}
		}
		overlay(cmd.Flags(), map[string]*string{
			"label": &t.Label,
			"color": &t.Color,
		}, map[string]string{
			"label": tagFields.Label,
			"color": tagFields.Color,
		})

		saveCmd := commands.NewSaveTagCommand(GetRepo(), t, tagNew)
		result, err := saveCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deleteCmd := commands.NewDeleteTagCommand(GetRepo(), args[0], tagYes)
		msg, err := deleteCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var eventCmd = &cobra.Command{
	Use:   "event [save|delete]",
	Short: "Manage timeline events",
}

var eventSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Append an event, or update the one at --index",
	Long: `Append a timeline event, or update the event at --index (as printed
by "timeline"). When updating, fields not given keep their value.

Examples:
  folio-cli event save --date "March 2024" --title "Joined Acme" --category career
  folio-cli event save --index 2 --project task-manager`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		var e domain.TimelineEvent
		if eventIndex >= 0 {
			doc, err := GetRepo().Load(ctx)
			if err != nil {
				return err
			}
			if eventIndex >= len(doc.Timeline) {
				return fmt.Errorf("event not found: %d", eventIndex)
			}
			e = doc.Timeline[eventIndex]
		}
		overlay(cmd.Flags(), map[string]*string{
			"date":        &e.Date,
			"title":       &e.Title,
			"category":    &e.Category,
			"icon":        &e.Icon,
			"description": &e.Description,
			"project":     &e.ProjectID,
		}, map[string]string{
			"date":        eventFields.Date,
			"title":       eventFields.Title,
			"category":    eventFields.Category,
			"icon":        eventFields.Icon,
			"description": eventFields.Description,
			"project":     eventFields.ProjectID,
		})
		switch {
		case cmd.Flags().Changed("media-type") && eventMediaType == "":
			e.Media = nil
		case cmd.Flags().Changed("media-type") || cmd.Flags().Changed("media-url"):
			m := domain.Media{}
			if e.Media != nil {
				m = *e.Media
			}
			if cmd.Flags().Changed("media-type") {
				m.Type = eventMediaType
			}
			if cmd.Flags().Changed("media-url") {
				m.URL = eventMediaURL
			}
			e.Media = &m
		}

		saveCmd := commands.NewSaveEventCommand(GetRepo(), eventIndex, e)
		result, err := saveCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete the event at index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		deleteCmd := commands.NewDeleteEventCommand(GetRepo(), index, eventYes)
		msg, err := deleteCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	f := categorySaveCmd.Flags()
	f.BoolVar(&categoryNew, "new", false, "create the category")
	f.StringVar(&categoryFields.Title, "title", "", "display title")
	f.StringVar(&categoryFields.Icon, "icon", "", "emoji icon")
	f.StringVar(&categoryFields.Description, "description", "", "short description")
	addConfirmFlag(categoryDeleteCmd, &categoryYes)

	f = tagSaveCmd.Flags()
	f.BoolVar(&tagNew, "new", false, "create the tag")
	f.StringVar(&tagFields.Label, "label", "", "display label")
	f.StringVar(&tagFields.Color, "color", "", "hex color, e.g. #4a90e2")
	addConfirmFlag(tagDeleteCmd, &tagYes)

	f = eventSaveCmd.Flags()
	f.IntVar(&eventIndex, "index", -1, "event to update; appends when omitted")
	f.StringVar(&eventFields.Date, "date", "", "free-form date, e.g. \"March 2024\"")
	f.StringVar(&eventFields.Title, "title", "", "event title")
	f.StringVar(&eventFields.Category, "category", "", "tag key")
	f.StringVar(&eventFields.Icon, "icon", "", "emoji icon")
	f.StringVar(&eventFields.Description, "description", "", "description, [label](url) links allowed")
	f.StringVar(&eventFields.ProjectID, "project", "", "linked project ID")
	f.StringVar(&eventMediaType, "media-type", "", "image or youtube; empty removes the media")
	f.StringVar(&eventMediaURL, "media-url", "", "media URL")
	addConfirmFlag(eventDeleteCmd, &eventYes)

	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categorySaveCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)

	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagSaveCmd)
	tagCmd.AddCommand(tagDeleteCmd)

	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventSaveCmd)
	eventCmd.AddCommand(eventDeleteCmd)
}
