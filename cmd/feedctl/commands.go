package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"commfeed/internal/config"
	"commfeed/internal/db"
	"commfeed/internal/models"
	"commfeed/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// app is what every subcommand works against once the store is open.
type app struct {
	store  *db.Store
	feed   *services.FeedService
	close  func() error
	cfg    config.Config
	logger *zap.Logger
}

type opener func(ctx context.Context) (*app, error)

// newRootCmd builds the command tree. The returned function releases the store and must be
// called after Execute whether or not the command failed.
func newRootCmd(open opener) (*cobra.Command, func() error) {
	var (
		a      *app
		userID string
	)

	rootCmd := &cobra.Command{
		Use:           "feedctl",
		Short:         "Inspect and change the community feed document",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = open(cmd.Context())
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "acting user id (defaults to DEFAULT_USER_ID)")

	actingUser := func(cmd *cobra.Command) (models.User, error) {
		id := userID
		if id == "" {
			id = a.cfg.DefaultUserID
		}
		user, err := a.feed.FindUser(cmd.Context(), id)
		if err != nil {
			return models.User{}, err
		}
		return *user, nil
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the seed document if the slot is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Initialize(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Document %q ready\n", a.cfg.StorageKey)
			return nil
		},
	}

	var output string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the whole document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), output, doc)
		},
	}
	showCmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")

	var community string
	postCmd := &cobra.Command{
		Use:   "post <content>",
		Short: "Create a post as the acting user",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser(cmd)
			if err != nil {
				return err
			}
			post, err := a.feed.CreatePost(cmd.Context(), user, services.PostInput{
				Body:      strings.Join(args, " "),
				Community: community,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), post.ID)
			return nil
		},
	}
	postCmd.Flags().StringVarP(&community, "community", "c", "", "community name (defaults to "+services.DefaultCommunity+")")

	reactCmd := &cobra.Command{
		Use:   "react <post-id>",
		Short: "Add a reaction to a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := a.feed.AddReaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", post.Reactions)
			return nil
		},
	}

	commentCmd := &cobra.Command{
		Use:   "comment <post-id> <text>",
		Short: "Comment on a post as the acting user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser(cmd)
			if err != nil {
				return err
			}
			post, err := a.feed.AddComment(cmd.Context(), args[0], user, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			last := post.Comments[len(post.Comments)-1]
			fmt.Fprintln(cmd.OutOrStdout(), last.ID)
			return nil
		},
	}

	shareCmd := &cobra.Command{
		Use:   "share <post-id>",
		Short: "Print the share link of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := a.feed.SharePost(cmd.Context(), a.cfg.SiteURL+"/", args[0])
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), output, link)
		},
	}
	shareCmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")

	rootCmd.AddCommand(initCmd, showCmd, postCmd, reactCmd, commentCmd, shareCmd)

	closeApp := func() error {
		if a == nil || a.close == nil {
			return nil
		}
		err := a.close()
		a = nil
		return err
	}
	return rootCmd, closeApp
}

func printValue(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (json, yaml)", format)
	}
}
