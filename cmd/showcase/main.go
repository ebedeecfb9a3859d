package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/showcase/showcase-client/auth"
	"github.com/showcase/showcase-client/client"
	"github.com/showcase/showcase-client/gallery"
	"github.com/showcase/showcase-client/internal/config"
	"github.com/showcase/showcase-client/store"
)

var serviceURL string
var debug bool

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if apiErr, ok := client.AsAPIError(err); ok {
			fmt.Fprintln(os.Stderr, apiErr.UserMessage)
		}
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "showcase",
		Short: "Showcase CLI for browsing the student project gallery",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg, err := config.Load(); err == nil {
				cfg.Init()
			} else {
				config.InitLogger()
			}
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				os.Setenv("SHOWCASE_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			}
		},
	}

	defaultURL := "http://localhost:8000/projects"
	if cfg, err := config.Load(); err == nil {
		defaultURL = cfg.BaseURL
	}
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the Showcase gallery API")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	// Sub-commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newFeaturedCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newCoursesCmd())
	rootCmd.AddCommand(newCommentsCmd())
	rootCmd.AddCommand(newAddCommentCmd())
	rootCmd.AddCommand(newDeleteCommentCmd())
	rootCmd.AddCommand(newReactCmd())
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newLearnCmd())
	rootCmd.AddCommand(newLeaderboardCmd())

	return rootCmd
}

// deps bundles everything a command needs.
type deps struct {
	cfg    *config.Config
	st     store.Store
	tokens *auth.TokenStore
	cli    *client.Client
}

func newDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	st, err := store.OpenFileStore(cfg.StateFile)
	if err != nil {
		return nil, err
	}
	tokens := auth.NewTokenStore(st)
	fp := auth.NewFingerprintProvider(st)
	cli := client.New(serviceURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithCredentials(tokens),
		client.WithFingerprint(fp),
	)
	return &deps{cfg: cfg, st: st, tokens: tokens, cli: cli}, nil
}

func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func newListCmd() *cobra.Command {
	var search, course string
	var pageSize, pages int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List community projects (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			ctx := context.Background()

			feed := gallery.NewFeed(d.cli, pageSize).WithCache(d.st, gallery.KeyCommunityPage1)
			feed.SetQuery(search, course)

			var printedCache bool
			if cached, ok := feed.CachedFirstPage(); ok {
				fmt.Fprintln(os.Stderr, "(cached)")
				_ = printJSON(cached)
				printedCache = true
			}
			for i := 0; i < pages && feed.HasMore(); i++ {
				if err := feed.LoadMore(ctx); err != nil {
					if printedCache {
						fmt.Fprintln(os.Stderr, "refresh failed, showing cached data")
						return nil
					}
					return err
				}
			}
			if err := printJSON(feed.Items()); err != nil {
				return err
			}
			if feed.HasMore() {
				fmt.Fprintf(os.Stderr, "more available (loaded %d pages)\n", feed.CurrentPage())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().StringVar(&course, "course", "", "Filter by course name")
	cmd.Flags().IntVar(&pageSize, "page-size", 12, "Items per page")
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	return cmd
}

func newFeaturedCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show the most-reacted-to projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			ctx := context.Background()

			loader := gallery.Loader[[]client.Project]{
				Store: d.st,
				Key:   gallery.KeyFeaturedProjects,
				Fetch: func(ctx context.Context) ([]client.Project, error) {
					return client.WithRetry(ctx, func(ctx context.Context) ([]client.Project, error) {
						return d.cli.FeaturedProjects(ctx, limit)
					}, client.RetryOptions{MaxRetries: d.cfg.MaxRetries, RetryDelay: d.cfg.RetryDelay})
				},
			}
			var printed bool
			err = loader.Load(ctx, func(v []client.Project, fromCache bool) {
				if fromCache {
					fmt.Fprintln(os.Stderr, "(cached)")
				}
				_ = printJSON(v)
				printed = true
			})
			if err != nil && printed {
				// Stale content is already on screen; report without failing.
				fmt.Fprintln(os.Stderr, "refresh failed, showing cached data")
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 3, "Number of featured projects")
	return cmd
}

func newProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project <id>",
		Short: "Show one project's detail, comments, and related projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			d, err := newDeps()
			if err != nil {
				return err
			}
			ctx := context.Background()

			loader := gallery.Loader[*client.Project]{
				Store: d.st,
				Key:   gallery.KeyProject(id),
				Fetch: func(ctx context.Context) (*client.Project, error) {
					return d.cli.GetProject(ctx, id)
				},
			}
			var printed bool
			err = loader.Load(ctx, func(p *client.Project, fromCache bool) {
				if fromCache {
					fmt.Fprintln(os.Stderr, "(cached)")
				}
				_ = printJSON(p)
				printed = true
			})
			if err != nil && printed {
				fmt.Fprintln(os.Stderr, "refresh failed, showing cached data")
				return nil
			}
			return err
		},
	}
}

func newCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List available course names",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			courses, err := d.cli.ListCourses(context.Background())
			if err != nil {
				return err
			}
			return printJSON(courses)
		},
	}
}

func newCommentsCmd() *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "comments <project-id>",
		Short: "List a project's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			d, err := newDeps()
			if err != nil {
				return err
			}
			res, err := d.cli.ListComments(context.Background(), client.ListCommentsParams{
				ProjectID: id, Page: page, PageSize: pageSize,
			})
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Items per page")
	return cmd
}

func newAddCommentCmd() *cobra.Command {
	var username, text string
	cmd := &cobra.Command{
		Use:   "comment <project-id>",
		Short: "Add a comment (requires signup)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			d, err := newDeps()
			if err != nil {
				return err
			}
			ctx := context.Background()

			// Expired-but-cached identities get one silent refresh attempt
			// before the user is bounced to signup.
			if d.tokens.IsAuthenticated() && d.tokens.IsExpired("") {
				if d.cli.Reauthenticate(ctx) {
					log.Debug().Msg("credential refreshed from stored profile")
				}
			}

			cm, err := d.cli.AddComment(ctx, client.AddCommentRequest{
				ProjectID: id, Username: username, Text: text,
			})
			if err != nil {
				return err
			}
			return printJSON(cm)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Commenter display name")
	cmd.Flags().StringVar(&text, "text", "", "Comment text")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newDeleteCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-comment <comment-id>",
		Short: "Delete your own comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid comment id %q", args[0])
			}
			d, err := newDeps()
			if err != nil {
				return err
			}
			if err := d.cli.DeleteComment(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func newReactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "react <project-id> <kind>",
		Short: "React to a project (love, wow, funny, inspiring, cool)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			kind := args[1]
			d, err := newDeps()
			if err != nil {
				return err
			}
			ctx := context.Background()

			p, err := d.cli.GetProject(ctx, id)
			if err != nil {
				return err
			}
			control := gallery.NewReactionControl(d.cli, id, kind, p.Reactions[kind], false)
			if err := control.Activate(ctx); err != nil {
				return err
			}
			fmt.Printf("%s %s → %d\n", client.EmojiFor(kind), kind, control.Count())
			return nil
		},
	}
}

func newSignupCmd() *cobra.Command {
	var name, email, phone string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a parent account (email or phone, not both)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			p, err := d.cli.CreateParent(context.Background(), client.CreateParentRequest{
				Name: name, Email: email, PhoneNumber: phone,
			})
			if err != nil {
				return err
			}
			fmt.Printf("welcome, %s\n", p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			if !d.tokens.IsAuthenticated() {
				fmt.Println("anonymous")
				return nil
			}
			profile, ok := d.tokens.Profile()
			if !ok {
				fmt.Println("authenticated (no profile cached)")
				return nil
			}
			status := "valid"
			if d.tokens.IsExpired("") {
				status = "expired"
			}
			fmt.Printf("%s (credential %s)\n", profile.Name, status)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential and profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			d.tokens.ClearCredential()
			fmt.Println("logged out")
			return nil
		},
	}
}

func newLearnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <project-id>",
		Short: "Ask to learn what this project teaches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			d, err := newDeps()
			if err != nil {
				return err
			}
			res, err := d.cli.CreateLearnRequest(context.Background(), id)
			if err != nil {
				return err
			}
			if res.SignupURL != "" {
				fmt.Printf("%s\nsign up here: %s\n", res.Message, res.SignupURL)
				return nil
			}
			fmt.Println(res.Message)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var limit int
	var course, weekStart, learnerUID string
	var weekly bool
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show top creators",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if learnerUID != "" {
				stats, err := d.cli.GetLearnerStats(ctx, learnerUID)
				if err != nil {
					return err
				}
				return printJSON(stats)
			}
			if weekly {
				// Only the current week's snapshot is cached; a dated request
				// goes straight to the backend.
				if weekStart != "" {
					wl, err := d.cli.GetWeeklyLeaderboard(ctx, weekStart)
					if err != nil {
						return err
					}
					return printJSON(wl)
				}
				loader := gallery.Loader[*client.WeeklyLeaderboard]{
					Store: d.st,
					Key:   gallery.KeyLeaderboardWeek,
					Fetch: func(ctx context.Context) (*client.WeeklyLeaderboard, error) {
						return client.WithRetry(ctx, func(ctx context.Context) (*client.WeeklyLeaderboard, error) {
							return d.cli.GetWeeklyLeaderboard(ctx, "")
						}, client.RetryOptions{MaxRetries: d.cfg.MaxRetries, RetryDelay: d.cfg.RetryDelay})
					},
				}
				var printed bool
				err := loader.Load(ctx, func(wl *client.WeeklyLeaderboard, fromCache bool) {
					if fromCache {
						fmt.Fprintln(os.Stderr, "(cached)")
					}
					_ = printJSON(wl)
					printed = true
				})
				if err != nil && printed {
					fmt.Fprintln(os.Stderr, "refresh failed, showing cached data")
					return nil
				}
				return err
			}

			loader := gallery.Loader[[]client.LeaderboardEntry]{
				Store:        d.st,
				Key:          gallery.KeyLeaderboardAll,
				FallbackKeys: []string{gallery.KeyTopCreators},
				Fetch: func(ctx context.Context) ([]client.LeaderboardEntry, error) {
					return client.WithRetry(ctx, func(ctx context.Context) ([]client.LeaderboardEntry, error) {
						return d.cli.GetLeaderboard(ctx, client.LeaderboardParams{Limit: limit, CourseName: course})
					}, client.RetryOptions{MaxRetries: d.cfg.MaxRetries, RetryDelay: d.cfg.RetryDelay})
				},
			}
			var printed bool
			err = loader.Load(ctx, func(v []client.LeaderboardEntry, fromCache bool) {
				if fromCache {
					fmt.Fprintln(os.Stderr, "(cached)")
				}
				_ = printJSON(v)
				printed = true
			})
			if err != nil && printed {
				fmt.Fprintln(os.Stderr, "refresh failed, showing cached data")
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of creators")
	cmd.Flags().StringVar(&course, "course", "", "Filter by course name")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "Show the frozen weekly snapshot")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "Week start date (YYYY-MM-DD, with --weekly)")
	cmd.Flags().StringVar(&learnerUID, "learner", "", "Show one learner's stats by UID")
	return cmd
}
