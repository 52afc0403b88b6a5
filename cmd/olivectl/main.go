package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oliveapp/olive-server/internal/language"
	"github.com/oliveapp/olive-server/internal/locale"
	"github.com/oliveapp/olive-server/internal/logger"
)

var (
	apiFlag   string
	tokenFlag string
	rootCmd   = &cobra.Command{
		Use:   "olivectl",
		Short: "CLI client for the olive REST API",
	}
)

// cliAuth marks the CLI as an authenticated caller; identity comes
// from the bearer token, so the actor ID is never read.
type cliAuth struct{}

func (cliAuth) Authenticated() bool { return true }
func (cliAuth) ActorID() string     { return "cli" }
func (cliAuth) SpaceID() string     { return "" }

func buildClient() (*client, error) {
	cfg, err := loadCtlConfig()
	if err != nil {
		return nil, err
	}
	api := apiFlag
	if api == "" {
		api = cfg.API
	}
	if api == "" {
		api = "http://localhost:8080"
	}
	token := tokenFlag
	if token == "" {
		token = cfg.Token
	}
	if token == "" {
		return nil, fmt.Errorf("no API token: pass --token or set it in config.yaml")
	}
	return newClient(api, token), nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "", "olive service base URL")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "", "API token")

	rootCmd.AddCommand(notesCmd(), listsCmd(), profileCmd(), languageCmd(), viewsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func notesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notes", Short: "Manage notes"}

	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			body := map[string]interface{}{"originalInput": args[0]}
			if v, _ := cmd.Flags().GetString("priority"); v != "" {
				body["priority"] = v
			}
			if v, _ := cmd.Flags().GetString("due"); v != "" {
				body["dueDate"] = v
			}
			if v, _ := cmd.Flags().GetString("list"); v != "" {
				body["listId"] = v
			}
			n, err := c.CreateNote(cmd.Context(), body)
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", n.NoteID)
			return nil
		},
	}
	add.Flags().StringP("priority", "p", "", "low, medium or high")
	add.Flags().String("due", "", "due date (RFC 3339)")
	add.Flags().StringP("list", "l", "", "list ID")
	cmd.AddCommand(add)

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			query := map[string]string{}
			if done, _ := cmd.Flags().GetBool("completed"); done {
				query["completed"] = "true"
			}
			if v, _ := cmd.Flags().GetString("list"); v != "" {
				query["listId"] = v
			}
			notes, err := c.ListNotes(cmd.Context(), query)
			if err != nil {
				return err
			}
			for _, n := range notes {
				mark := " "
				if n.Completed {
					mark = "x"
				}
				fmt.Printf("[%s] %-36s %-6s %s\n", mark, n.NoteID, n.Priority, n.OriginalInput)
			}
			return nil
		},
	}
	ls.Flags().Bool("completed", false, "show completed notes")
	ls.Flags().StringP("list", "l", "", "filter by list ID")
	cmd.AddCommand(ls)

	done := &cobra.Command{
		Use:   "done <noteId>",
		Short: "Complete a note (recurring notes reschedule)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			n, err := c.CompleteNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if n.Completed {
				fmt.Println("completed")
			} else if n.DueDate != nil {
				fmt.Printf("rescheduled to %s\n", n.DueDate.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.AddCommand(done)

	rm := &cobra.Command{
		Use:   "rm <noteId>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			return c.DeleteNote(cmd.Context(), args[0])
		},
	}
	cmd.AddCommand(rm)

	return cmd
}

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "lists", Short: "Manage lists"}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			l, err := c.CreateList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", l.ListID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			lists, err := c.ListLists(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range lists {
				fmt.Printf("%-36s %s\n", l.ListID, l.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <listId>",
		Short: "Delete a list (its notes survive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			return c.DeleteList(cmd.Context(), args[0])
		},
	})

	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Show or update the profile"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			p, err := c.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("actor:    %s\nspace:    %s\n", p.ActorID, p.SpaceID)
			if p.DisplayName != nil {
				fmt.Printf("name:     %s\n", *p.DisplayName)
			}
			if p.PartnerID != nil {
				fmt.Printf("partner:  %s\n", *p.PartnerID)
			}
			if p.Language != nil {
				fmt.Printf("language: %s\n", *p.Language)
			}
			return nil
		},
	})

	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			patch := map[string]interface{}{}
			if v, _ := cmd.Flags().GetString("name"); v != "" {
				patch["displayName"] = v
			}
			if v, _ := cmd.Flags().GetString("partner"); v != "" {
				patch["partnerId"] = v
			}
			if v, _ := cmd.Flags().GetString("timezone"); v != "" {
				patch["timeZone"] = v
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update")
			}
			_, err = c.PatchProfile(cmd.Context(), patch)
			return err
		},
	}
	set.Flags().String("name", "", "display name")
	set.Flags().String("partner", "", "partner actor ID")
	set.Flags().String("timezone", "", "IANA time zone")
	cmd.AddCommand(set)

	return cmd
}

func languageCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "language", Short: "Show or change the UI language"}

	// The CLI runs the same resolution chain as a web session: remote
	// preference first, then the on-disk cache, then the default.
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved language",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			local, err := newDiskLocaleStore()
			if err != nil {
				return err
			}
			coord := language.NewCoordinator(c, logger.New("olivectl"))
			resolved := coord.Resolve(cmd.Context(), "/", language.Env{
				Auth:  cliAuth{},
				Local: local,
			})
			fmt.Println(resolved)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <code>",
		Short: "Change the language (persists locally and on the profile)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := locale.Parse(args[0])
			if !ok {
				return fmt.Errorf("unsupported language %q", args[0])
			}
			c, err := buildClient()
			if err != nil {
				return err
			}
			local, err := newDiskLocaleStore()
			if err != nil {
				return err
			}
			coord := language.NewCoordinator(c, logger.New("olivectl"))
			env := language.Env{Auth: cliAuth{}, Local: local}
			coord.Resolve(cmd.Context(), "/", env)
			coord.ChangeLanguage(cmd.Context(), l, "/", env)
			fmt.Println(coord.Current())
			return nil
		},
	})

	return cmd
}

func viewsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "views", Short: "Derived read views"}

	priority := &cobra.Command{
		Use:   "priority",
		Short: "Top notes by priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			notes, err := c.PriorityView(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for i, n := range notes {
				fmt.Printf("%d. [%-6s] %s\n", i+1, n.Priority, n.OriginalInput)
			}
			return nil
		},
	}
	priority.Flags().IntP("limit", "k", 3, "number of notes")
	cmd.AddCommand(priority)

	cmd.AddCommand(&cobra.Command{
		Use:   "reminders",
		Short: "Pending reminders, soonest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			rs, err := c.RemindersView(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range rs {
				fmt.Printf("%s  %-8s %s\n", r.At.Format("2006-01-02 15:04"), r.Kind, r.NoteID)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "badges",
		Short: "Navigation badge counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildClient()
			if err != nil {
				return err
			}
			b, err := c.BadgesView(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("urgent: %d\nupcoming: %d\n", b.Urgent, b.Upcoming)
			return nil
		},
	})

	return cmd
}
