package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csesa/portal-client/internal/model"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, _, err := newSession()
		if err != nil {
			return err
		}
		user, ok := session.CurrentUser()
		if !ok {
			return fmt.Errorf("not logged in; run `portal login`")
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		if role := user.Role.String(); role != "" {
			fmt.Printf("Role: %s\n", role)
		}
		if user.Domain != "" {
			fmt.Printf("Domain: %s\n", user.Domain)
		}
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events [id]",
	Short: "List events, or show one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, api, _, err := newSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			event, err := api.EventByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", event.Name, event.Date)
			if event.Location != "" {
				fmt.Printf("Location: %s\n", event.Location)
			}
			if event.Description != "" {
				fmt.Println(event.Description)
			}
			return nil
		}

		events, err := api.Events(ctx)
		if err != nil {
			return err
		}
		for _, e := range events {
			fmt.Printf("%d\t%s\t%s\n", e.ID, e.Date, e.Name)
		}
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List association projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, api, _, err := newSession()
		if err != nil {
			return err
		}
		projects, err := api.Projects(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range projects {
			line := fmt.Sprintf("%d\t%s", p.ID, p.Name)
			if p.Status != "" {
				line += "\t[" + p.Status + "]"
			}
			fmt.Println(line)
			if p.DescriptionShort != "" {
				fmt.Println("\t" + p.DescriptionShort)
			}
		}
		return nil
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "List association members",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, api, _, err := newSession()
		if err != nil {
			return err
		}
		members, err := api.Members(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range members {
			role := m.Role.String()
			if role == "" {
				role = "-"
			}
			fmt.Printf("%s\t%s\t%s\n", m.Name, role, m.Email)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, api, _, err := newSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if cmd.Flags().Changed("skills") || cmd.Flags().Changed("batch") {
			update := profileUpdateFromFlags(cmd)
			user, err := api.UpdateProfile(ctx, update)
			if err != nil {
				return err
			}
			fmt.Printf("Profile updated for %s\n", user.Email)
			return nil
		}

		user, err := api.Profile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		if user.Batch != "" {
			fmt.Printf("Batch: %s\n", user.Batch)
		}
		if len(user.Skills) > 0 {
			fmt.Printf("Skills: %s\n", strings.Join(user.Skills, ", "))
		}
		return nil
	},
}

var (
	profileSkills string
	profileBatch  string
)

func profileUpdateFromFlags(cmd *cobra.Command) (update model.ProfileUpdate) {
	if cmd.Flags().Changed("batch") {
		update.Batch = &profileBatch
	}
	if cmd.Flags().Changed("skills") {
		skills := strings.Split(profileSkills, ",")
		for i := range skills {
			skills[i] = strings.TrimSpace(skills[i])
		}
		update.Skills = &skills
	}
	return update
}

func init() {
	profileCmd.Flags().StringVar(&profileSkills, "skills", "", "Comma-separated skills to set")
	profileCmd.Flags().StringVar(&profileBatch, "batch", "", "Batch to set")
	rootCmd.AddCommand(whoamiCmd, eventsCmd, projectsCmd, teamCmd, profileCmd)
}
