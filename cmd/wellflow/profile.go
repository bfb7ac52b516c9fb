package wellflow

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/model"
	"github.com/leomerlubo/wellflow/internal/service"
)

var (
	profileName       string
	profileDOB        string
	profileHeight     float64
	profileWeight     float64
	profileGender     string
	profileAddress    string
	profileLimit      float64
	profileClearLimit bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile, BMR, and daily limit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *service.App) error {
			p := a.Profile()
			age := service.ProfileAge(p, a.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "Date of birth: %s (age %d)\n", p.DateOfBirth, age)
			fmt.Fprintf(out, "Height: %.1f cm\n", p.HeightCm)
			fmt.Fprintf(out, "Weight: %.1f kg\n", p.WeightKg)
			fmt.Fprintf(out, "Gender: %s\n", p.Gender)
			if p.Address != "" {
				fmt.Fprintf(out, "Address: %s\n", p.Address)
			}
			fmt.Fprintf(out, "BMR: %s\n", formatKcal(a.BMR()))
			if p.ManualDailyLimit != nil {
				fmt.Fprintf(out, "Daily limit: %s (manual)\n", formatKcal(*p.ManualDailyLimit))
			} else {
				fmt.Fprintf(out, "Daily limit: %s (BMR)\n", formatKcal(a.DailyLimit()))
			}
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileClearLimit && cmd.Flags().Changed("limit") {
			return fmt.Errorf("use either --limit or --clear-limit")
		}
		return withApp(cmd, func(a *service.App) error {
			p := a.Profile()
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = profileName
			}
			if flags.Changed("dob") {
				p.DateOfBirth = profileDOB
			}
			if flags.Changed("height") {
				p.HeightCm = profileHeight
			}
			if flags.Changed("weight") {
				p.WeightKg = profileWeight
			}
			if flags.Changed("gender") {
				p.Gender = model.Gender(strings.ToLower(strings.TrimSpace(profileGender)))
			}
			if flags.Changed("address") {
				p.Address = profileAddress
			}
			if flags.Changed("limit") {
				limit := profileLimit
				p.ManualDailyLimit = &limit
			}
			if profileClearLimit {
				p.ManualDailyLimit = nil
			}
			if err := a.SaveProfile(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s (daily limit %s)\n", a.Profile().Name, formatKcal(a.DailyLimit()))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileDOB, "dob", "", "Date of birth YYYY-MM-DD")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
	profileSetCmd.Flags().StringVar(&profileAddress, "address", "", "Address (display only)")
	profileSetCmd.Flags().Float64Var(&profileLimit, "limit", 0, "Manual daily calorie limit (overrides BMR)")
	profileSetCmd.Flags().BoolVar(&profileClearLimit, "clear-limit", false, "Remove the manual limit and use BMR")
}
