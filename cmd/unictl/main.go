// Package main provides the unictl binary, a command-line front end for the
// enrollment system. It operates directly on the configured store through the
// same services the API serves.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campus-labs/uni-enroll-api/internal/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "unictl",
		Short:         "University enrollment management",
		Long:          "unictl manages students, subject enrollments and admin reports against the configured roster store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		registerCmd(),
		loginCmd(),
		subjectsCmd(),
		enrollCmd(),
		unenrollCmd(),
		studentsCmd(),
		reportCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("unictl version %s\n", version)
		},
	}
}

func registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new student",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			student, err := app.Students.Register(cmd.Context(), registerRequest(name, email, password))
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s (%s) with ID %s\n", student.Name, student.Email, student.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "University email (@university.com)")
	cmd.Flags().StringVar(&password, "password", "", "Password (uppercase start, 5+ letters, 3+ digits)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func loginCmd() *cobra.Command {
	var email, password, adminID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			session, err := app.Login(cmd.Context(), email, adminID, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", session.Name, session.Role)
			fmt.Println(session.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Student email")
	cmd.Flags().StringVar(&adminID, "admin-id", "", "Admin ID (instead of --email)")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func subjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List the subject catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			for _, subject := range app.Subjects.List(cmd.Context()) {
				fmt.Printf("%s  %-30s %d credits\n", subject.ID, subject.Name, subject.Credits)
			}
			return nil
		},
	}
}

func enrollCmd() *cobra.Command {
	var studentID, subjectID string
	var random bool

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a student in a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !random && subjectID == "" {
				return fmt.Errorf("either --subject or --random is required")
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			detail, err := app.Enroll(cmd.Context(), studentID, subjectID, random)
			if err != nil {
				return err
			}
			fmt.Printf("Enrolled in %s (%s): mark %d, grade %s\n",
				detail.SubjectName, detail.SubjectID, detail.Mark, detail.Grade)
			return nil
		},
	}

	cmd.Flags().StringVar(&studentID, "student", "", "Student ID")
	cmd.Flags().StringVar(&subjectID, "subject", "", "Subject ID")
	cmd.Flags().BoolVar(&random, "random", false, "Pick a random eligible subject")
	_ = cmd.MarkFlagRequired("student")
	return cmd
}

func unenrollCmd() *cobra.Command {
	var studentID, subjectID string

	cmd := &cobra.Command{
		Use:   "unenroll",
		Short: "Remove a student's enrollment",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.Enrollments.Unenroll(cmd.Context(), studentID, subjectID); err != nil {
				return err
			}
			fmt.Printf("Removed enrollment in %s\n", subjectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&studentID, "student", "", "Student ID")
	cmd.Flags().StringVar(&subjectID, "subject", "", "Subject ID")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func studentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Roster administration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all registered students",
		RunE: func(c *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			infos := app.Admin.ListStudents(c.Context())
			if len(infos) == 0 {
				fmt.Println("No students registered.")
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%s  %-25s %-30s %d enrollment(s)\n", info.ID, info.Name, info.Email, info.EnrollmentCount)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <student-id>",
		Short: "Remove a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.Admin.RemoveStudent(c.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed student %s\n", args[0])
			return nil
		},
	})

	var force bool
	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove every student",
		RunE: func(c *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to clear the roster without --force")
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.Admin.ClearAll(c.Context()); err != nil {
				return err
			}
			fmt.Println("Roster cleared.")
			return nil
		},
	}
	clear.Flags().BoolVar(&force, "force", false, "Confirm clearing all students")
	cmd.AddCommand(clear)

	return cmd
}

func reportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:       "report [grades|students]",
		Short:     "Render a roster report",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"grades", "students"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			var report *service.ReportFile
			switch args[0] {
			case "grades":
				report, err = app.Reports.GradeReport(cmd.Context(), format)
			default:
				report, err = app.Reports.StudentReport(cmd.Context(), format)
			}
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = report.Filename
			}
			if err := os.WriteFile(path, report.Data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("Wrote %s report to %s\n", args[0], path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", service.FormatCSV, "Output format: csv or pdf")
	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to the generated filename)")
	return cmd
}
