package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wablast/wablast/internal/db"
	"github.com/wablast/wablast/internal/models"
	"github.com/wablast/wablast/internal/templates"
)

var (
	templatesAddName     string
	templatesAddContent  string
	templatesEditRename  string
	templatesEditContent string
	templatesExportOut   string
)

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesAddCmd)
	templatesCmd.AddCommand(templatesEditCmd)
	templatesCmd.AddCommand(templatesRmCmd)
	templatesCmd.AddCommand(templatesImportCmd)
	templatesCmd.AddCommand(templatesExportCmd)

	templatesExportCmd.Flags().StringVarP(&templatesExportOut, "out", "o", "", "output file (default <name>.yaml)")

	templatesAddCmd.Flags().StringVar(&templatesAddName, "name", "", "template name (unique)")
	templatesAddCmd.Flags().StringVar(&templatesAddContent, "content", "", "template content with {field} placeholders")
	_ = templatesAddCmd.MarkFlagRequired("name")
	_ = templatesAddCmd.MarkFlagRequired("content")

	templatesEditCmd.Flags().StringVar(&templatesEditRename, "rename", "", "new template name")
	templatesEditCmd.Flags().StringVar(&templatesEditContent, "content", "", "new template content")
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage message templates",
	Long:  "Manage the stored message templates used for batch sends.",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		templates, err := db.NewTemplateRepository(database).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, templates)
		}

		rows := make([][]string, 0, len(templates))
		for _, tmpl := range templates {
			rows = append(rows, []string{
				strconv.FormatInt(tmpl.ID, 10),
				tmpl.Name,
				tmpl.UpdatedAt.Local().Format(time.DateTime),
			})
		}
		return writeTable(os.Stdout, []string{"ID", "NAME", "UPDATED"}, rows)
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a template's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		tmpl, err := db.NewTemplateRepository(database).GetByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}
		fmt.Fprintln(os.Stdout, tmpl.Content)
		return nil
	},
}

var templatesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new template",
	Long:  "Add a new message template. The name must not be in use yet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		tmpl := &models.Template{Name: templatesAddName, Content: templatesAddContent}
		if err := db.NewTemplateRepository(database).Create(cmd.Context(), tmpl); err != nil {
			if err == db.ErrTemplateNameExists {
				return fmt.Errorf("template name %q already exists, choose another", templatesAddName)
			}
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}
		fmt.Fprintf(os.Stdout, "Template %q created (ID: %d)\n", tmpl.Name, tmpl.ID)
		return nil
	},
}

var templatesEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit an existing template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if templatesEditRename == "" && !cmd.Flags().Changed("content") {
			return fmt.Errorf("nothing to change: pass --rename and/or --content")
		}

		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewTemplateRepository(database)
		tmpl, err := repo.GetByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if templatesEditRename != "" {
			tmpl.Name = templatesEditRename
		}
		if cmd.Flags().Changed("content") {
			tmpl.Content = templatesEditContent
		}

		if err := repo.Update(cmd.Context(), tmpl); err != nil {
			if err == db.ErrTemplateNameExists {
				return fmt.Errorf("template name %q already exists, choose another", tmpl.Name)
			}
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, tmpl)
		}
		fmt.Fprintf(os.Stdout, "Template %q updated\n", tmpl.Name)
		return nil
	},
}

var templatesRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewTemplateRepository(database)
		tmpl, err := repo.GetByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := repo.Delete(cmd.Context(), tmpl.ID); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Template %q deleted\n", tmpl.Name)
		return nil
	},
}

var templatesImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import templates from YAML files",
	Long:  "Import templates from a YAML file, or every .yaml/.yml file in a directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		var files []*templates.File
		if info.IsDir() {
			files, err = templates.LoadDir(args[0])
		} else {
			var file *templates.File
			file, err = templates.LoadFile(args[0])
			files = []*templates.File{file}
		}
		if err != nil {
			return err
		}

		repo := db.NewTemplateRepository(database)
		imported := 0
		for _, file := range files {
			tmpl := &models.Template{Name: file.Name, Content: file.Message}
			if err := repo.Create(cmd.Context(), tmpl); err != nil {
				if err == db.ErrTemplateNameExists {
					fmt.Fprintf(os.Stdout, "Skipping %q: name already exists\n", file.Name)
					continue
				}
				return err
			}
			imported++
		}

		fmt.Fprintf(os.Stdout, "Imported %d template(s)\n", imported)
		return nil
	},
}

var templatesExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a template to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		tmpl, err := db.NewTemplateRepository(database).GetByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := templatesExportOut
		if out == "" {
			out = tmpl.Name + ".yaml"
		}

		file := &templates.File{Name: tmpl.Name, Message: tmpl.Content}
		if err := templates.WriteFile(out, file); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Template %q exported to %s\n", tmpl.Name, out)
		return nil
	},
}
