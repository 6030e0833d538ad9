package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mrowl-dungeon/internal/persist"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List, delete, export and import saved runs",
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		saves, err := cliSaves()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		return printSaves(cmd.OutOrStdout(), saves.ListSaves(), format)
	},
}

var savesRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a player's save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saves, err := cliSaves()
		if err != nil {
			return err
		}
		if !saves.HasSave(args[0]) {
			return fmt.Errorf("no save for %q", args[0])
		}
		if !saves.DeleteSave(args[0]) {
			return fmt.Errorf("could not delete save for %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted save for %s\n", args[0])
		return nil
	},
}

var savesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		saves, err := cliSaves()
		if err != nil {
			return err
		}
		return saves.Clear()
	},
}

var savesExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write every save to FILE as JSON (stdout when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saves, err := cliSaves()
		if err != nil {
			return err
		}
		data, err := saves.ExportAll()
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

var savesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore saves from an export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saves, err := cliSaves()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		n, err := saves.Import(data)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d saves\n", n)
		return nil
	},
}

func init() {
	savesListCmd.Flags().StringP("output", "o", "table", "table or yaml")
	savesCmd.AddCommand(savesListCmd, savesRmCmd, savesClearCmd, savesExportCmd, savesImportCmd)
	rootCmd.AddCommand(savesCmd)
}

func cliSaves() (*persist.Saves, error) {
	return openSaves(newLogger(os.Stderr))
}

type saveRow struct {
	Name     string    `yaml:"name"`
	SavedAt  time.Time `yaml:"saved_at"`
	Monsters int       `yaml:"monsters_defeated"`
	PlayTime string    `yaml:"play_time"`
}

func printSaves(w io.Writer, infos []persist.SaveInfo, format string) error {
	rows := make([]saveRow, len(infos))
	for i, s := range infos {
		rows[i] = saveRow{Name: s.Name, SavedAt: s.SavedAt, Monsters: s.MonstersDefeated, PlayTime: s.PlayTime}
	}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	case "table", "":
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "No saves.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSAVED\tMONSTERS\tPLAY TIME")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Name, r.SavedAt.Local().Format(time.DateTime), r.Monsters, r.PlayTime)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
