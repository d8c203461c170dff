// Package data implements export, import, and clear.
package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/haeunlee/ofter/internal/cli"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file. Defaults to ofter-export-YYYY-MM-DD.json."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data := ctx.Engine().Export()

	out := c.Output
	if out == "" {
		out = fmt.Sprintf("ofter-export-%s.json", time.Now().Format("2006-01-02"))
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(out, raw, 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Printf("Exported %d activities and %d sessions to %s\n",
		len(data.Activities), len(data.Sessions), out)
	return nil
}

type ImportCmd struct {
	File  string `arg:"" help:"Export file to import."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if !c.Force {
		ok, err := cli.Confirm("Importing replaces ALL current activities and sessions. Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	eng := ctx.Engine()
	if !eng.ImportJSON(raw) {
		return fmt.Errorf("import failed: %s is not a valid export file", c.File)
	}

	fmt.Printf("Imported %d activities and %d sessions\n",
		len(eng.Activities()), len(eng.Sessions()))
	return nil
}

type ClearCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Force {
		ok, err := cli.Confirm("Delete ALL activities, sessions, and running timers?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx.Engine().ClearAll()
	fmt.Println("All data cleared.")
	return nil
}
