package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/lakra"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/meta"
)

// registerAppCommands registers the built-in ex-style commands.
func registerAppCommands(app *App) {
	api := app.editorAPI

	register := func(name string, fn func(args []string) error) {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}

	// --- File commands ---
	register("w", func(args []string) error {
		if err := api.SaveBuffer(args...); err != nil {
			return err
		}
		api.SetStatusMessage("Saved %s", api.GetBufferFilePath())
		return nil
	})
	register("q", func(args []string) error {
		api.RequestQuit(false)
		return nil
	})
	register("q!", func(args []string) error {
		api.RequestQuit(true)
		return nil
	})
	register("wq", func(args []string) error {
		if err := api.SaveBuffer(args...); err != nil {
			return err
		}
		api.RequestQuit(false)
		return nil
	})

	// --- Provenance commands ---
	register("stats", func(args []string) error {
		stats := api.GetSourceStats()
		if stats.TotalRunes == 0 {
			api.SetStatusMessage("Empty buffer, no composition to report")
			return nil
		}
		api.SetStatusMessage("typed %.1f%% (%d), pasted %.1f%% (%d), authenticity: %s",
			stats.TypedPercent(), stats.TypedRunes,
			stats.PastedPercent(), stats.PastedRunes,
			stats.AuthenticityTier())
		return nil
	})

	register("meta", func(args []string) error {
		segs := api.GetSegments()
		if len(segs) == 0 {
			api.SetStatusMessage("No provenance segments tracked")
			return nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d segments:", len(segs))
		const maxShown = 6
		for i, seg := range segs {
			if i == maxShown {
				fmt.Fprintf(&b, " ... (+%d more)", len(segs)-maxShown)
				break
			}
			fmt.Fprintf(&b, " [%d,%d) %s", seg.Start, seg.End, seg.Source)
		}
		api.SetStatusMessage("%s", b.String())
		return nil
	})

	register("report", func(args []string) error {
		segs, totalRunes := app.editor.GetTracker().Snapshot()
		report := meta.Report(api.GetBufferFilePath(), segs, totalRunes)

		destPath := ""
		if len(args) > 0 {
			destPath = args[0]
		} else if fp := api.GetBufferFilePath(); fp != "" {
			destPath = fp + ".report.txt"
		} else {
			return fmt.Errorf("no file name, pass a destination: :report <path>")
		}

		if err := os.WriteFile(destPath, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		api.SetStatusMessage("Report written to %s", destPath)
		return nil
	})

	register("export", func(args []string) error {
		destPath := ""
		switch {
		case len(args) > 0:
			destPath = args[0]
		case api.GetBufferFilePath() != "":
			destPath = lakra.SidecarPath(api.GetBufferFilePath())
		default:
			return fmt.Errorf("no file name, pass a destination: :export <path>")
		}

		segs := api.GetSegments()
		if err := lakra.ExportMetadata(destPath, segs); err != nil {
			return err
		}
		api.SetStatusMessage("Metadata exported to %s (%d segments)", destPath, len(segs))
		return nil
	})

	register("import", func(args []string) error {
		srcPath := ""
		switch {
		case len(args) > 0:
			srcPath = args[0]
		case api.GetBufferFilePath() != "":
			srcPath = lakra.SidecarPath(api.GetBufferFilePath())
		default:
			return fmt.Errorf("no file name, pass a source: :import <path>")
		}

		segs, err := lakra.ImportMetadata(srcPath)
		if err != nil {
			return err
		}
		tracker := app.editor.GetTracker()
		tracker.Restore(segs, app.editor.GetBuffer().RuneCount())
		app.eventManager.Dispatch(event.TypeSegmentsChanged, event.SegmentsChangedData{
			SegmentCount: len(tracker.Segments()),
		})
		api.SetStatusMessage("Metadata imported from %s (%d segments)", srcPath, len(segs))
		app.requestRedraw()
		return nil
	})

	register("backup", func(args []string) error {
		fp := api.GetBufferFilePath()
		if fp == "" {
			return fmt.Errorf("no file name, save the buffer first")
		}
		backupPath, err := lakra.Backup(fp)
		if err != nil {
			return err
		}
		if backupPath == "" {
			api.SetStatusMessage("Nothing to back up yet")
			return nil
		}
		api.SetStatusMessage("Backup written to %s", backupPath)
		return nil
	})

	// --- Theme commands ---
	register("theme", func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", app.GetTheme().Name)
			return nil
		}
		themeName := strings.Join(args, " ")
		if err := api.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s",
				themeName, strings.Join(api.ListThemes(), ", "))
		}
		api.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	})
	register("themes", func(args []string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
		return nil
	})
}
