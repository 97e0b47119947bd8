package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/darriusnjh/KIRKIFY/internal/capture"
	"github.com/darriusnjh/KIRKIFY/internal/detector"
	"github.com/darriusnjh/KIRKIFY/internal/store"
)

func newDiagnoseCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Check the camera, detector service, and database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				report(cmd, false, "configuration: %v", err)
				return fmt.Errorf("diagnosis failed")
			}
			report(cmd, true, "configuration valid")

			failures := 0

			if script := detector.FindServiceScript(); script != "" {
				report(cmd, true, "detector service script: %s", script)
			} else {
				failures++
				report(cmd, false, "detector service script not found")
			}

			if path, err := exec.LookPath("python3"); err == nil {
				report(cmd, true, "python3: %s", path)
			} else {
				failures++
				report(cmd, false, "python3 not found in PATH")
			}

			cam := capture.NewCamera(capture.Options{
				DeviceID: cfg.Capture.DeviceID,
				Mirror:   cfg.Capture.Mirror,
			})
			if err := cam.Open(); err != nil {
				failures++
				report(cmd, false, "camera device %d: %v", cfg.Capture.DeviceID, err)
			} else {
				frame, err := cam.ReadFrame()
				if err != nil {
					failures++
					report(cmd, false, "camera read: %v", err)
				} else {
					report(cmd, true, "camera device %d delivers frames", cfg.Capture.DeviceID)
					frame.Close()
				}
				cam.Close()
			}

			if err := checkDatabase(cfg.DataDir); err != nil {
				failures++
				report(cmd, false, "database: %v", err)
			} else {
				report(cmd, true, "database writable under %s", cfg.DataDir)
			}

			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			cmd.Println("All checks passed.")
			return nil
		},
	}
}

// checkDatabase opens a throwaway database in the data dir to prove the
// directory is writable and the SQLite driver works.
func checkDatabase(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dataDir, ".diagnose.db")
	defer os.Remove(path)

	st, err := store.New(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.Settings().Set("diagnose", "ok")
}

func report(cmd *cobra.Command, ok bool, format string, args ...any) {
	mark := "✗"
	if ok {
		mark = "✓"
	}
	cmd.Printf("%s %s\n", mark, fmt.Sprintf(format, args...))
}
