package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/darriusnjh/KIRKIFY/internal/app"
	"github.com/darriusnjh/KIRKIFY/internal/server"
	"github.com/darriusnjh/KIRKIFY/internal/store"
	"github.com/darriusnjh/KIRKIFY/internal/tray"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start tracking, the game server, and the tray menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data directory %q: %w", cfg.DataDir, err)
			}

			st, err := store.New(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			events := server.NewEventHub()

			a, err := app.New(app.Options{
				Config: cfg,
				Store:  st,
				Events: events,
			})
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Store:  st,
				Camera: a.Camera(),
				Events: events,
			})
			go func() {
				log.Printf("Server listening on %s", cfg.Server.Bind)
				if err := srv.ListenAndServe(cfg.Server.Bind); err != nil {
					log.Printf("Server error: %v", err)
				}
			}()

			if err := a.Start(); err != nil {
				return err
			}
			a.SetEnabled(true)
			a.StartRound(a.NewGame())

			t := tray.New()
			t.OnToggle(a.SetEnabled)
			t.OnNewRound(func() {
				a.FinishRound()
				a.StartRound(a.NewGame())
			})
			t.OnRestart(a.RestartSession)
			t.OnQuit(func() {
				a.FinishRound()
				a.Stop()
			})

			// Blocks until Quit is chosen from the menu.
			t.Run()
			return nil
		},
	}
}
