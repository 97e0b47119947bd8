package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/darriusnjh/KIRKIFY/internal/store"
)

func newScoresCommand(configFlag *string) *cobra.Command {
	var showSessions bool

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show high scores and recent rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			st, err := store.New(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			scores, err := st.Scores().List()
			if err != nil {
				return fmt.Errorf("load scores: %w", err)
			}

			if len(scores) == 0 {
				cmd.Println("No high scores yet.")
			} else {
				rows := make([][]string, 0, len(scores))
				for _, hs := range scores {
					rows = append(rows, []string{
						hs.Mode,
						strconv.Itoa(hs.Score),
						hs.AchievedAt.Format("2006-01-02 15:04"),
					})
				}
				cmd.Println(renderTable(
					[]string{"Mode", "Score", "Achieved"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
			}

			if !showSessions {
				return nil
			}

			sessions, err := st.Sessions().Recent(10)
			if err != nil {
				return fmt.Errorf("load sessions: %w", err)
			}
			if len(sessions) == 0 {
				cmd.Println("No rounds recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(sessions))
			for _, sess := range sessions {
				rows = append(rows, []string{
					sess.Mode,
					strconv.Itoa(sess.Score),
					strconv.Itoa(sess.Gestures),
					fmt.Sprintf("%.0fs", float64(sess.DurationMS)/1000),
					sess.EndedAt.Format("2006-01-02 15:04"),
				})
			}
			cmd.Println(renderTable(
				[]string{"Mode", "Score", "Gestures", "Length", "Ended"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSessions, "sessions", false, "Also list recent rounds")

	return cmd
}
