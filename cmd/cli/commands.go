package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	scheduleHomeTeam string
	scheduleAwayTeam string
	scheduleVenue    string
	scheduleDate     string
	scheduleStart    string
	scheduleDuration int

	slotsDate     string
	slotsDuration int

	suggestTeam     string
	suggestDate     string
	suggestDuration int

	matchesDate     string
	matchesTeam     string
	matchesUpcoming bool
)

func init() {
	scheduleCmd.Flags().StringVar(&scheduleHomeTeam, "home", "", "Home team id")
	scheduleCmd.Flags().StringVar(&scheduleAwayTeam, "away", "", "Away team id")
	scheduleCmd.Flags().StringVar(&scheduleVenue, "venue", "", "Venue name")
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "Match date (YYYY-MM-DD)")
	scheduleCmd.Flags().StringVar(&scheduleStart, "start", "", "Start time (HH:MM)")
	scheduleCmd.Flags().IntVar(&scheduleDuration, "duration", 360, "Duration in minutes")

	slotsCmd.Flags().StringVar(&slotsDate, "date", "", "Date to query (YYYY-MM-DD)")
	slotsCmd.Flags().IntVar(&slotsDuration, "duration", 360, "Duration in minutes")

	suggestCmd.Flags().StringVar(&suggestTeam, "team", "", "Team id")
	suggestCmd.Flags().StringVar(&suggestDate, "date", "", "Date to query (YYYY-MM-DD)")
	suggestCmd.Flags().IntVar(&suggestDuration, "duration", 360, "Duration in minutes")

	matchesCmd.Flags().StringVar(&matchesDate, "date", "", "Filter by date (YYYY-MM-DD)")
	matchesCmd.Flags().StringVar(&matchesTeam, "team", "", "Filter by team id")
	matchesCmd.Flags().BoolVar(&matchesUpcoming, "upcoming", false, "Only upcoming matches (requires --team)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a match between two teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/schedule", map[string]any{
			"home_team_id":     scheduleHomeTeam,
			"away_team_id":     scheduleAwayTeam,
			"venue":            scheduleVenue,
			"date":             scheduleDate,
			"start_time":       scheduleStart,
			"duration_minutes": scheduleDuration,
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [matchID]",
	Short: "Cancel a scheduled match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/cancel", map[string]any{
			"match_id": args[0],
		})
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches, optionally filtered by date or team",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if matchesDate != "" {
			params.Set("date", matchesDate)
		}
		if matchesTeam != "" {
			params.Set("team", matchesTeam)
		}
		if matchesUpcoming {
			params.Set("upcoming", "true")
		}
		endpoint := "/matches"
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
		return performGetRequest(endpoint)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show match counts by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/stats")
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List free time slots on a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("date", slotsDate)
		params.Set("duration", fmt.Sprintf("%d", slotsDuration))
		return performGetRequest("/availability/slots?" + params.Encode())
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest start times where most of a team is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("team_id", suggestTeam)
		params.Set("date", suggestDate)
		params.Set("duration", fmt.Sprintf("%d", suggestDuration))
		return performGetRequest("/availability/suggest?" + params.Encode())
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the club store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams in the club store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
