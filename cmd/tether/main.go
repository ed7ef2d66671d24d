package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tetherhq/tether/internal/config"
	"github.com/tetherhq/tether/internal/insights"
	"github.com/tetherhq/tether/internal/journal"
	"github.com/tetherhq/tether/internal/sched"
	"github.com/tetherhq/tether/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "tether",
	Short: "tether - relationship journal and behavioral profile",
}

var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Manage tracked connections",
}

var connectionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new connection",
	RunE:  runConnectionAdd,
}

var connectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connections with log counts",
	RunE:  runConnectionList,
}

var connectionArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a connection",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnectionArchive,
}

var connectionRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore an archived connection",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnectionRestore,
}

var connectionUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a connection's identity fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnectionUpdate,
}

var connectionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a connection and all of its logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnectionDelete,
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record journal entries",
}

var logDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Record a daily check-in",
	RunE:  runLogDaily,
}

var logSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Record a saved AI-session artifact",
	RunE:  runLogSaved,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the behavioral profile (cached when fresh)",
	RunE:  runProfile,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a profile recomputation",
	RunE:  runRefresh,
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the profile timeline",
	RunE:  runTimeline,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled profile refresher until interrupted",
	RunE:  runServe,
}

var (
	nameFlag     string
	categoryFlag string
	zodiacFlag   string
	iconFlag     string

	connFlag      string
	energyFlag    string
	directionFlag string
	clarityFlag   int
	emotionFlag   string
	signalsFlag   []string
	notesFlag     string
	dateFlag      string

	sourceFlag  string
	titleFlag   string
	summaryFlag string
	contentFlag string
)

func init() {
	connectionAddCmd.Flags().StringVar(&nameFlag, "name", "", "Connection name (required)")
	connectionAddCmd.Flags().StringVar(&categoryFlag, "category", "", "Category tag")
	connectionAddCmd.Flags().StringVar(&zodiacFlag, "zodiac", "", "Zodiac label")
	connectionAddCmd.Flags().StringVar(&iconFlag, "icon", "", "Icon name")
	connectionUpdateCmd.Flags().StringVar(&nameFlag, "name", "", "Connection name")
	connectionUpdateCmd.Flags().StringVar(&categoryFlag, "category", "", "Category tag")
	connectionUpdateCmd.Flags().StringVar(&zodiacFlag, "zodiac", "", "Zodiac label")
	connectionUpdateCmd.Flags().StringVar(&iconFlag, "icon", "", "Icon name")
	connectionCmd.AddCommand(connectionAddCmd, connectionListCmd, connectionArchiveCmd,
		connectionRestoreCmd, connectionUpdateCmd, connectionDeleteCmd)

	logDailyCmd.Flags().StringVar(&connFlag, "connection", "", "Connection ID (required)")
	logDailyCmd.Flags().StringVar(&energyFlag, "energy", journal.EnergyBalanced, "Energy exchange: who carried the effort")
	logDailyCmd.Flags().StringVar(&directionFlag, "direction", journal.DirectionSame, "Direction: Closer, Further away, Same")
	logDailyCmd.Flags().IntVar(&clarityFlag, "clarity", 50, "Clarity score 0-100")
	logDailyCmd.Flags().StringVar(&emotionFlag, "emotion", journal.EmotionUncertain, "Emotion state")
	logDailyCmd.Flags().StringSliceVar(&signalsFlag, "signal", nil, "Effort signal tag (repeatable)")
	logDailyCmd.Flags().StringVar(&notesFlag, "notes", "", "Free-text notes")
	logDailyCmd.Flags().StringVar(&dateFlag, "date", "", "Log date (YYYY-MM-DD, default today)")

	logSavedCmd.Flags().StringVar(&connFlag, "connection", "", "Connection ID (required)")
	logSavedCmd.Flags().StringVar(&sourceFlag, "source", "", "Source feature: clarity, decoder, stars")
	logSavedCmd.Flags().StringVar(&titleFlag, "title", "", "Session title")
	logSavedCmd.Flags().StringVar(&summaryFlag, "summary", "", "Session summary")
	logSavedCmd.Flags().StringVar(&contentFlag, "content", "", "Full session content")
	logSavedCmd.Flags().StringVar(&dateFlag, "date", "", "Log date (YYYY-MM-DD, default today)")
	logCmd.AddCommand(logDailyCmd, logSavedCmd)

	rootCmd.AddCommand(connectionCmd, logCmd, profileCmd, refreshCmd, timelineCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*journal.Store, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := journal.NewStore(cfg.Data.JournalDBPath)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func openService() (*insights.Service, *journal.Store, *config.Config, error) {
	store, cfg, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}
	kv, err := storage.NewSQLiteKV(cfg.Data.CacheDBPath)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	svc := insights.NewService(store, kv, insights.Options{
		WindowDays:    cfg.Profile.WindowDays,
		CacheTTL:      time.Duration(cfg.Profile.CacheTTLHours) * time.Hour,
		TimelineLimit: cfg.Profile.TimelineLimit,
	})
	return svc, store, cfg, nil
}

// loadProfileInput reads identity, boundaries, and reflections from the
// configured input file, defaulting to a minimal identity when absent.
func loadProfileInput(cfg *config.Config) (insights.ProfileInput, error) {
	input := insights.ProfileInput{Identity: insights.Identity{Name: "You"}}
	if cfg.Profile.InputPath == "" {
		return input, nil
	}

	data, err := os.ReadFile(cfg.Profile.InputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return input, nil
		}
		return input, fmt.Errorf("read profile input: %w", err)
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("parse profile input: %w", err)
	}
	if strings.TrimSpace(input.Identity.Name) == "" {
		input.Identity.Name = "You"
	}
	return input, nil
}

func runConnectionAdd(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	conn, err := store.CreateConnection(nameFlag, categoryFlag, zodiacFlag, iconFlag)
	if err != nil {
		return err
	}
	fmt.Printf("added %s (%s)\n", conn.Name, conn.ID)
	return nil
}

func runConnectionList(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	conns, err := store.ListConnections()
	if err != nil {
		return err
	}
	if len(conns) == 0 {
		fmt.Println("no connections yet")
		return nil
	}
	for _, c := range conns {
		fmt.Printf("%s  %-20s %-10s %d check-ins, %d saved\n",
			c.ID, c.Name, c.Status, len(c.DailyLogs), len(c.SavedLogs))
	}
	return nil
}

func runConnectionArchive(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.ArchiveConnection(args[0])
}

func runConnectionRestore(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RestoreConnection(args[0])
}

func runConnectionUpdate(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// Unset flags keep the current value; the store rewrites all fields.
	conns, err := store.ListConnections()
	if err != nil {
		return err
	}
	name, category, zodiac, icon := nameFlag, categoryFlag, zodiacFlag, iconFlag
	for _, c := range conns {
		if c.ID != args[0] {
			continue
		}
		if name == "" {
			name = c.Name
		}
		if category == "" {
			category = c.Category
		}
		if zodiac == "" {
			zodiac = c.Zodiac
		}
		if icon == "" {
			icon = c.Icon
		}
		break
	}

	if err := store.UpdateConnection(args[0], name, category, zodiac, icon); err != nil {
		return err
	}
	fmt.Printf("updated %s\n", args[0])
	return nil
}

func runConnectionDelete(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.DeleteConnection(args[0])
}

func runLogDaily(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	date, err := parseDateFlag()
	if err != nil {
		return err
	}
	entry, err := store.AppendDailyLog(journal.DailyLog{
		ConnectionID:   connFlag,
		Date:           date,
		EnergyExchange: energyFlag,
		Direction:      directionFlag,
		Clarity:        clarityFlag,
		EffortSignals:  signalsFlag,
		EmotionState:   emotionFlag,
		Notes:          notesFlag,
	})
	if err != nil {
		return err
	}
	fmt.Printf("logged check-in %s\n", entry.ID)
	return nil
}

func runLogSaved(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	date, err := parseDateFlag()
	if err != nil {
		return err
	}
	entry, err := store.AppendSavedLog(journal.SavedLog{
		ConnectionID: connFlag,
		Date:         date,
		Source:       sourceFlag,
		Title:        titleFlag,
		Summary:      summaryFlag,
		Content:      contentFlag,
	})
	if err != nil {
		return err
	}
	fmt.Printf("saved session %s\n", entry.ID)
	return nil
}

func parseDateFlag() (time.Time, error) {
	if dateFlag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", dateFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", dateFlag, err)
	}
	return t, nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	input, err := loadProfileInput(cfg)
	if err != nil {
		return err
	}
	summary, err := svc.GetSummary(input)
	if err != nil {
		return err
	}
	return printJSON(summary)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	input, err := loadProfileInput(cfg)
	if err != nil {
		return err
	}
	summary, err := svc.Refresh(input)
	if err != nil {
		return err
	}
	return printJSON(summary)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	input, err := loadProfileInput(cfg)
	if err != nil {
		return err
	}
	timeline, err := svc.GetTimeline(input)
	if err != nil {
		return err
	}
	return printJSON(timeline)
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Refresh.Schedule == "" {
		return fmt.Errorf("no refresh schedule configured; set refresh.schedule or TETHER_REFRESH_SCHEDULE")
	}
	input, err := loadProfileInput(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcSched := sched.NewService(cfg.Refresh.Schedule)
	svcSched.OnRefresh = func() error {
		_, err := svc.Refresh(input)
		return err
	}
	if err := svcSched.Start(ctx); err != nil {
		return err
	}
	defer svcSched.Stop()

	<-ctx.Done()
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
