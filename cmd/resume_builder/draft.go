package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/snapshot"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// redisKeyPrefix namespaces draft snapshots in a shared Redis.
const redisKeyPrefix = "resume-builder:"

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Edit the local draft resume",
	Long: "Edit the local draft resume. Every change is written to the draft snapshot " +
		"(file, Redis or memory, see DRAFT_BACKEND) and restored on the next run. Photos are not kept in drafts.",
}

var (
	contactFlags    = map[string]*string{}
	addActivityType string
	showWithScore   bool
	sectionsShowAll bool
	preferencesFile string
	tagSetNote      string
)

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the draft as JSON",
	Args:  cobra.NoArgs,
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, _ []string) error {
		if err := writeJSON(cmd.OutOrStdout(), s.Resume()); err != nil {
			return err
		}
		if showWithScore {
			printScore(cmd.OutOrStdout(), s.Score())
		}
		return nil
	}),
}

var draftSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a scalar field",
	Long:  "Set a scalar field. Fields: " + strings.Join(scalarFieldNames(), ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE: withDraft(func(_ *cobra.Command, s *resume.Store, args []string) error {
		return setField(s, args[0], args[1])
	}),
}

var draftContactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Update contact channels",
	Long:  "Update contact channels. Only the flags given are changed; pass an empty value to clear one.",
	Args:  cobra.NoArgs,
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, _ []string) error {
		patch, changed := contactsPatch(func(name string) (string, bool) {
			if !cmd.Flags().Changed(name) {
				return "", false
			}
			return *contactFlags[name], true
		})
		if !changed {
			return fmt.Errorf("no contact flags given")
		}
		s.SetContacts(patch)
		return nil
	}),
}

var draftPreferencesCmd = &cobra.Command{
	Use:   "preferences <json>",
	Short: "Update employment preferences from a JSON patch",
	Long: `Update employment preferences from a JSON patch, e.g.
  {"employmentType": ["full-time"], "workFormat": ["remote"], "relocation": true}`,
	Args: cobra.MaximumNArgs(1),
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, args []string) error {
		data, err := patchInput(cmd.InOrStdin(), args, preferencesFile)
		if err != nil {
			return err
		}
		patch, err := decodePatch[resume.EmploymentPreferencesPatch](data)
		if err != nil {
			return err
		}
		s.SetEmploymentPreferences(patch)
		return nil
	}),
}

var draftAddCmd = &cobra.Command{
	Use:   "add <list>",
	Short: "Append an empty entry to a list and print its id",
	Long:  "Append an empty entry to a list and print its id. Lists: " + strings.Join(listNames(), ", ") + ".",
	Args:  cobra.ExactArgs(1),
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, args []string) error {
		id, err := addEntry(s, args[0], types.ActivityType(addActivityType))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	}),
}

var draftUpdateCmd = &cobra.Command{
	Use:   "update <list> <id> [json]",
	Short: "Merge a JSON patch into a list entry",
	Long: `Merge a JSON patch into a list entry, e.g.
  resume_builder draft update experience 3f2a... '{"company": "Acme", "isCurrent": true}'
The patch is read from stdin when omitted.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, args []string) error {
		data, err := patchInput(cmd.InOrStdin(), args[2:], "")
		if err != nil {
			return err
		}
		return updateEntry(s, args[0], args[1], data)
	}),
}

var draftRemoveCmd = &cobra.Command{
	Use:   "remove <list> <id>",
	Short: "Remove a list entry",
	Long:  "Remove a list entry. Removing the last entry leaves one empty entry in its place.",
	Args:  cobra.ExactArgs(2),
	RunE: withDraft(func(_ *cobra.Command, s *resume.Store, args []string) error {
		return removeEntry(s, args[0], args[1])
	}),
}

var draftTagCmd = &cobra.Command{
	Use:   "tag <tech|soft> <tag>...",
	Short: "Add skill tags",
	Long:  "Add skill tags. Tags are trimmed and compared case-insensitively; the first spelling wins.",
	Args:  cobra.MinimumNArgs(1),
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, args []string) error {
		set, err := parseTagSet(args[0])
		if err != nil {
			return err
		}
		for _, tag := range args[1:] {
			set.add(s, tag)
		}
		if cmd.Flags().Changed("note") {
			set.note(s, tagSetNote)
		}
		return nil
	}),
}

var draftUntagCmd = &cobra.Command{
	Use:   "untag <tech|soft> <tag>...",
	Short: "Remove skill tags",
	Args:  cobra.MinimumNArgs(2),
	RunE: withDraft(func(_ *cobra.Command, s *resume.Store, args []string) error {
		set, err := parseTagSet(args[0])
		if err != nil {
			return err
		}
		for _, tag := range args[1:] {
			set.remove(s, tag)
		}
		return nil
	}),
}

var draftSectionCmd = &cobra.Command{
	Use:   "section [<key> <show|hide|toggle>]",
	Short: "Show or hide a resume section",
	Long:  "Show or hide a resume section. Sections: " + strings.Join(sectionNames(), ", ") + ".",
	Args:  cobra.RangeArgs(0, 2),
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, args []string) error {
		if sectionsShowAll {
			if len(args) > 0 {
				return fmt.Errorf("--all takes no arguments")
			}
			s.ShowAllSections()
			return nil
		}
		if len(args) != 2 {
			return fmt.Errorf("expected <key> <show|hide|toggle>")
		}
		return setSection(s, args[0], args[1])
	}),
}

var draftScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print how complete the draft is",
	Args:  cobra.NoArgs,
	RunE: withDraft(func(cmd *cobra.Command, s *resume.Store, _ []string) error {
		printScore(cmd.OutOrStdout(), s.Score())
		return nil
	}),
}

var draftImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the draft with a resume JSON file",
	Long: "Replace the draft with a resume JSON file. Partial and legacy documents are " +
		"normalized; whatever had to be repaired is reported.",
	Args: cobra.ExactArgs(1),
	RunE: runDraftImport,
}

var draftResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the draft and start from an empty resume",
	Args:  cobra.NoArgs,
	RunE: withDraft(func(_ *cobra.Command, s *resume.Store, _ []string) error {
		s.Reset()
		return nil
	}),
}

func init() {
	for _, name := range contactFieldNames {
		contactFlags[name] = draftContactsCmd.Flags().String(name, "", "Contact "+name)
	}
	draftShowCmd.Flags().BoolVar(&showWithScore, "score", false, "Also print the completeness score")
	draftAddCmd.Flags().StringVar(&addActivityType, "type", "", "Activity type for the activities list (default open-source)")
	draftSectionCmd.Flags().BoolVar(&sectionsShowAll, "all", false, "Show every section")
	draftPreferencesCmd.Flags().StringVarP(&preferencesFile, "file", "f", "", "Read the patch from a file")
	draftTagCmd.Flags().StringVar(&tagSetNote, "note", "", "Also set the free-text note of the tag set")

	draftCmd.AddCommand(
		draftShowCmd, draftSetCmd, draftContactsCmd, draftPreferencesCmd,
		draftAddCmd, draftUpdateCmd, draftRemoveCmd,
		draftTagCmd, draftUntagCmd, draftSectionCmd,
		draftScoreCmd, draftImportCmd, draftResetCmd,
	)
	rootCmd.AddCommand(draftCmd)
}

// draftSession is a store bound to its snapshot backend.
type draftSession struct {
	store   *resume.Store
	storage snapshot.Storage
	log     logrus.FieldLogger
	close   func() error
}

// openDraft restores the last draft from storage and starts persisting
// every change to it.
func openDraft(ctx context.Context, storage snapshot.Storage, log logrus.FieldLogger) (*draftSession, error) {
	store := resume.NewStore(log)
	if _, err := snapshot.Rehydrate(ctx, store, storage, log); err != nil {
		return nil, err
	}

	detach := snapshot.NewPersister(storage, log).Attach(store)
	return &draftSession{
		store:   store,
		storage: storage,
		log:     log,
		close: func() error {
			detach()
			return nil
		},
	}, nil
}

// newDraftStorage builds the snapshot backend selected in cfg. The returned
// function releases it.
func newDraftStorage(ctx context.Context, cfg config.DraftConfig) (snapshot.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.DraftBackendMemory:
		return snapshot.NewMemoryStorage(), noop, nil
	case config.DraftBackendFile:
		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create draft directory %s: %w", cfg.Dir, err)
		}
		return snapshot.NewFileStorage(cfg.Dir), noop, nil
	case config.DraftBackendRedis:
		rdb, err := snapshot.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return snapshot.NewRedisStorage(rdb, redisKeyPrefix, cfg.TTL), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown draft backend %q", cfg.Backend)
	}
}

// withDraft opens the configured draft around fn.
func withDraft(fn func(cmd *cobra.Command, s *resume.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		session, release, err := openConfiguredDraft(cmd.Context())
		if err != nil {
			return err
		}
		defer release()
		defer session.close()

		return fn(cmd, session.store, args)
	}
}

func openConfiguredDraft(ctx context.Context) (*draftSession, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := cliLogger(cfg)

	storage, release, err := newDraftStorage(ctx, cfg.Draft)
	if err != nil {
		return nil, nil, err
	}
	session, err := openDraft(ctx, storage, log)
	if err != nil {
		_ = release()
		return nil, nil, err
	}
	return session, release, nil
}

func runDraftImport(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	session, release, err := openConfiguredDraft(cmd.Context())
	if err != nil {
		return err
	}
	defer release()
	defer session.close()

	report, err := importDraft(cmd.Context(), session, data)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

// importDraft replaces the draft with data. The imported document stays a
// draft, so it is written straight to the snapshot.
func importDraft(ctx context.Context, session *draftSession, data []byte) (resume.Report, error) {
	doc, report := resume.Normalize(data)
	if report.Malformed {
		return report, fmt.Errorf("resume is not a JSON object")
	}
	report.Log(session.log, "imported resume needed repair")

	encoded, err := snapshot.Encode(doc, true)
	if err != nil {
		return report, err
	}
	if err := session.storage.Set(ctx, snapshot.DraftKey, encoded); err != nil {
		return report, err
	}
	session.store.Restore(doc, true)
	return report, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printScore(w io.Writer, score resume.Score) {
	fmt.Fprintf(w, "Completeness: %d%%\n", score.Percent)
	if len(score.Missing) > 0 {
		fmt.Fprintf(w, "Missing: %s\n", strings.Join(score.Missing, ", "))
	}
}

func printReport(w io.Writer, report resume.Report) {
	if report.Clean() {
		fmt.Fprintln(w, "Imported.")
		return
	}
	fmt.Fprintln(w, "Imported with repairs:")
	if len(report.Migrations) > 0 {
		fmt.Fprintf(w, "  migrated: %s\n", strings.Join(report.Migrations, ", "))
	}
	if len(report.Repaired) > 0 {
		fmt.Fprintf(w, "  repaired: %s\n", strings.Join(report.Repaired, ", "))
	}
	if len(report.UnknownKeys) > 0 {
		fmt.Fprintf(w, "  ignored:  %s\n", strings.Join(report.UnknownKeys, ", "))
	}
	for _, v := range report.SchemaViolations {
		fmt.Fprintf(w, "  schema:   %s: %s\n", v.Field, v.Message)
	}
}
