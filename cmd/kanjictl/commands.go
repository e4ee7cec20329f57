package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/kanjisaya/kanji-srs/internal/catalog"
	"github.com/kanjisaya/kanji-srs/internal/config"
	"github.com/kanjisaya/kanji-srs/internal/digest"
	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/domain/srs"
	"github.com/kanjisaya/kanji-srs/internal/events"
	"github.com/kanjisaya/kanji-srs/internal/kana"
	"github.com/kanjisaya/kanji-srs/internal/platform/kvstore"
	"github.com/kanjisaya/kanji-srs/internal/platform/logger"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
	"github.com/kanjisaya/kanji-srs/internal/store"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "kanjictl",
		Short:        "Inspect and edit kanji study data",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(decksCmd())
	rootCmd.AddCommand(dueCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(digestCmd())
	rootCmd.AddCommand(kanaCmd())
	return rootCmd
}

// env is what a command needs to talk to the store.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	kv      store.KVStore
	service study.StudyService
}

func openEnv(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	kv, err := kvstore.Open(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	svc := study.NewStudyService(
		store.NewProgressStore(kv, l),
		store.NewDeckStore(kv, l),
		srs.NewDefaultService(),
		nil,
		l,
	)
	if err := svc.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, err
	}

	return &env{cfg: cfg, logger: l, kv: kv, service: svc}, nil
}

func (e *env) Close() {
	if err := e.kv.Close(); err != nil {
		e.logger.Error("failed to close store", "error", err)
	}
}

func decksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List decks with their due and mastered counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			decks, err := e.service.ListDecks(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDUE\tMASTERED\tTOTAL\tKIND")
			for _, d := range decks {
				kind := "custom"
				if d.Builtin {
					kind = "built-in"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", d.DeckID, d.Title, d.Due, d.Mastered, d.Total, kind)
			}
			return tw.Flush()
		},
	}
}

func dueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due <deck-id>",
		Short: "List the cards of a deck that are due now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			cards, err := e.service.DueCards(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "nothing due")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKANJI\tMEANING")
			for _, c := range cards {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Kanji, c.Meaning)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d due\n", len(cards))
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	opts := catalog.DefaultSpreadsheetOptions()
	var deckID string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a deck from a .json export or an .xlsx sheet",
		Long: "Import a deck from a .json export or an .xlsx sheet.\n\n" +
			"Sheets have the columns id, kanji, meaning, onyomi, kunyomi, examples;\n" +
			"examples are word|reading|mean entries separated by ';'.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var deck domain.Deck
			var err error
			switch strings.ToLower(filepath.Ext(path)) {
			case ".xlsx":
				if deckID == "" {
					return fmt.Errorf("--id is required for spreadsheet imports")
				}
				opts.DeckID = domain.ID(deckID)
				if opts.Title == "" {
					opts.Title = deckID
				}
				deck, err = catalog.ReadSpreadsheet(path, opts)
			default:
				var raw []byte
				raw, err = os.ReadFile(path)
				if err == nil {
					deck, err = catalog.ParseDeck(raw)
				}
			}
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := e.service.AddDeck(cmd.Context(), deck)
			if err != nil {
				return err
			}

			verb := "imported"
			if res.Replaced {
				verb = "replaced"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deck %s (%d cards)\n", verb, res.Deck.DeckID, res.Deck.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&deckID, "id", "", "deck id (spreadsheets only)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "deck title (spreadsheets only, defaults to the id)")
	cmd.Flags().StringVar(&opts.SheetName, "sheet", "", "sheet name (spreadsheets only, defaults to the first sheet)")
	cmd.Flags().IntVar(&opts.StartRow, "start-row", opts.StartRow, "first data row (spreadsheets only)")
	return cmd
}

func digestCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print which decks have cards due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			emitter := events.NewInMemoryEventEmitter(e.logger)
			emitter.RegisterHandler(events.NewLogHandler(e.logger))

			d, err := digest.New(e.service, emitter, e.cfg.Digest, e.logger).RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			return printDigest(cmd.OutOrStdout(), d, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the digest as JSON")
	return cmd
}

func printDigest(w io.Writer, d events.DigestDue, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	if d.TotalDue == 0 {
		_, err := fmt.Fprintln(w, "nothing due")
		return err
	}
	for _, entry := range d.Decks {
		if _, err := fmt.Fprintf(w, "%-24s %4d  %s\n", entry.DeckID, entry.Due, entry.Title); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d cards due\n", d.TotalDue)
	return err
}

func kanaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kana <romaji>...",
		Short: "Transliterate romaji to hiragana",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]string, len(args))
			for i, a := range args {
				out[i] = kana.ToHiragana(a)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return err
		},
	}
}
