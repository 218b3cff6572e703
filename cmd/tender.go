package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/adapters/ingest"
	"github.com/bnema/tenderlogic-cli/internal/adapters/render/report"
	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/config"
	"github.com/bnema/tenderlogic-cli/internal/contract"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/spf13/cobra"
)

type tenderDocument struct {
	Key          string                    `json:"key"`
	Jurisdiction string                    `json:"jurisdiction"`
	Source       string                    `json:"source,omitempty"`
	CreatedAt    time.Time                 `json:"createdAt"`
	Analysis     contract.AnalysisDocument `json:"analysis"`
}

func newTenderDocument(record domain.TenderRecord) tenderDocument {
	return tenderDocument{
		Key:          record.Key.String(),
		Jurisdiction: string(record.Jurisdiction),
		Source:       record.Source,
		CreatedAt:    record.CreatedAt,
		Analysis:     contract.NewAnalysisDocument(record.Analysis),
	}
}

func newTenderCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tender",
		Short: "Analyze and browse tender documents",
	}

	cmd.AddCommand(
		newTenderAnalyzeCmd(app),
		newTenderListCmd(app),
		newTenderShowCmd(app),
		newTenderWatchCmd(app),
	)

	return cmd
}

func newTenderAnalyzeCmd(app *app) *cobra.Command {
	var jurisdiction string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file|glob>...",
		Short: "Extract deadlines, penalties, specs and risks from tender documents",
		Long:  "Analyze reads .txt, .md and .html documents (globs such as 'tenders/**/*.html' are expanded) and stores one analysis per document. Each successful analysis consumes one unit of quota.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			code, err := domain.ParseJurisdiction(jurisdiction)
			if err != nil {
				return err
			}
			paths, err := ingest.Expand(args)
			if err != nil {
				return err
			}

			reader := ingest.NewReader()
			records := make([]domain.TenderRecord, 0, len(paths))
			for _, path := range paths {
				record, err := analyzeFile(cmd.Context(), cmd, app, reader, actor, code, path)
				if err != nil {
					return fmt.Errorf("analyze %s: %w", path, withUpgradeHint(err))
				}
				records = append(records, record)
				if asJSON {
					continue
				}
				rendered, err := report.RenderAnalysis(record)
				if err := writeRendered(cmd, rendered, err); err != nil {
					return err
				}
			}

			if asJSON {
				docs := make([]tenderDocument, 0, len(records))
				for _, record := range records {
					docs = append(docs, newTenderDocument(record))
				}
				return writeJSON(cmd, docs)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&jurisdiction, "jurisdiction", string(domain.JurisdictionMorocco), "Legal framework (MA|EU|USA|UK)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func analyzeFile(ctx context.Context, cmd *cobra.Command, app *app, reader *ingest.Reader, actor domain.AccountID, code domain.Jurisdiction, path string) (domain.TenderRecord, error) {
	doc, err := reader.Read(path)
	if err != nil {
		return domain.TenderRecord{}, err
	}

	var record domain.TenderRecord
	err = runWithPhases(ctx, cmd.ErrOrStderr(), "Analyzing "+doc.Name, func(ctx context.Context, observer progress.Observer) error {
		var err error
		record, err = app.analysis.Analyze(ctx, application.AnalyzeCommand{
			AccountID:    actor,
			Jurisdiction: code,
			Source:       doc.Name,
			Text:         doc.Text,
			Observer:     observer,
		})
		return err
	})

	return record, err
}

func newTenderListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tenders analyzed by --account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			records, err := app.analysis.List(cmd.Context(), actor)
			if err != nil {
				return err
			}

			if asJSON {
				docs := make([]tenderDocument, 0, len(records))
				for _, record := range records {
					docs = append(docs, newTenderDocument(record))
				}
				return writeJSON(cmd, docs)
			}

			rendered, err := report.RenderTenders(records)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newTenderShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <account/seq>",
		Short: "Show one stored analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseTenderKey(args[0])
			if err != nil {
				return err
			}
			record, err := app.analysis.Get(cmd.Context(), key)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, newTenderDocument(record))
			}

			rendered, err := report.RenderAnalysis(record)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newTenderWatchCmd(app *app) *cobra.Command {
	var dir, jurisdiction string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Analyze every document dropped into a directory until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			code, err := domain.ParseJurisdiction(jurisdiction)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			watcher, err := ingest.NewWatcher(dir, app.cfg.GetDuration(config.KeyWatchDebounce), app.logger)
			if err != nil {
				return err
			}
			go watcher.Run(ctx)

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for tender documents (ctrl+c to stop)\n", dir)

			reader := ingest.NewReader()
			for path := range watcher.Events() {
				record, err := analyzeFile(ctx, cmd, app, reader, actor, code, path)
				if err != nil {
					if errors.Is(err, domain.ErrQuotaExceeded) || errors.Is(err, domain.ErrFeatureLocked) {
						stop()
						return fmt.Errorf("analyze %s: %w", filepath.Base(path), withUpgradeHint(err))
					}
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "analyze %s: %v\n", filepath.Base(path), err)
					continue
				}
				rendered, err := report.RenderAnalysis(record)
				if err := writeRendered(cmd, rendered, err); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to watch")
	cmd.Flags().StringVar(&jurisdiction, "jurisdiction", string(domain.JurisdictionMorocco), "Legal framework (MA|EU|USA|UK)")

	return cmd
}
