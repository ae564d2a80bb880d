package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/cv-feedback/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/cv-feedback/internal/app"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
	"github.com/fairyhunter13/cv-feedback/internal/usecase"
)

// fileReport is the analysis of one input file.
type fileReport struct {
	File string `json:"file"`
	*usecase.Result
	Error string `json:"error,omitempty"`
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var (
		role        string
		concurrency int
		pretty      bool
		noTika      bool
	)
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Score one or more CV files",
		Long:  "Scores .txt, .pdf and .docx files. PDF and DOCX files are extracted through Apache Tika at TIKA_URL unless --no-tika is set.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			an, err := app.BuildAnalyzer(c.cfg)
			if err != nil {
				return err
			}
			var extractor domain.TextExtractor
			if !noTika {
				extractor = tika.New(c.cfg)
			}
			src := usecase.TextSource{Extractor: extractor, LowTextChars: c.cfg.LowTextChars}
			svc := usecase.NewAnalyzeService(an)

			reports := make([]fileReport, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			if concurrency > 0 {
				g.SetLimit(concurrency)
			}
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					reports[i] = analyzeFile(ctx, svc, src, path, role)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			var out any = reports
			if len(reports) == 1 {
				out = reports[0]
			}
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			for _, r := range reports {
				if r.Error != "" {
					return fmt.Errorf("%s: %s", r.File, r.Error)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&role, "role", "r", "", "Role id or alias to score against (default: DEFAULT_ROLE)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "Files analysed in parallel")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	cmd.Flags().BoolVar(&noTika, "no-tika", false, "Do not call Tika; PDF and DOCX files report extraction failure")
	return cmd
}

func analyzeFile(ctx domain.Context, svc usecase.AnalyzeService, src usecase.TextSource, path, role string) fileReport {
	rep := fileReport{File: path}
	// #nosec G304 -- paths come from the operator's command line
	data, err := os.ReadFile(path)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	text, status := src.Extract(ctx, filepath.Base(path), data)
	res, err := svc.Analyze(ctx, usecase.Input{Text: text, Status: status, Source: usecase.SourceUpload, Role: role})
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Result = &res
	return rep
}
