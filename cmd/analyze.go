package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

const analyzeSystemPrompt = `You are a T20 cricket performance analyst. You are given stats tables
computed from ball-by-ball data and a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise. Small samples (few balls or innings) deserve a caveat.

Phases: Powerplay is overs 1-6, Middle Overs 7-15, Death Overs 16-20.

Metrics glossary:
- SR (batting): runs per 100 balls faced. SR (bowling): balls per wicket.
- Avg (batting): runs per dismissal. Avg (bowling): runs conceded per wicket.
- Economy: runs conceded per 6 balls, extras included.
- Dot%: share of deliveries with no runs at all, extras included.
- BallsPerBoundary: deliveries per four or six off the bat.
- RunsPerWicket (team): runs conceded per wicket taken. (venue): runs per wicket fallen.
- Bowling Wickets count only bowled, caught, caught and bowled, lbw, stumped and hit wicket.
- A zero denominator is treated as 1, so a not-out batter's Avg equals their runs.`

var (
	analyzeModel   string
	analyzeAPIKey  string
	analyzeSeasons []string
	analyzePhases  []string
	analyzeTop     int
	analyzeRender  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|dataset-id-prefix> <question>",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
	Long: `Compute the stats tables for the selected seasons and phases, then ask an
Anthropic model the question with those tables as its only data.

Example:
  cricmetrics analyze all_matches.csv "Who are the most economical death bowlers?" --phase death`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Anthropic model to use (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 25, "rows per table sent to the model")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "buffer the answer and render it as markdown")
	addFilterFlags(analyzeCmd, &analyzeSeasons, &analyzePhases)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}
	question := args[1]

	filter, err := buildFilter(ds, analyzeSeasons, analyzePhases)
	if err != nil {
		return err
	}
	r, err := ds.Stats(filter)
	if err != nil {
		return err
	}
	contextJSON, err := buildStatsContext(r, analyzeTop)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	modelID := cfg.AnthropicModel
	if analyzeModel != "" {
		modelID = analyzeModel
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, modelID, contextJSON, question, analyzeRender)
}

// buildStatsContext serialises the report into compact JSON: each table sorted
// by its primary metric and cut to top rows, rows keyed by column name.
func buildStatsContext(r dataset.Report, top int) (string, error) {
	type tableEntry struct {
		Table     string           `json:"table"`
		SortedBy  string           `json:"sorted_by"`
		TotalRows int              `json:"total_rows"`
		Rows      []map[string]any `json:"rows"`
	}

	phases := make([]string, 0, len(r.Filter.Phases))
	for _, p := range r.Filter.PhaseList() {
		phases = append(phases, p.String())
	}

	tables := make([]tableEntry, 0, len(r.Tables))
	for _, t := range r.Tables {
		sorted := report.Top(report.SortByPrimary(t), top)
		e := tableEntry{
			Table:     t.Dimension.Title(),
			SortedBy:  t.Primary,
			TotalRows: len(t.Rows),
			Rows:      make([]map[string]any, 0, len(sorted.Rows)),
		}
		for _, row := range sorted.Rows {
			e.Rows = append(e.Rows, rowObject(sorted, row))
		}
		tables = append(tables, e)
	}

	doc := map[string]any{
		"source":  r.Source,
		"seasons": r.Filter.SeasonList(),
		"phases":  phases,
		"tables":  tables,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

func rowObject(t model.Table, row model.Row) map[string]any {
	obj := make(map[string]any, len(row.Values)+1)
	obj[t.KeyColumn] = row.Key
	for i, v := range row.Values {
		if t.Columns[i].Ratio {
			obj[t.Columns[i].Name] = v
		} else {
			obj[t.Columns[i].Name] = int64(v)
		}
	}
	return obj
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
// With render set the text is collected and printed once through glamour.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string, render bool) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	var answer strings.Builder
	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				text := delta.Delta.AsTextDelta().Text
				if render {
					answer.WriteString(text)
				} else {
					fmt.Fprint(os.Stdout, text)
				}
			}
		}
	}
	if render && answer.Len() > 0 {
		fmt.Fprint(os.Stdout, renderMarkdown(answer.String()))
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		// Provide a cleaner error message for common API errors.
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}

// renderMarkdown formats md for the terminal, falling back to the raw text.
func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		log.Warn("render markdown", "err", err)
		return md
	}
	return out
}
