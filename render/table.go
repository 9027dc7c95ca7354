package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/revelaction/truecase/stat"
	"github.com/revelaction/truecase/storage"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// Stats writes the truecase state distribution of the stats.
func Stats(w io.Writer, stats stat.Stats) {
	fmt.Fprintf(w, "Num sentences %d, num tokens %d, num tokens per sentence %d, num recased %d\n",
		stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean, stats.NumRecased)

	table := newTable(w, []string{"State", "Tokens", "Share"})
	for _, state := range stats.States() {
		n := stats.StateDis[state]
		share := 0.0
		if stats.NumTokens > 0 {
			share = float64(n) / float64(stats.NumTokens)
		}
		table.Append([]string{state, strconv.Itoa(n), fmt.Sprintf("%.2f%%", share*100)})
	}
	table.Render()
	if len(stats.TokensPerSentenceDis) == 0 {
		return
	}

	fmt.Fprintln(w)
	table = newTable(w, []string{"Tokens per sentence", "Sentences"})
	for _, n := range stats.SentenceLengths() {
		table.Append([]string{strconv.Itoa(n), strconv.Itoa(stats.TokensPerSentenceDis[n])})
	}
	table.Render()
}

// Runs writes stored evaluation runs.
func Runs(w io.Writer, runs []storage.Run) {
	table := newTable(w, []string{"Run", "Created", "Input", "Pipeline", "Tokens", "Matches", "Error Rate", "Truncated"})
	for _, run := range runs {
		table.Append([]string{
			run.Id,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Input,
			run.Pipeline,
			strconv.Itoa(run.Total),
			strconv.Itoa(run.Matches),
			strconv.FormatFloat(run.ErrorRate, 'f', 4, 64),
			strconv.FormatBool(run.Truncated),
		})
	}
	table.Render()
}
