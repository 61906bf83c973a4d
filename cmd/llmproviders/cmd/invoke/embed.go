package invoke

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/internal/cmd/output"
)

// previewDims is how many leading components the table shows per vector.
const previewDims = 4

// NewEmbedCommand embeds its text arguments with an embedding model.
func NewEmbedCommand(app appcontext.Interface) *cobra.Command {
	var query bool

	cmd := &cobra.Command{
		Use:   "embed <provider-id> <model> <text...>",
		Short: "Embed text with an embedding model",
		Long: `Embed turns each text argument into a vector. With --query the
arguments are joined into a single query string instead.`,
		Example: `  llmproviders embed ollama nomic-embed-text "first doc" "second doc"
  llmproviders embed ollama nomic-embed-text --query what is ollama -o json`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := modelContext(cmd, app, args[0], args[1])
			defer cancel()

			p, err := app.Provider(args[0])
			if err != nil {
				return err
			}
			emb, err := p.LoadEmbeddingModel(ctx, args[1])
			if err != nil {
				return err
			}

			texts := args[2:]
			var vectors [][]float32
			if query {
				texts = []string{strings.Join(texts, " ")}
				vec, err := emb.EmbedQuery(ctx, texts[0])
				if err != nil {
					return err
				}
				vectors = [][]float32{vec}
			} else {
				vectors, err = emb.EmbedDocuments(ctx, texts)
				if err != nil {
					return err
				}
			}

			return output.NewFormatter(output.Format(app.OutputFormat())).
				Format(cmd.OutOrStdout(), vectorsData(texts, vectors))
		},
	}

	cmd.Flags().BoolVar(&query, "query", false, "embed the joined arguments as one query")
	return cmd
}

func vectorsData(texts []string, vectors [][]float32) output.Data {
	rows := make([][]string, 0, len(vectors))
	for i, v := range vectors {
		rows = append(rows, []string{
			strconv.Itoa(i),
			texts[i],
			strconv.Itoa(len(v)),
			preview(v),
		})
	}
	return output.Data{
		Headers:         []string{"#", "TEXT", "DIMS", "VECTOR"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignRight, output.AlignLeft, output.AlignRight, output.AlignLeft},
		Raw:             vectors,
	}
}

func preview(v []float32) string {
	n := min(len(v), previewDims)
	parts := make([]string, 0, n+1)
	for _, f := range v[:n] {
		parts = append(parts, strconv.FormatFloat(float64(f), 'f', 4, 32))
	}
	if len(v) > n {
		parts = append(parts, "...")
	}
	return "[" + strings.Join(parts, " ") + "]"
}
