package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/corpussource"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	corpusFlag := &cli.StringFlag{
		Name:    "corpus",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML or JSON corpus file",
		EnvVars: []string{"CORPUS_PATH"},
		Value:   "configs/faqs.yaml",
	}
	return &cli.App{
		Name:  "faqctl",
		Usage: "Query and validate FAQ corpora offline",
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Find the best matching FAQ for a question",
				ArgsUsage: "<question...>",
				Action:    askCommand,
				Flags: []cli.Flag{
					corpusFlag,
					&cli.Float64Flag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Usage:   "Minimum confidence for a match",
						Value:   faq.DefaultThreshold,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "Print every question and answer in corpus order",
				Action: listCommand,
				Flags:  []cli.Flag{corpusFlag},
			},
			{
				Name:   "validate",
				Usage:  "Load the corpus and report problems",
				Action: validateCommand,
				Flags:  []cli.Flag{corpusFlag},
			},
		},
	}
}

type askOutput struct {
	Query           string  `json:"query"`
	Answer          *string `json:"answer"`
	Score           float64 `json:"score"`
	MatchedQuestion *string `json:"matchedQuestion"`
}

func askCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("a question is required")
	}
	threshold := c.Float64("threshold")
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold %v must be within [0, 1]", threshold)
	}

	corpus, err := loadCorpus(c)
	if err != nil {
		return err
	}
	res, err := faq.NewMatcher(corpus, faq.WithThreshold(threshold)).FindBestMatch(query)
	if err != nil {
		return err
	}
	return writeJSON(c, askOutput{
		Query:           query,
		Answer:          res.Answer,
		Score:           res.Score,
		MatchedQuestion: res.MatchedQuestion,
	})
}

func listCommand(c *cli.Context) error {
	corpus, err := loadCorpus(c)
	if err != nil {
		return err
	}
	return writeJSON(c, faq.NewMatcher(corpus).AllFAQs())
}

func validateCommand(c *cli.Context) error {
	corpus, err := loadCorpus(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s: %d entries OK\n", c.String("corpus"), corpus.Len())
	return nil
}

func loadCorpus(c *cli.Context) (*faq.Corpus, error) {
	src := corpussource.NewFileSource(c.String("corpus"))
	entries, err := src.Fetch(c.Context)
	if err != nil {
		return nil, err
	}
	corpus, err := faq.Load(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path(), err)
	}
	return corpus, nil
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
