package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/config"
	"github.com/moodk/moodk/internal/insight"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/logger"
	"github.com/moodk/moodk/internal/metadata/tmdb"
	"github.com/moodk/moodk/internal/recommend"
)

var (
	kindFlag    string
	moodFlag    string
	regionFlag  string
	timeFlag    string
	langFlag    string
	idFlag      int
	explainFlag bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Resolve a mood, region and time budget into titles",
	RunE:  runRecommend,
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List this week's trending titles",
	RunE:  runTrending,
}

var trailerCmd = &cobra.Command{
	Use:   "trailer",
	Short: "Show the details, trailer and cast of a title",
	RunE:  runTrailer,
}

func init() {
	recommendCmd.Flags().StringVarP(&kindFlag, "type", "t", "movie", "Media type (movie or tv)")
	recommendCmd.Flags().StringVar(&moodFlag, "mood", "", "Mood id (fun, intense, emotional, epic, mystery, any)")
	recommendCmd.Flags().StringVar(&regionFlag, "region", "", "Region id (hollywood, arab, anime, turkish, korean, bollywood)")
	recommendCmd.Flags().StringVar(&timeFlag, "time", "", "Time budget id")
	recommendCmd.Flags().StringVar(&langFlag, "lang", "en", "Display language (en or ar)")
	recommendCmd.Flags().BoolVar(&explainFlag, "explain", false, "Generate a match reason for the top result")

	trailerCmd.Flags().StringVarP(&kindFlag, "type", "t", "movie", "Media type (movie or tv)")
	trailerCmd.Flags().IntVar(&idFlag, "id", 0, "TMDB id")
	_ = trailerCmd.MarkFlagRequired("id")
}

// cliEnv bundles what the one-shot commands need.
type cliEnv struct {
	cfg    *config.Config
	log    *logger.Logger
	client *tmdb.Client
	rec    *recommend.Service
}

func newCLIEnv() (*cliEnv, error) {
	cfg, log, err := setup(true)
	if err != nil {
		return nil, err
	}
	client := tmdb.NewClient(cfg.TMDB, log.Logger)
	if !client.IsConfigured() {
		log.Close()
		return nil, tmdb.ErrAPIKeyMissing
	}
	return &cliEnv{
		cfg:    cfg,
		log:    log,
		client: client,
		rec:    recommend.NewService(client, cfg.Discovery, log.Logger),
	}, nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	kind, err := catalog.ParseMediaKind(kindFlag)
	if err != nil {
		return err
	}
	lang := locale.Parse(langFlag)

	criteria, err := catalog.Default().Criteria(kind, moodFlag, regionFlag, timeFlag, lang)
	if err != nil {
		return err
	}

	env, err := newCLIEnv()
	if err != nil {
		return err
	}
	defer env.log.Close()

	items := env.rec.Resolve(cmd.Context(), criteria)
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No titles matched.")
		return nil
	}
	printItems(out, env.client, items)

	if explainFlag {
		gen, err := insight.NewGeminiGenerator(cmd.Context(), env.cfg.Gemini, env.log.Logger)
		if err != nil {
			return err
		}
		reason := insight.NewService(gen, env.log.Logger).Reason(cmd.Context(), items[0], criteria, lang)
		fmt.Fprintf(out, "\n%s: %s\n", items[0].DisplayTitle(), reason)
	}
	return nil
}

func runTrending(cmd *cobra.Command, args []string) error {
	env, err := newCLIEnv()
	if err != nil {
		return err
	}
	defer env.log.Close()

	printItems(cmd.OutOrStdout(), env.client, env.rec.Trending(cmd.Context()))
	return nil
}

func runTrailer(cmd *cobra.Command, args []string) error {
	kind, err := catalog.ParseMediaKind(kindFlag)
	if err != nil {
		return err
	}

	env, err := newCLIEnv()
	if err != nil {
		return err
	}
	defer env.log.Close()

	bundle := env.rec.Bundle(cmd.Context(), idFlag, kind)
	out := cmd.OutOrStdout()

	if bundle.Details == nil {
		return fmt.Errorf("%s %d: %w", kind, idFlag, tmdb.ErrNotFound)
	}
	d := bundle.Details
	title := d.Title
	if title == "" {
		title = d.Name
	}
	fmt.Fprintf(out, "%s (%.1f)\n", title, d.VoteAverage)
	if d.Overview != "" {
		fmt.Fprintf(out, "%s\n", d.Overview)
	}
	fmt.Fprintf(out, "Poster:  %s\n", env.client.GetImageURL(d.PosterPath, "w500"))
	if bundle.TrailerKey != nil {
		fmt.Fprintf(out, "Trailer: https://www.youtube.com/watch?v=%s\n", *bundle.TrailerKey)
	} else {
		fmt.Fprintln(out, "Trailer: none")
	}
	for _, c := range bundle.Cast {
		fmt.Fprintf(out, "  %s as %s\n", c.Name, c.Character)
	}
	return nil
}

func printItems(out io.Writer, client *tmdb.Client, items []tmdb.ResultItem) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tRATING\tPOSTER")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\n",
			strconv.Itoa(item.ID),
			item.MediaType,
			item.DisplayTitle(),
			item.VoteAverage,
			client.GetImageURL(item.PosterPath, "w342"),
		)
	}
	w.Flush()
}
