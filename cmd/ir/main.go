// Command ir is the thin CLI surface over the collection, index,
// boolean, vector, and evaluation packages, grounded on the teacher's
// cmd/search_engine/main.go (flag-based, --help/--version, stdlib log,
// graceful-shutdown HTTP server for the optional serve subcommand).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/florimondmanca/cs-ir/api"
	"github.com/florimondmanca/cs-ir/boolean"
	"github.com/florimondmanca/cs-ir/collection"
	"github.com/florimondmanca/cs-ir/config"
	"github.com/florimondmanca/cs-ir/evaluation"
	"github.com/florimondmanca/cs-ir/index"
	"github.com/florimondmanca/cs-ir/vector"
)

const version = "ir v1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version":
		fmt.Println(version)
		return
	case "build":
		err = runBuild(args)
	case "boolean":
		err = runBoolean(args)
	case "vector":
		err = runVector(args)
	case "evaluate":
		err = runEvaluate(args)
	case "heaps":
		err = runHeaps(args)
	case "serve":
		err = runServe(args)
	default:
		fmt.Fprintf(os.Stderr, "ir: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("ir %s: %v", cmd, err)
	}
}

func printUsage() {
	fmt.Printf("Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Println("Commands:")
	fmt.Println("  build     build (or load from cache) an index for a collection")
	fmt.Println("  boolean   evaluate a boolean query against a built index")
	fmt.Println("  vector    rank documents against a built index by vector-space similarity")
	fmt.Println("  evaluate  report precision/recall/E/F/R-precision for a collection's qrels")
	fmt.Println("  heaps     fit and report a Heaps'-law vocabulary growth estimate")
	fmt.Println("  serve     start the optional HTTP adapter")
	fmt.Println("\nRun `ir <command> --help` for command-specific options.")
}

func loadCollection(name string) (index.Collection, config.Settings, error) {
	cfg := config.Load()
	if err := cfg.Validate(name); err != nil {
		return nil, cfg, err
	}

	stopWords, err := collection.LoadStopWords(cfg.DataStopWordsPath)
	if err != nil {
		return nil, cfg, err
	}

	switch name {
	case "cacm":
		cachePath := cfg.CacheDir + "/cacm_index.json"
		return collection.NewCACM(cfg.DataCACMPath, cachePath, stopWords), cfg, nil
	case "cs276":
		cachePath := cfg.CacheDir + "/cs276_index.json"
		tokenCachePath := cfg.CacheDir + "/cs276_tokens.cache"
		docMapPath := cfg.CacheDir + "/cs276_docs.map"
		return collection.NewCS276(cfg.DataCS276Path, cachePath, tokenCachePath, docMapPath, stopWords), cfg, nil
	default:
		return nil, cfg, fmt.Errorf("unknown collection %q (want cacm or cs276)", name)
	}
}

func buildIndex(collectionName string, noCache bool) (*index.Index, config.Settings, error) {
	col, cfg, err := loadCollection(collectionName)
	if err != nil {
		return nil, cfg, err
	}

	ix, err := index.BuildIndex(col, index.BuildOptions{
		BlockSize: cfg.DefaultBlockSize,
		BatchSize: cfg.DefaultBatchSize,
		NoCache:   noCache,
	})
	return ix, cfg, err
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	collectionName := fs.String("collection", "cacm", "collection to index: cacm or cs276")
	noCache := fs.Bool("no-cache", false, "rebuild even if a cached index artifact exists")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ix, _, err := buildIndex(*collectionName, *noCache)
	if err != nil {
		return err
	}

	fmt.Printf("collection=%s documents=%d terms=%d\n", ix.Collection, ix.NumDocuments(), len(ix.Terms()))
	return nil
}

func runBoolean(args []string) error {
	fs := flag.NewFlagSet("boolean", flag.ExitOnError)
	collectionName := fs.String("collection", "cacm", "collection to query: cacm or cs276")
	queryText := fs.String("query", "", "boolean query, e.g. \"algorithm AND NOT paris\"")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *queryText == "" {
		return fmt.Errorf("--query is required")
	}

	ix, _, err := buildIndex(*collectionName, false)
	if err != nil {
		return err
	}

	query, err := boolean.Parse(*queryText)
	if err != nil {
		return err
	}

	docIDs := boolean.Evaluate(query, ix)
	fmt.Printf("%d matching documents\n", len(docIDs))
	for _, id := range docIDs {
		fmt.Println(id)
	}
	return nil
}

func runVector(args []string) error {
	fs := flag.NewFlagSet("vector", flag.ExitOnError)
	collectionName := fs.String("collection", "cacm", "collection to query: cacm or cs276")
	queryText := fs.String("query", "", "free-text query")
	scheme := fs.String("scheme", vector.DefaultScheme, "weighting scheme: simple or complex")
	k := fs.Int("k", vector.DefaultK, "number of results to return")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *queryText == "" {
		return fmt.Errorf("--query is required")
	}

	ix, cfg, err := buildIndex(*collectionName, false)
	if err != nil {
		return err
	}

	stopWords, err := collection.LoadStopWords(cfg.DataStopWordsPath)
	if err != nil {
		return err
	}
	tokenize := func(text string) []string { return collection.Tokenize(text, stopWords) }

	results, err := vector.Search(ix, *queryText, *k, *scheme, tokenize)
	if err != nil {
		return err
	}

	for rank, r := range results {
		fmt.Printf("%d. doc=%d score=%.6f\n", rank+1, r.DocID, r.Score)
	}
	return nil
}

func runEvaluate(args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	scheme := fs.String("scheme", vector.DefaultScheme, "weighting scheme: simple or complex")
	k := fs.Int("k", vector.DefaultK, "number of results to retrieve per query")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.Validate("cacm"); err != nil {
		return err
	}

	ix, _, err := buildIndex("cacm", false)
	if err != nil {
		return err
	}

	queries, err := evaluation.ParseQueries(cfg.DataCACMQueries)
	if err != nil {
		return err
	}
	answers, err := evaluation.ParseQrels(cfg.DataCACMQrels)
	if err != nil {
		return err
	}

	stopWords, err := collection.LoadStopWords(cfg.DataStopWordsPath)
	if err != nil {
		return err
	}
	tokenize := func(text string) []string { return collection.Tokenize(text, stopWords) }

	found := make([]map[int]struct{}, 0, len(queries))
	for i, q := range queries {
		results, err := vector.Search(ix, q, *k, *scheme, tokenize)
		if err != nil {
			return err
		}

		hits := make(map[int]struct{}, len(results))
		ranked := make([]int, 0, len(results))
		for _, r := range results {
			hits[int(r.DocID)] = struct{}{}
			ranked = append(ranked, int(r.DocID))
		}
		found = append(found, hits)

		if i < len(answers) {
			rp := evaluation.RPrecision(ranked, answers[i])
			fmt.Printf("query %d: R-precision=%.4f\n", i, rp)
		}
	}

	precision, recall := evaluation.PrecisionRecall(found, answers)
	fmt.Printf("micro-averaged precision=%.4f recall=%.4f\n", precision, recall)
	fmt.Printf("E-measure(alpha=0.5)=%.4f F-measure=%.4f\n",
		evaluation.EMeasure(precision, recall, 0.5), evaluation.FMeasure(precision, recall, 0.5))

	return nil
}

func runHeaps(args []string) error {
	fs := flag.NewFlagSet("heaps", flag.ExitOnError)
	m1 := fs.Float64("m1", 0, "vocabulary size at the first sample point")
	t1 := fs.Float64("t1", 0, "collection size at the first sample point")
	m2 := fs.Float64("m2", 0, "vocabulary size at the second sample point")
	t2 := fs.Float64("t2", 0, "collection size at the second sample point")
	estimateAt := fs.Float64("at", 0, "collection size to estimate vocabulary size for")
	if err := fs.Parse(args); err != nil {
		return err
	}

	model := evaluation.NewHeapsModel(*m1, *t1, *m2, *t2)
	fmt.Printf("k=%.6f b=%.6f\n", model.K, model.B)
	if *estimateAt > 0 {
		fmt.Printf("estimated vocabulary at t=%.0f: %.2f\n", *estimateAt, model.VocabularySize(*estimateAt))
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	collectionName := fs.String("collection", "cacm", "collection to serve: cacm or cs276")
	port := fs.String("port", "8080", "port to run the server on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ix, cfg, err := buildIndex(*collectionName, false)
	if err != nil {
		return err
	}

	stopWords, err := collection.LoadStopWords(cfg.DataStopWordsPath)
	if err != nil {
		return err
	}

	a := api.NewAPI(ix, stopWords)
	router := gin.Default()
	api.SetupRoutes(router, a)

	srv := api.NewServer(":"+*port, router)

	go func() {
		log.Printf("serving %s on port %s", *collectionName, *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
	return nil
}
