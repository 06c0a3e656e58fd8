package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/dedup"
	"github.com/spigell/jobsift/internal/engine"
	"github.com/spigell/jobsift/internal/fit"
	"github.com/spigell/jobsift/internal/fit/gemini"
	"github.com/spigell/jobsift/internal/logger"
	"github.com/spigell/jobsift/internal/posting"
	"github.com/spigell/jobsift/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowRanked      = "Show ranked jobs"
	PromptReportByCompany = "Report by company"
	PromptOnlyShouldApply = "Show only jobs worth applying to"
	PromptResultsToFile   = "Dump results to file"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var rankPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowRanked, PromptOnlyShouldApply, PromptReportByCompany, PromptResultsToFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank [posting files...]",
	Short: "Parse, score and rank job postings against your resume",
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("known-ids-file", "k", "", "file with canonical ids of postings already analyzed, one per line")
	rankCmd.Flags().StringP("output", "o", "", "write the ranked result as JSON to a file instead of the prompt loop")
	rankCmd.Flags().Bool("no-ai", false, "skip the Gemini fit oracle even when configured")
}

// rank is the main command of the cli.
func rank(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cliCfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobsift", zap.String("version", version))

	eng, err := buildEngine(ctx, cmd, cliCfg, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	resume, err := loadResume(cliCfg)
	if err != nil {
		logger.Warn("no resume loaded, fit falls back to a neutral estimate", zap.Error(err))
	}

	reqs, err := buildRequests(args, resume, cliCfg)
	if err != nil {
		logger.Fatal("reading postings", zap.Error(err))
	}
	if len(reqs) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings supplied"))
		return
	}

	resp := eng.RankBatch(ctx, reqs)
	if !resp.Success {
		logger.Fatal("ranking failed", zap.String("code", resp.Error.Code), zap.String("message", resp.Error.Message))
	}

	result := resp.Data.(*engine.BatchResult)
	for _, failure := range result.Failures {
		logger.Warn("posting skipped",
			zap.Int("index", failure.Index),
			zap.String("code", failure.Error.Code),
			zap.String("message", failure.Error.Message),
		)
	}

	if len(result.Ranked) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings survived ranking"))
		return
	}

	logger.Info("ranking finished",
		zap.Int("ranked", len(result.Ranked)),
		zap.Int("skipped", len(result.Failures)),
	)

	if output := cmd.Flag("output").Value.String(); output != "" {
		if err := dumpJSON(output, result); err != nil {
			logger.Fatal("writing results", zap.Error(err))
		}
		logger.Info("results written", zap.String("filename", output))
		return
	}

	for {
		_, action, err := rankPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleRankAction(action, eng, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleRankAction(action string, eng *engine.Engine, result *engine.BatchResult, logger *zap.Logger) error {
	switch action {
	case PromptShowRanked:
		printRanked(result.Ranked)
		return nil
	case PromptOnlyShouldApply:
		resp := eng.List(result.Ranked, engine.ListQuery{OnlyShouldApply: true})
		if jobs, ok := resp.Data.([]*posting.RankedJob); ok {
			printRanked(jobs)
		}
		return nil
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(engine.ReportByCompany(result.Ranked), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", len(result.Ranked)))
		return nil
	case PromptResultsToFile:
		filename, err := dumpToTmpFile(result)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printRanked(jobs []*posting.RankedJob) {
	for _, job := range jobs {
		apply := "skip"
		if job.ShouldApply {
			apply = "apply"
		}
		fmt.Printf("%3d. [%s/%s] %s at %s — fit %.0f, priority %.1f (%s)\n",
			job.Rank, job.Category, job.Tier, job.Job.Title, job.Job.Company,
			job.FitScore, job.Breakdown.Final, apply,
		)
		for _, insight := range job.Insights {
			fmt.Printf("      - %s\n", insight)
		}
	}
}

// buildEngine wires the ranking engine from cli config and flags.
func buildEngine(ctx context.Context, cmd *cobra.Command, cliCfg *Config, logger *zap.Logger) (*engine.Engine, error) {
	engineCfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return nil, fmt.Errorf("loading engine config: %w", err)
	}

	var oracle fit.Oracle
	noAI := cmd.Flag("no-ai") != nil && cmd.Flag("no-ai").Value.String() == "true"
	if !noAI {
		oracle, err = newFitOracle(ctx, cliCfg.AI, logger)
		if err != nil {
			logger.Warn("skipping the fit oracle", zap.Error(err))
		}
	}

	registry, err := buildRegistry(cmd, cliCfg)
	if err != nil {
		return nil, fmt.Errorf("building duplicate registry: %w", err)
	}

	return engine.New(engine.Options{
		Config:   engineCfg,
		Logger:   logger,
		Oracle:   oracle,
		Registry: registry,
	})
}

func newFitOracle(ctx context.Context, cfg *AIConfig, log *zap.Logger) (fit.Oracle, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when the fit oracle is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	oracleLogger := logger.WithOracleFields(log, "gemini", generator.Model())

	return gemini.NewOracle(generator, oracleLogger, cfg.Gemini.MaxLogLength), nil
}

func buildRegistry(cmd *cobra.Command, cliCfg *Config) (dedup.Registry, error) {
	if cliCfg.Redis != nil && cliCfg.Redis.URL != "" {
		ttl := time.Duration(cliCfg.Redis.TTLHours) * time.Hour
		return dedup.NewRedis(cliCfg.Redis.URL, ttl)
	}

	seedPath := ""
	if flag := cmd.Flag("known-ids-file"); flag != nil {
		seedPath = flag.Value.String()
	}

	seed, err := readKnownIDs(seedPath)
	if err != nil {
		return nil, err
	}

	return dedup.NewMemory(seed...), nil
}

// readKnownIDs loads canonical ids from a seed file, one per line. Blank
// lines and #-comments are skipped.
func readKnownIDs(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening known-ids file: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}

	return ids, scanner.Err()
}

func loadResume(cfg *Config) (string, error) {
	if cfg.Resume == "" {
		return "", errors.New("resume path is not configured")
	}

	data, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return "", fmt.Errorf("reading resume: %w", err)
	}

	return string(data), nil
}

// buildRequests turns posting files (or stdin when none are given) into
// rank requests sharing the resume and preferences.
func buildRequests(paths []string, resume string, cfg *Config) ([]*engine.RankRequest, error) {
	prefs := preferencesFrom(cfg.Preferences)

	texts := make([]string, 0, len(paths))
	if len(paths) == 0 {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		texts = append(texts, string(text))
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading posting %q: %w", path, err)
		}
		texts = append(texts, string(data))
	}

	reqs := make([]*engine.RankRequest, 0, len(texts))
	for _, text := range texts {
		reqs = append(reqs, &engine.RankRequest{
			Posting:        &posting.RawPosting{Text: text},
			ResumeText:     resume,
			Prefs:          prefs,
			DreamCompanies: cfg.DreamCompanies,
		})
	}

	return reqs, nil
}

func preferencesFrom(cfg *PreferencesConfig) *posting.Preferences {
	if cfg == nil {
		return nil
	}

	return &posting.Preferences{
		WorkArrangement:    cfg.WorkArrangement,
		Locations:          cfg.Locations,
		SalaryMinimum:      cfg.SalaryMinimum,
		ExcludedIndustries: cfg.ExcludedIndustries,
		StrictLocation:     cfg.StrictLocation,
	}
}

func dumpToTmpFile(result *engine.BatchResult) (string, error) {
	f, err := os.CreateTemp("", app+"-ranked-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return "", err
	}

	return f.Name(), nil
}

func dumpJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
