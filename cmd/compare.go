package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spigell/jobsift/internal/engine"
	"github.com/spigell/jobsift/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare <posting files...>",
	Short: "Rank 2-5 postings end-to-end and compare them side by side",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		compareJobs(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().Bool("no-ai", false, "skip the Gemini fit oracle even when configured")
}

func compareJobs(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cliCfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

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

	rankResp := eng.RankBatch(ctx, reqs)
	if !rankResp.Success {
		logger.Fatal("ranking failed", zap.String("code", rankResp.Error.Code), zap.String("message", rankResp.Error.Message))
	}
	result := rankResp.Data.(*engine.BatchResult)

	for _, failure := range result.Failures {
		logger.Warn("posting skipped",
			zap.Int("index", failure.Index),
			zap.String("code", failure.Error.Code),
			zap.String("message", failure.Error.Message),
		)
	}

	resp := eng.Compare(result.Ranked)

	pretty, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(pretty))

	if !resp.Success {
		os.Exit(1)
	}
}
