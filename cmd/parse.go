package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spigell/jobsift/internal/config"
	"github.com/spigell/jobsift/internal/engine"
	"github.com/spigell/jobsift/internal/logger"
	"github.com/spigell/jobsift/internal/posting"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse [posting file]",
	Short: "Parse a single posting and print the structured result",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parse(_ *cobra.Command, args []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	text, err := readPosting(args)
	if err != nil {
		logger.Fatal("reading posting", zap.Error(err))
	}

	engineCfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		logger.Fatal("loading engine config", zap.Error(err))
	}

	eng, err := engine.New(engine.Options{Config: engineCfg, Logger: logger})
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	resp := eng.Parse(&posting.RawPosting{Text: text})

	pretty, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(pretty))

	if !resp.Success {
		os.Exit(1)
	}
}

func readPosting(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading posting %q: %w", args[0], err)
	}

	return string(data), nil
}
