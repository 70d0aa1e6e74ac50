/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the discussion moderation bot. It stays out of the
// way of healthy peer-to-peer discussion and flags only the threads that need
// maintainer attention: direct maintainer mentions, derailed conversations,
// and code-of-conduct violations.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/agentic-community/triagebot/forge"
	"github.com/agentic-community/triagebot/planner"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
)

type config struct {
	GitHubToken string `env:"GITHUB_TOKEN,required"`
	Owner       string `env:"OWNER,required"`
	Repo        string `env:"REPO,required"`

	// EventName and DiscussionNumber select single-discussion mode when a
	// webhook or manual dispatch triggered the run.
	EventName        string `env:"EVENT_NAME"`
	DiscussionNumber string `env:"DISCUSSION_NUMBER"`

	// RecentCount limits a batch run to the N most recently updated open
	// discussions. Zero means all of them.
	RecentCount int `env:"RECENT_COUNT,default=0"`

	// TeamName is the maintainer team handle used in mention detection.
	TeamName string `env:"TEAM_NAME,default=maintainers"`

	Model       string `env:"MODEL,default=claude-sonnet-4-5"`
	Interactive bool   `env:"INTERACTIVE,default=false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	log := clog.FromContext(ctx)

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "failed to process config: %v", err)
	}

	fc, err := forge.New(ctx, cfg.Owner, cfg.Repo, cfg.GitHubToken)
	if err != nil {
		clog.FatalContextf(ctx, "failed to create forge client: %v", err)
	}

	p, err := planner.New(anthropic.NewClient(),
		planner.WithModel(cfg.Model),
		planner.WithSystemInstructions(systemInstructions(cfg.Owner, cfg.Repo, cfg.TeamName, cfg.Interactive)),
	)
	if err != nil {
		clog.FatalContextf(ctx, "failed to create planner: %v", err)
	}

	tools := discussionTools(fc)

	var numbers []int
	switch {
	case (cfg.EventName == "discussion" || cfg.EventName == "workflow_dispatch") && cfg.DiscussionNumber != "":
		number, err := strconv.Atoi(cfg.DiscussionNumber)
		if err != nil || number <= 0 {
			clog.FatalContextf(ctx, "invalid discussion number %q", cfg.DiscussionNumber)
		}
		log.With("event", cfg.EventName).With("discussion", number).Info("Processing single discussion")
		numbers = []int{number}
	default:
		log.With("event", cfg.EventName).Info("Processing batch of discussions")
		numbers, err = fc.ListOpenDiscussions(ctx, cfg.RecentCount)
		if err != nil {
			// Without a complete listing there is no batch to process.
			clog.FatalContextf(ctx, "failed to list open discussions: %v", err)
		}
		if len(numbers) == 0 {
			log.Info("No open discussions found")
			return
		}
	}

	log.With("count", len(numbers)).Info("Moderating discussions")

	// Each discussion gets a fresh conversation so earlier threads cannot
	// bleed into later decisions. One failed discussion does not stop the
	// batch; it flips the exit code at the end.
	failed := 0
	for _, number := range numbers {
		dlog := log.With("discussion", number)
		dlog.Info("Starting moderation")

		narrative, err := p.Decide(ctx, moderationPrompt(number), tools)
		if err != nil {
			dlog.Errorf("Moderation failed: %v", err)
			failed++
			continue
		}
		dlog.With("result", narrative).Info("Moderation complete")
	}

	if failed > 0 {
		log.With("failed", failed).With("total", len(numbers)).Error("Some discussions failed moderation")
		os.Exit(1)
	}
}
