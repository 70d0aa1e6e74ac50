/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the issue triage bot: it enumerates issues that
// still need a category label or an owner, annotates each with the actions
// required, and hands the batch to a model-backed planner that applies
// labels, owners, and issue types through the forge API.
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
	"github.com/agentic-community/triagebot/triage"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
)

// defaultIssueCount is how many candidates a batch run processes when the
// count is unset or nonsensical.
const defaultIssueCount = 3

type config struct {
	GitHubToken string `env:"GITHUB_TOKEN,required"`
	Owner       string `env:"OWNER,required"`
	Repo        string `env:"REPO,required"`

	// EventName and IssueNumber select single-issue mode when a webhook
	// triggered the run; otherwise the bot processes a batch.
	EventName   string `env:"EVENT_NAME"`
	IssueNumber string `env:"ISSUE_NUMBER"`
	IssueCount  int    `env:"ISSUE_COUNT_TO_PROCESS,default=3"`

	// OwnershipFile optionally overrides the built-in category/team data.
	OwnershipFile string `env:"OWNERSHIP_FILE"`

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

	reg, roster := triage.DefaultRegistry(), triage.DefaultRoster()
	if cfg.OwnershipFile != "" {
		var err error
		reg, roster, err = triage.LoadOwnership(cfg.OwnershipFile)
		if err != nil {
			clog.FatalContextf(ctx, "failed to load ownership data: %v", err)
		}
	}

	fc, err := forge.New(ctx, cfg.Owner, cfg.Repo, cfg.GitHubToken)
	if err != nil {
		clog.FatalContextf(ctx, "failed to create forge client: %v", err)
	}

	p, err := planner.New(anthropic.NewClient(),
		planner.WithModel(cfg.Model),
		planner.WithSystemInstructions(systemInstructions(cfg.Owner, cfg.Repo, reg, cfg.Interactive)),
	)
	if err != nil {
		clog.FatalContextf(ctx, "failed to create planner: %v", err)
	}

	tools := issueTools(fc, reg, roster)

	if cfg.EventName == "issues" && cfg.IssueNumber != "" {
		number, err := strconv.Atoi(cfg.IssueNumber)
		if err != nil || number <= 0 {
			clog.FatalContextf(ctx, "invalid issue number %q", cfg.IssueNumber)
		}
		log.With("issue", number).Info("Processing single issue")
		if err := runSingle(ctx, fc, p, tools, reg, number); err != nil {
			clog.FatalContextf(ctx, "triage failed: %v", err)
		}
		return
	}

	count := cfg.IssueCount
	if count <= 0 {
		log.With("count", cfg.IssueCount).Warn("Non-positive issue count, using default")
		count = defaultIssueCount
	}
	log.With("count", count).Info("Processing issue batch")
	if err := runBatch(ctx, fc, p, tools, reg, count); err != nil {
		clog.FatalContextf(ctx, "triage failed: %v", err)
	}
}

// runSingle triages one issue identified externally, e.g. by a webhook.
func runSingle(ctx context.Context, fc *forge.Client, p *planner.Planner, tools []planner.Tool, reg *triage.Registry, number int) error {
	log := clog.FromContext(ctx)

	item, err := fc.GetIssue(ctx, number)
	if err != nil {
		return err
	}
	if item.IsBotAuthored() {
		log.With("issue", number).With("author", item.Author).Info("Issue is bot-authored, skipping")
		return nil
	}

	flags := triage.Classify(item, reg)
	if !flags.NeedsAction() {
		log.With("issue", number).Info("Issue is already fully triaged, skipping")
		return nil
	}

	prompt, err := singleIssuePrompt(triage.Candidate{Item: item, Flags: flags})
	if err != nil {
		return err
	}
	narrative, err := p.Decide(ctx, prompt, tools)
	if err != nil {
		return err
	}
	log.With("issue", number).With("result", narrative).Info("Triage complete")
	return nil
}

// runBatch enumerates open issues, filters them down to the candidates that
// still need action, and hands the annotated list to the planner. Enumeration
// failures are fatal; there are no candidates to process without it.
func runBatch(ctx context.Context, fc *forge.Client, p *planner.Planner, tools []planner.Tool, reg *triage.Registry, count int) error {
	log := clog.FromContext(ctx)

	items, err := fc.SearchOpenIssues(ctx, 0)
	if err != nil {
		return err
	}

	candidates := triage.FilterCandidates(items, reg, count)
	if len(candidates) == 0 {
		log.Info("No issues need triaging")
		return nil
	}
	log.With("candidates", len(candidates)).Info("Handing candidates to planner")

	prompt, err := batchPrompt(candidates)
	if err != nil {
		return err
	}
	narrative, err := p.Decide(ctx, prompt, tools)
	if err != nil {
		return err
	}
	log.With("result", narrative).Info("Triage complete")
	return nil
}
