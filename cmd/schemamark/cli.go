package main

import (
	"context"
	"io"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/pipeline"
	"github.com/schemamark/schemamark/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	DB          *sqlite.DB
	Generations schemamark.GenerationService
	Pages       schemamark.PageService
	Credits     schemamark.CreditService
	Sitemaps    schemamark.SitemapService
	Pipeline    *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Generate Schema.org markup for one or more URLs"`
	Refine   RefineCmd   `cmd:"" help:"Refine a previous generation with instructions"`
	List     ListCmd     `cmd:"" help:"List generation records"`
	Show     ShowCmd     `cmd:"" help:"Show a generation record"`
	Credits  CreditsCmd  `cmd:"" help:"Manage credit balances"`
	Discover DiscoverCmd `cmd:"" help:"Discover site URLs from sitemaps"`

	Verbose bool `short:"v" help:"Log scrape and generation progress"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	URLs         []string `arg:"" name:"url" help:"Page URLs to generate schemas for"`
	User         string   `short:"u" default:"local" help:"User ID to charge"`
	Types        []string `short:"t" name:"type" help:"Restrict schema types (repeatable)"`
	MultiAttempt bool     `short:"m" help:"Scrape with multiple strategies and keep the best"`
	Concurrency  int      `short:"c" default:"3" help:"Concurrent generation limit for multiple URLs"`
	OutDir       string   `short:"o" help:"Write snippet files under this directory instead of stdout"`
}

// RefineCmd is the "refine" subcommand.
type RefineCmd struct {
	ID           string `arg:"" help:"Generation record ID"`
	Instructions string `arg:"" help:"Refinement instructions for the model"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	User   string `short:"u" help:"Filter by user ID"`
	Status string `short:"s" help:"Filter by status (processing, success, failed)"`
	Limit  int    `default:"20" help:"Maximum records to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Generation record ID"`
	HTML bool   `help:"Print only the embeddable script blocks"`
	Out  string `short:"o" help:"Write the snippet under this directory instead of stdout"`
}

// CreditsCmd groups the credit subcommands.
type CreditsCmd struct {
	Balance BalanceCmd `cmd:"" help:"Show a user's credit balance"`
	Grant   GrantCmd   `cmd:"" help:"Add credits to a user's balance"`
}

// BalanceCmd is the "credits balance" subcommand.
type BalanceCmd struct {
	User string `arg:"" optional:"" default:"local" help:"User ID"`
}

// GrantCmd is the "credits grant" subcommand.
type GrantCmd struct {
	Amount int    `arg:"" help:"Credits to add"`
	User   string `arg:"" optional:"" default:"local" help:"User ID"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL     string   `arg:"" help:"Site base URL"`
	Filter  []string `short:"F" name:"filter" help:"Keep only URLs matching regex (repeatable)"`
	Exclude []string `short:"X" name:"exclude" help:"Drop URLs matching regex (repeatable)"`
	Save    bool     `help:"Save discovered URLs to the page library"`
}
