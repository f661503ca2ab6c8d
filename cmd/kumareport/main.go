package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kumareport/internal/config"
	"kumareport/internal/kuma"
	"kumareport/internal/reporter"
)

const (
	exitRunFailure    = 1
	exitConfigFailure = 2

	checkInstanceHint = "Please check if the instance URL is correct and the status page with the specified slug exists and is public."
)

var errLoadConfig = errors.New("load config")

func main() {
	configPath := flag.String("config", "", "optional path to configuration file (YAML)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		exit(fmt.Errorf("%w: %w", errLoadConfig, err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kuma.NewClient(cfg.BaseURL)
	if err := reporter.Run(ctx, client, cfg.Slug, os.Stdout); err != nil {
		stop()
		exit(err)
	}
}

func exit(err error) {
	lines, code := describeFailure(err)
	for _, line := range lines {
		log.Print(line)
	}
	os.Exit(code)
}

// describeFailure turns a run error into user-facing message lines and an
// exit code.
func describeFailure(err error) ([]string, int) {
	if errors.Is(err, errLoadConfig) {
		return []string{err.Error()}, exitConfigFailure
	}

	var decodeErr *kuma.DecodeError
	if errors.As(err, &decodeErr) {
		return []string{"Failed to decode JSON from the response: " + err.Error()}, exitRunFailure
	}

	lines := []string{"An error occurred: " + err.Error()}
	var httpErr *kuma.HTTPError
	if errors.As(err, &httpErr) {
		lines = append(lines, checkInstanceHint)
	}
	return lines, exitRunFailure
}
