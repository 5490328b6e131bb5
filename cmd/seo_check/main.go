package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"actor-portfolio/internal/audit"
)

func main() {
	base := flag.String("base", "http://localhost:8080", "base URL of the running site")
	pages := flag.String("pages", strings.Join(audit.DefaultPages, ","), "comma-separated page paths to check")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	fmt.Printf("Starting SEO checks against %s\n", *base)
	fmt.Println(strings.Repeat("=", 60))

	auditor := audit.NewAuditor(*base, *timeout)
	report := auditor.Run(context.Background(), strings.Split(*pages, ","))

	fmt.Printf("\nPASSED (%d)\n", len(report.Passed))
	for _, line := range report.Passed {
		fmt.Printf("  %s\n", line)
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("\nWARNINGS (%d)\n", len(report.Warnings))
		for _, line := range report.Warnings {
			fmt.Printf("  %s\n", line)
		}
	}
	if len(report.Failed) > 0 {
		fmt.Printf("\nFAILED (%d)\n", len(report.Failed))
		for _, line := range report.Failed {
			fmt.Printf("  %s\n", line)
		}
	}

	if !report.OK() {
		os.Exit(1)
	}
}
