package main

import (
	"context"
	"errors"
	"os"

	"github.com/Overboard/AskMinstrel/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := newApp(runner)
	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrCredentialsMissing) {
			logger.Fatalf("cannot proceed without client credentials: %v", err)
		}
		logger.Fatalf("application error: %v", err)
	}
}
