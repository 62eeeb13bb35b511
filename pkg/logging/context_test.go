package logging_test

import (
	"context"
	"testing"

	"github.com/agentstation/rostersync/pkg/logging"
)

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithPipeline(ctx, "participants")

	logger := logging.FromContext(ctx)
	logger.Info().Msg("test message")

	if !testLogger.Contains("participants") {
		t.Errorf("Expected pipeline field in output, got: %s", testLogger.Output())
	}
	if !testLogger.Contains("test message") {
		t.Errorf("Expected message in output, got: %s", testLogger.Output())
	}
}

func TestRunID(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRunID(ctx, "9be12ab3")

	if got := logging.RunID(ctx); got != "9be12ab3" {
		t.Errorf("RunID() = %q, want %q", got, "9be12ab3")
	}

	logging.Ctx(ctx).Info().Msg("with run id")
	if !testLogger.Contains("9be12ab3") {
		t.Errorf("Expected run_id field in output, got: %s", testLogger.Output())
	}
}

func TestFromContextFallbacks(t *testing.T) {
	// nil context and empty context both return the default logger
	if logging.FromContext(nil) == nil {
		t.Error("FromContext(nil) should return default logger")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext(empty) should return default logger")
	}
	if logging.RunID(context.Background()) != "" {
		t.Error("RunID on empty context should be empty")
	}
}
