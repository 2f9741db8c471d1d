package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/guardctl/internal/config"
	"github.com/samvad-hq/guardctl/internal/journal"
	"github.com/samvad-hq/guardctl/internal/logger"
	"github.com/samvad-hq/guardctl/pkg/control"
	"github.com/samvad-hq/guardctl/pkg/httpclient"
)

// Controller runs control operations against the configured service and
// journals each one.
type Controller struct {
	cfg        *config.Config
	dispatcher *control.Dispatcher
	journal    journal.Store
	journalErr error
	log        logger.Logger
}

// NewController builds a controller runtime from config.
func NewController(cfg *config.Config, log logger.Logger) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	transport := httpclient.NewRestyClient(cfg.RequestTimeout)
	if zl, ok := log.(*logger.ZapLogger); ok {
		transport.SetLogger(zl.Sugar())
	}
	dispatcher := control.NewDispatcher(cfg.BaseURL,
		control.WithHTTPClient(transport),
		control.WithLogger(log),
	)
	log.DebugObj("dispatcher initialized", "dispatcher_config", map[string]any{
		"base_url":        dispatcher.BaseURL(),
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
	})

	store, err := journal.NewStore(cfg.JournalType, cfg.JournalPath, journal.Options{
		EntryTTL:        cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	var journalErr error
	if err != nil {
		// Operations still run; only History reports the journal as unavailable.
		journalErr = fmt.Errorf("init journal: %w", err)
		log.WarnObj("journal unavailable; operations will not be recorded", "journal_error", map[string]any{
			"type":  cfg.JournalType,
			"path":  cfg.JournalPath,
			"error": err.Error(),
		})
		store, _ = journal.NewStore("none", "", journal.Options{})
	}
	log.DebugObj("journal initialized", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.JournalPath,
		"entry_ttl_seconds":        int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	return &Controller{
		cfg:        cfg,
		dispatcher: dispatcher,
		journal:    store,
		journalErr: journalErr,
		log:        log,
	}, nil
}

// Dispatcher exposes the underlying control client.
func (c *Controller) Dispatcher() *control.Dispatcher { return c.dispatcher }

// Execute runs one operation. Failures are journaled and returned unchanged.
func (c *Controller) Execute(ctx context.Context, op Operation, arg string) (*control.Response, error) {
	if c == nil || c.dispatcher == nil {
		return nil, fmt.Errorf("controller is not initialized")
	}
	if op.run == nil {
		return nil, fmt.Errorf("operation %q is not runnable", op.ID)
	}
	// Empty rules text is valid: it clears the custom rules.
	if op.Arg == ArgURL && strings.TrimSpace(arg) == "" {
		return nil, fmt.Errorf("operation %q requires an argument", op.ID)
	}

	start := time.Now()
	resp, err := op.run(ctx, c.dispatcher, arg)
	elapsed := time.Since(start)

	entry := journal.Entry{
		Operation:  string(op.ID),
		Method:     string(op.Descriptor.Method),
		Path:       op.Descriptor.Path,
		DurationMs: elapsed.Milliseconds(),
		At:         start,
	}
	if resp != nil {
		entry.StatusCode = resp.StatusCode
	}
	if err != nil {
		entry.Error = err.Error()
		var statusErr *control.HTTPStatusError
		if errors.As(err, &statusErr) {
			entry.StatusCode = statusErr.StatusCode
		}
		c.log.ErrorObj("operation failed", "operation_error", map[string]any{
			"operation": op.ID,
			"error":     err.Error(),
		})
	} else {
		c.log.InfoObj("operation completed", "operation_result", map[string]any{
			"operation":   op.ID,
			"status_code": entry.StatusCode,
			"elapsed_ms":  entry.DurationMs,
		})
	}

	if jerr := c.journal.Record(entry); jerr != nil {
		c.log.WarnObj("journal record failed", "journal_error", jerr.Error())
	}
	return resp, err
}

// ExecuteByID resolves id and runs it.
func (c *Controller) ExecuteByID(ctx context.Context, id, arg string) (*control.Response, error) {
	op, ok := OperationByID(id)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", id)
	}
	return c.Execute(ctx, op, arg)
}

// History returns the most recent journal entries, newest first.
func (c *Controller) History(limit int) ([]journal.Entry, error) {
	if c == nil || c.journal == nil {
		return nil, fmt.Errorf("controller is not initialized")
	}
	if c.journalErr != nil {
		return nil, c.journalErr
	}
	entries, err := c.journal.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return entries, nil
}

// Close releases the journal, logging any errors encountered.
func (c *Controller) Close() error {
	if c == nil || c.journal == nil {
		return nil
	}
	if err := c.journal.Close(); err != nil {
		c.log.ErrorObj("journal close failed", "error", err)
		return err
	}
	return nil
}
