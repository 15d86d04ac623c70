// Package session runs the "create a conversation and open it" flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/picatz/tavus"
	"github.com/picatz/tavus/internal/browser"
	"github.com/picatz/tavus/internal/history"
)

// Creator creates conversations. *tavus.Client implements it.
type Creator interface {
	CreateConversation(ctx context.Context, req *tavus.CreateConversationRequest) (*tavus.CreateConversationResponse, error)
}

// Ensure tavus.Client implements the Creator interface.
var _ Creator = (*tavus.Client)(nil)

// Result is what a run produced.
type Result struct {
	// Response is the decoded response.
	Response *tavus.CreateConversationResponse

	// URL is the conversation URL, if the response had one.
	URL string

	// Opened is true when URL was handed to the browser launcher.
	Opened bool

	// Record is the history record written for the run, if any.
	Record *history.Record
}

// Runner creates a conversation and hands its URL to a browser.
type Runner struct {
	Client Creator

	// Browser opens the conversation URL. When nil the URL is only printed
	// and the run is recorded as not opened.
	Browser browser.Launcher

	// Out receives the human-readable outcome.
	Out io.Writer

	// History, when set, receives a record of each run.
	History *history.Store

	// Warn receives problems that don't change the outcome, such as a failed
	// history write. Defaults to io.Discard.
	Warn io.Writer
}

// Run sends req once and reports the outcome on r.Out.
//
// If the response has a conversation URL, Run prints it and opens it. The
// launcher's error is ignored, opening is best effort. Otherwise Run prints
// a failure line followed by the raw response body, and returns a nil error.
//
// Transport and decode failures are returned as-is without printing
// anything, and callers are expected to treat them as fatal.
func (r *Runner) Run(ctx context.Context, req *tavus.CreateConversationRequest) (*Result, error) {
	if r.Client == nil {
		return nil, errors.New("session: no client")
	}

	resp, err := r.Client.CreateConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{Response: resp}

	if u, ok := resp.URL(); ok {
		result.URL = u

		fmt.Fprintf(r.out(), "Opening conversation URL: %s\n", u)

		if r.Browser != nil {
			_ = r.Browser.Open(u)
			result.Opened = true
		}
	} else {
		fmt.Fprintln(r.out(), "No conversation URL found in response")
		fmt.Fprintf(r.out(), "Full response: %s\n", resp.Raw)
	}

	if r.History != nil {
		rec := history.NewRecord(req, resp)
		rec.Opened = result.Opened
		if err := r.History.Add(ctx, rec); err != nil {
			fmt.Fprintf(r.warn(), "failed to record conversation: %s\n", err)
		} else {
			result.Record = &rec
		}
	}

	return result, nil
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) warn() io.Writer {
	if r.Warn == nil {
		return io.Discard
	}
	return r.Warn
}
