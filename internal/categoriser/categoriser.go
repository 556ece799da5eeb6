// Package categoriser assigns categories to transactions by matching their
// descriptions against learned keyword mappings, learns new mappings from
// user answers, and flags recurring transactions.
package categoriser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlight-dev/ledgerlight/internal/model"
	"github.com/ledgerlight-dev/ledgerlight/internal/store"
	"github.com/ledgerlight-dev/ledgerlight/internal/textmatch"
)

// Prompter supplies the blocking "ask the user" capability. Implemented by
// the UI collaborator; tests inject fakes. A false second return means the
// user declined.
type Prompter interface {
	AskText(title, message, defaultValue string) (string, bool)
}

// Thresholds tunes the classify decision points.
type Thresholds struct {
	// AutoAccept is the 0-100 similarity score at or above which a mapping's
	// category is applied without asking.
	AutoAccept float64
	// RecurrenceMin is how many prior near-identical transactions make the
	// next one recurring.
	RecurrenceMin int
}

// DefaultThresholds returns the tuning the engine ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{AutoAccept: 90, RecurrenceMin: 2}
}

// recurrenceTolerance is the amount slack allowed between occurrences of a
// recurring transaction.
var recurrenceTolerance = decimal.RequireFromString("0.01")

// Result is the outcome of classifying one transaction.
type Result struct {
	CategoryID  int64
	Categorised bool
	Confidence  float64 // 0-100; 0 when no mapping matched
	Recurring   bool
}

// Categoriser classifies transactions against the learned mapping table.
type Categoriser struct {
	store    *store.Store
	prompter Prompter
	thr      Thresholds
	now      func() time.Time
}

// New creates a Categoriser. The prompter may be nil, in which case
// elicitation is skipped and unmatched transactions stay uncategorised.
func New(st *store.Store, prompter Prompter, thr Thresholds) *Categoriser {
	return &Categoriser{store: st, prompter: prompter, thr: thr, now: time.Now}
}

// Classify determines the category and recurring flag for one transaction.
// It first scans learned mappings; a qualifying mapping (amount inside its
// band) with a confident score is applied directly. Otherwise the user is
// asked for a category and, optionally, a keyword to learn. Declined
// answers leave the transaction uncategorised; that is not an error.
func (c *Categoriser) Classify(description string, amount decimal.Decimal) (Result, error) {
	res := Result{}

	match, found, err := c.lookupMapping(description, amount)
	if err != nil {
		return Result{}, err
	}
	if found {
		res.CategoryID = match.categoryID
		res.Categorised = true
		res.Confidence = match.score
	} else if c.prompter != nil {
		categoryID, err := c.elicitCategory(description)
		if err != nil {
			return Result{}, err
		}
		if categoryID != 0 {
			res.CategoryID = categoryID
			res.Categorised = true
			if err := c.elicitKeyword(description, amount, categoryID); err != nil {
				return Result{}, err
			}
		}
	}

	res.Recurring, err = c.isRecurring(description, amount)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

type mappingMatch struct {
	categoryID int64
	score      float64
}

// lookupMapping scans all mappings for the best-scoring one whose amount
// band covers amount. Only a score at or above the auto-accept threshold
// counts as found; the winning mapping's last_used is touched.
func (c *Categoriser) lookupMapping(description string, amount decimal.Decimal) (mappingMatch, bool, error) {
	mappings, err := c.store.Mappings()
	if err != nil {
		return mappingMatch{}, false, fmt.Errorf("loading mappings: %w", err)
	}

	bestScore := 0.0
	var best *model.Mapping
	for i, m := range mappings {
		if !m.Covers(amount) {
			continue
		}
		if score := textmatch.KeywordScore(m.Keyword, description); score > bestScore {
			bestScore = score
			best = &mappings[i]
		}
	}

	if best == nil || bestScore < c.thr.AutoAccept {
		return mappingMatch{}, false, nil
	}
	if err := c.store.TouchMapping(best.ID, c.now()); err != nil {
		return mappingMatch{}, false, err
	}
	return mappingMatch{categoryID: best.CategoryID, score: bestScore}, true, nil
}

// elicitCategory asks the user to name a category, resolving it to an
// existing category (exact name match) or creating a new expense category.
// Returns 0 when the user declines.
func (c *Categoriser) elicitCategory(description string) (int64, error) {
	text, ok := c.prompter.AskText("Categorise", "Enter category for:\n"+description, "")
	name := strings.TrimSpace(text)
	if !ok || name == "" {
		return 0, nil
	}

	cat, exists, err := c.store.CategoryByName(name)
	if err != nil {
		return 0, err
	}
	if exists {
		return cat.ID, nil
	}
	return c.store.InsertCategory(name, model.CategoryExpense)
}

// elicitKeyword asks for a keyword to learn a new mapping from, defaulting
// to the description's first token. A declined or empty answer learns
// nothing.
func (c *Categoriser) elicitKeyword(description string, amount decimal.Decimal, categoryID int64) error {
	suggestion := firstToken(description)
	if suggestion == "" {
		suggestion = description
	}
	text, ok := c.prompter.AskText("Mapping Keyword", "Keyword to map to this description:", suggestion)
	keyword := strings.ToLower(strings.TrimSpace(text))
	if !ok || keyword == "" {
		return nil
	}

	low, high := model.Band(amount)
	_, err := c.store.InsertMapping(model.Mapping{
		Keyword:    keyword,
		LowAmount:  low,
		HighAmount: high,
		CategoryID: categoryID,
		LastUsed:   c.now(),
	})
	return err
}

// isRecurring reports whether enough already-persisted transactions share
// the description's first token and a near-identical amount. The current
// transaction is not yet persisted when this runs, so the count covers
// prior occurrences only. Empty descriptions are never recurring: an empty
// token would match every row.
func (c *Categoriser) isRecurring(description string, amount decimal.Decimal) (bool, error) {
	token := firstToken(description)
	if token == "" {
		return false, nil
	}
	count, err := c.store.CountSimilar(token, amount, recurrenceTolerance)
	if err != nil {
		return false, err
	}
	return count >= c.thr.RecurrenceMin, nil
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
