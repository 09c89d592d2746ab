// Package classify turns a rendered booking page into an availability signal.
package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// Classifier matches page text against an ordered pair of phrase sets.
// It is safe for concurrent use.
type Classifier struct {
	available   []string
	unavailable []string
	counts      []*regexp.Regexp
}

// New compiles a classifier from phrases. Every RoomCount pattern must have one capture group.
func New(p Phrases) (*Classifier, error) {
	c := &Classifier{
		available:   normalizeAll(p.Available),
		unavailable: normalizeAll(p.Unavailable),
	}
	if len(c.available) == 0 {
		return nil, fmt.Errorf("classifier needs at least one available phrase")
	}

	for _, expr := range p.RoomCount {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("invalid room count pattern %q: %w", expr, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("room count pattern %q must have exactly one group", expr)
		}
		c.counts = append(c.counts, re)
	}
	return c, nil
}

// Default returns a classifier over DefaultPhrases.
func Default() *Classifier {
	c, err := New(DefaultPhrases())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify never fails: unrecognizable input is indeterminate.
//
// An available phrase wins over an unavailable one. An available phrase next
// to an explicit "0 rooms" count is reported as unavailable.
func (c *Classifier) Classify(payload string) domain.Signal {
	return c.ClassifyText(PageText(payload))
}

// ClassifyText classifies text already reduced by PageText.
func (c *Classifier) ClassifyText(text string) domain.Signal {
	if text == "" {
		return domain.IndeterminateSignal()
	}

	if phrase, ok := firstContained(text, c.available); ok {
		count, known := c.roomCount(text)
		if known && count == 0 {
			return domain.UnavailableSignal(phrase)
		}
		return domain.AvailableSignal(count, known, phrase)
	}

	if phrase, ok := firstContained(text, c.unavailable); ok {
		return domain.UnavailableSignal(phrase)
	}

	return domain.IndeterminateSignal()
}

func (c *Classifier) roomCount(text string) (int, bool) {
	for _, re := range c.counts {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 0 {
			continue
		}
		return n, true
	}
	return 0, false
}

func firstContained(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}

func normalizeAll(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if n := normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}
