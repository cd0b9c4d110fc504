package cronparser

import (
	"fmt"
	"strings"
	"sync"
	"time"

	cron "github.com/netresearch/go-cron"
)

// Specs take an optional leading seconds field so scale-up checks can run sub-minute.
var _parser = cron.MustNewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parser computes next cron occurrences using go-cron.
// Parsed schedules are cached per spec and timezone.
type Parser struct {
	mu        sync.Mutex
	schedules map[string]cron.Schedule
}

// New creates a new cron parser.
func New() *Parser {
	return &Parser{
		schedules: make(map[string]cron.Schedule),
	}
}

// NextAfter returns the next cron occurrence strictly after `after`.
// A tz argument is applied unless the spec carries its own CRON_TZ= or TZ= prefix; UTC otherwise.
func (p *Parser) NextAfter(
	spec,
	tz string,
	after time.Time,
) (time.Time, error) {
	schedule, err := p.schedule(buildSpec(strings.TrimSpace(spec), tz))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return schedule.Next(after), nil
}

func (p *Parser) schedule(fullSpec string) (cron.Schedule, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.schedules[fullSpec]; ok {
		return s, nil
	}

	s, err := _parser.Parse(fullSpec)
	if err != nil {
		return nil, err
	}

	p.schedules[fullSpec] = s

	return s, nil
}

func buildSpec(spec, tz string) string {
	if strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") {
		return spec
	}

	if tz == "" {
		tz = "UTC"
	}

	return "CRON_TZ=" + tz + " " + spec
}
