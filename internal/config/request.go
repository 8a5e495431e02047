package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/ferndalepractice/oncall-rota/pkg/core/roster"
)

// WorkerEntry is one worker in a roster request file.
type WorkerEntry struct {
	ID     string `yaml:"id" validate:"required"`
	Name   string `yaml:"name,omitempty"`
	Rank   int    `yaml:"rank" validate:"required,min=1"`
	Role   string `yaml:"role,omitempty" validate:"omitempty,oneof=regular lead-primary lead-deputy"`
	Cap    *int   `yaml:"cap,omitempty" validate:"omitempty,min=0"`
	Target int    `yaml:"target" validate:"min=0"`

	// Clinic is an RRULE describing the worker's fixed weekly clinic days,
	// e.g. "FREQ=WEEKLY;BYDAY=TU,TH".
	Clinic string `yaml:"clinic,omitempty"`

	// Prefs maps day-of-month to "cannot", "avoid" or "want".
	Prefs map[int]string `yaml:"prefs,omitempty"`
}

// RequestFile is the on-disk form of a monthly roster request.
type RequestFile struct {
	Year  int    `yaml:"year" validate:"required,min=2000,max=2200"`
	Month int    `yaml:"month" validate:"required,min=1,max=12"`
	Seed  string `yaml:"seed,omitempty"`

	// PreviousMonthLast is the id of whoever served the final day of the
	// prior month, for the cross-month rest rule.
	PreviousMonthLast string `yaml:"previousMonthLast,omitempty"`

	Workers []WorkerEntry  `yaml:"workers" validate:"required,min=1,max=10,dive"`
	Locks   map[int]string `yaml:"locks,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadRequest loads and validates a roster request from a YAML file.
func LoadRequest(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}

	if err := ValidateRequest(&rf); err != nil {
		return nil, err
	}

	return &rf, nil
}

// ValidateRequest validates a request file beyond what yaml parsing gives
// us: struct tags, duplicate ids, lock references, preference values and
// clinic rule syntax.
func ValidateRequest(rf *RequestFile) error {
	if err := validate.Struct(rf); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}

	days := roster.DaysInMonth(rf.Year, time.Month(rf.Month))

	ids := make(map[string]bool, len(rf.Workers))
	for i, w := range rf.Workers {
		if ids[w.ID] {
			return fmt.Errorf("duplicate worker id %q", w.ID)
		}
		ids[w.ID] = true

		for day, pref := range w.Prefs {
			if day < 1 || day > days {
				return fmt.Errorf("worker %q: preference day %d is outside the month (1..%d)", w.ID, day, days)
			}
			if _, err := parsePreference(pref); err != nil {
				return fmt.Errorf("worker %q, day %d: %w", w.ID, day, err)
			}
		}

		if w.Clinic != "" {
			if _, err := clinicWeekdays(w.Clinic); err != nil {
				return fmt.Errorf("invalid clinic rule in workers[%d]: %w", i, err)
			}
		}
	}

	for day, id := range rf.Locks {
		if day < 1 || day > days {
			return fmt.Errorf("lock day %d is outside the month (1..%d)", day, days)
		}
		if !ids[id] {
			return fmt.Errorf("lock on day %d references unknown worker %q", day, id)
		}
	}

	if rf.PreviousMonthLast != "" && !ids[rf.PreviousMonthLast] {
		return fmt.Errorf("previousMonthLast references unknown worker %q", rf.PreviousMonthLast)
	}

	return nil
}

// ToRequest converts a validated request file into the core engine's
// request type.
func (rf *RequestFile) ToRequest() (*roster.Request, error) {
	req := &roster.Request{
		Year:               rf.Year,
		Month:              time.Month(rf.Month),
		Seed:               rf.Seed,
		PreviousLastWorker: rf.PreviousMonthLast,
		Locks:              make(map[int]string, len(rf.Locks)),
	}
	for day, id := range rf.Locks {
		req.Locks[day] = id
	}

	for _, entry := range rf.Workers {
		spec := roster.WorkerSpec{
			ID:     entry.ID,
			Name:   entry.Name,
			Rank:   entry.Rank,
			Role:   roster.Role(entry.Role),
			Cap:    entry.Cap,
			Target: entry.Target,
		}
		if spec.Name == "" {
			spec.Name = entry.ID
		}
		if spec.Role == "" {
			spec.Role = roster.RoleRegular
		}

		if entry.Clinic != "" {
			days, err := clinicWeekdays(entry.Clinic)
			if err != nil {
				return nil, fmt.Errorf("worker %q: %w", entry.ID, err)
			}
			spec.ClinicDays = days
		}

		if len(entry.Prefs) > 0 {
			spec.Prefs = make(map[int]roster.Preference, len(entry.Prefs))
			for day, raw := range entry.Prefs {
				pref, err := parsePreference(raw)
				if err != nil {
					return nil, fmt.Errorf("worker %q, day %d: %w", entry.ID, day, err)
				}
				spec.Prefs[day] = pref
			}
		}

		req.Workers = append(req.Workers, spec)
	}

	return req, nil
}

func parsePreference(raw string) (roster.Preference, error) {
	switch raw {
	case "", "none":
		return roster.PrefNone, nil
	case "cannot":
		return roster.PrefCannot, nil
	case "avoid":
		return roster.PrefAvoid, nil
	case "want":
		return roster.PrefWant, nil
	default:
		return roster.PrefNone, fmt.Errorf("unknown preference %q (want one of cannot, avoid, want)", raw)
	}
}

// clinicWeekdays parses a weekly RRULE (e.g. "FREQ=WEEKLY;BYDAY=TU,TH")
// into the weekdays it covers, by expanding one week of occurrences.
func clinicWeekdays(rule string) ([]time.Weekday, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule: %w", err)
	}

	// Expand across one full week from a fixed Monday so the result only
	// depends on the rule, never on the wall clock.
	weekStart := time.Date(2000, time.January, 3, 0, 0, 0, 0, time.UTC) // a Monday
	r.DTStart(weekStart)

	occurrences := r.Between(weekStart, weekStart.AddDate(0, 0, 6), true)
	if len(occurrences) == 0 {
		return nil, fmt.Errorf("clinic rule %q matches no weekday", rule)
	}
	if len(occurrences) > 7 {
		return nil, fmt.Errorf("clinic rule %q is not a weekly weekday pattern", rule)
	}

	seen := make(map[time.Weekday]bool, len(occurrences))
	days := make([]time.Weekday, 0, len(occurrences))
	for _, occ := range occurrences {
		if wd := occ.Weekday(); !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	return days, nil
}
