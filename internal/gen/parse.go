package gen

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseRecords extracts record-like values from sanitized model output.
//
// The fast path re-wraps the text in array brackets and parses the whole
// payload at once. When that fails (a single malformed character frequently
// breaks an otherwise-valid array) it falls back to parsing each line as an
// independent object, dropping lines that fail to parse instead of aborting
// the batch. Values that parse but are not object-shaped are dropped too:
// a JSON null inside an otherwise-valid array decodes as a nil map and is
// filtered out rather than passed downstream as an empty record.
//
// Drops are logged through the provided logger and never surfaced as errors;
// the returned slice may be empty.
func ParseRecords(text string, logger *log.Logger) []map[string]any {
	var whole []map[string]any
	if err := json.Unmarshal([]byte("["+text+"]"), &whole); err == nil {
		records := make([]map[string]any, 0, len(whole))
		nulls := 0
		for _, record := range whole {
			if record == nil {
				nulls++
				continue
			}
			records = append(records, record)
		}
		if nulls > 0 && logger != nil {
			logger.Warn("dropped null entries from model array", "dropped", nulls, "recovered", len(records))
		}
		return records
	} else if logger != nil {
		logger.Debug("whole-array parse failed, salvaging per line", "error", err)
	}

	lines := strings.Split(text, "\n")
	records := make([]map[string]any, 0, len(lines))
	dropped := 0

	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ","))
		if line == "" {
			continue
		}

		var value any
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			dropped++
			if logger != nil {
				logger.Debug("dropping unparseable line", "error", err)
			}
			continue
		}

		record, ok := value.(map[string]any)
		if !ok {
			dropped++
			if logger != nil {
				logger.Debug("dropping non-object record")
			}
			continue
		}

		records = append(records, record)
	}

	if dropped > 0 && logger != nil {
		logger.Warn("salvage parse dropped records", "dropped", dropped, "recovered", len(records))
	}

	return records
}
