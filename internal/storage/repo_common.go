package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func nowUTCString() string {
	return fmtTime(nowUTC())
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

// encodeSpecs serializes a batch's dynamic attribute map. The store owns
// this encoding, which is what guarantees that every persisted specs value
// decodes back to a valid string-to-number map.
func encodeSpecs(specs map[string]float64) (string, error) {
	if specs == nil {
		specs = map[string]float64{}
	}
	payload, err := json.Marshal(specs)
	if err != nil {
		return "", fmt.Errorf("encode specs: %w", err)
	}
	return string(payload), nil
}

func decodeSpecs(raw string) (map[string]float64, error) {
	out := map[string]float64{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode specs: %w", err)
	}
	return out, nil
}

func encodeSpecKeys(keys []string) (string, error) {
	if keys == nil {
		keys = []string{}
	}
	payload, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("encode spec keys: %w", err)
	}
	return string(payload), nil
}

// decodeSpecKeys tolerates malformed stored data. One corrupt row must not
// break listing for all the others, so an unparseable key list comes back
// as an empty sequence.
func decodeSpecKeys(raw string) []string {
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return []string{}
	}
	if keys == nil {
		return []string{}
	}
	return keys
}
