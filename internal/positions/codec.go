package positions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// BundleKey is the host slot the snapshot is saved under.
const BundleKey = "POSITIONS"

func Encode(pages map[int]int) ([]byte, error) {
	wire := make(map[string]int, len(pages))
	for id, page := range pages {
		wire[strconv.Itoa(id)] = page
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode positions: %w", err)
	}
	return data, nil
}

// Decode parses a saved snapshot. Anything that is not an object of integer
// ids to non-negative integer pages yields ok=false, and callers start from
// an empty store.
func Decode(data []byte) (map[int]int, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false
	}
	var wire map[string]json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil || wire == nil {
		return nil, false
	}
	out := make(map[int]int, len(wire))
	for key, raw := range wire {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, false
		}
		page, err := strconv.Atoi(raw.String())
		if err != nil || page < 0 {
			return nil, false
		}
		out[id] = page
	}
	return out, true
}
