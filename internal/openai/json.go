package openai

import (
	"encoding/json"
	"strings"
)

// decodeJSONObject unmarshals raw into v. When raw is not clean JSON (models
// occasionally wrap the object in prose despite JSON mode), it retries on the
// substring between the first '{' and the last '}'. Returns false when neither
// attempt decodes.
func decodeJSONObject(raw string, v any) bool {
	if json.Unmarshal([]byte(raw), v) == nil {
		return true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return false
	}

	return json.Unmarshal([]byte(raw[start:end+1]), v) == nil
}
