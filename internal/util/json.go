package util

import "encoding/json"

// ConvertStructToJson serializes v for queue payloads and audit records.
// Marshal failures yield an empty object rather than a broken payload.
func ConvertStructToJson(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
