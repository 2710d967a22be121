package httpapi

import "encoding/json"

// numberField reads a validated numeric field as float64.
func numberField(body map[string]any, key string) (float64, bool) {
	num, ok := body[key].(json.Number)
	if !ok {
		return 0, false
	}
	f, err := num.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// intField reads a validated integer field as int64.
func intField(body map[string]any, key string) (int64, bool) {
	num, ok := body[key].(json.Number)
	if !ok {
		return 0, false
	}
	n, err := num.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}
