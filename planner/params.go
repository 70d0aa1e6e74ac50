/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package planner

import (
	"fmt"
	"maps"
)

// Param extracts a required parameter from the tool call args with type
// safety. On failure it returns an error response map to hand back to the
// model.
func Param[T any](call ToolCall, name string) (T, map[string]any) {
	var zero T

	value, exists := call.Args[name]
	if !exists {
		return zero, Error("%s parameter is required", name)
	}

	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := convertNumeric[T](value); ok {
		return v, nil
	}

	return zero, Error("%s parameter must be of type %T, got %T", name, zero, value)
}

// OptionalParam extracts an optional parameter with a default value.
func OptionalParam[T any](call ToolCall, name string, defaultValue T) (T, map[string]any) {
	value, exists := call.Args[name]
	if !exists {
		return defaultValue, nil
	}

	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := convertNumeric[T](value); ok {
		return v, nil
	}

	var zero T
	return zero, Error("%s parameter must be of type %T, got %T", name, zero, value)
}

// convertNumeric handles common JSON numeric conversions (float64 -> int/int32/int64).
func convertNumeric[T any](value any) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int:
		if floatVal, ok := value.(float64); ok {
			return any(int(floatVal)).(T), true
		}
	case int32:
		if floatVal, ok := value.(float64); ok {
			return any(int32(floatVal)).(T), true
		}
	case int64:
		if floatVal, ok := value.(float64); ok {
			return any(int64(floatVal)).(T), true
		}
	}
	return zero, false
}

// Error creates an error response map.
func Error(format string, args ...any) map[string]any {
	return map[string]any{
		"error": fmt.Sprintf(format, args...),
	}
}

// ErrorWithContext creates an error response with additional context fields.
func ErrorWithContext(err error, context map[string]any) map[string]any {
	response := map[string]any{
		"error": err.Error(),
	}
	maps.Copy(response, context)
	return response
}

// Success creates a success response map with additional fields.
func Success(fields map[string]any) map[string]any {
	response := map[string]any{
		"status": "success",
	}
	maps.Copy(response, fields)
	return response
}
