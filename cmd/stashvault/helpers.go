// Shared helpers for stashvault CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// parseID parses a positional row-id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q (expected a positive integer)", arg)
	}
	return id, nil
}

// parsePrice parses a positional price argument.
func parsePrice(arg string) (float64, error) {
	price, err := strconv.ParseFloat(arg, 64)
	if err != nil || price < 0 {
		return 0, fmt.Errorf("invalid price %q (expected a non-negative number)", arg)
	}
	return price, nil
}
