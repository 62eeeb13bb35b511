package errors_test

import (
	"fmt"

	"github.com/agentstation/rostersync/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "program",
		ID:       "training sap 2000",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_parseError demonstrates date parse error handling.
func Example_parseError() {
	err := errors.NewParseError("date", "31 Bulan 2024", "unknown month name")

	// Parse failures are invalid input, not fatal conditions
	if errors.IsValidationError(err) {
		fmt.Println("Row kept with invalid-date status")
	}

	// Output: Row kept with invalid-date status
}

// Example_configError shows reference data validation handling.
func Example_configError() {
	err := errors.NewConfigError("rules", "rule references unknown category Webinar", nil)

	fmt.Println(err)

	// Output: configuration error in rules: rule references unknown category Webinar
}

// Example_wrapResource demonstrates wrapping store failures.
func Example_wrapResource() {
	base := errors.New("driver: bad connection")
	err := errors.WrapResource("fetch", "schedules", "", base)

	fmt.Println(err)

	// Output: failed to fetch schedules: driver: bad connection
}
