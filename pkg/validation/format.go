// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/roi-forecast/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateLeadSink checks if the lead sink is one of the supported kinds.
func ValidateLeadSink(sink string) error {
	switch sink {
	case constants.LeadSinkLog, constants.LeadSinkSQLite, constants.LeadSinkWebhook:
		return nil
	}
	return fmt.Errorf("expected lead sink of %s, %s or %s, got %s",
		constants.LeadSinkLog, constants.LeadSinkSQLite, constants.LeadSinkWebhook, sink)
}
