package config

import (
	"os"
	"strings"
)

// Flags holds the feature gates consulted at route registration time. They are
// read once at startup and passed down explicitly; core workflow logic never
// consults them, so its invariants hold regardless of flag state.
type Flags struct {
	PdfDownload   bool
	ExcelExport   bool
	EmailSending  bool
	RemindersCron bool
}

// LoadFlags reads feature gates from env. All gates default to enabled;
// set FEATURE_<NAME>=false to disable.
//
//   - FEATURE_PDF_DOWNLOAD
//   - FEATURE_EXCEL_EXPORT
//   - FEATURE_EMAIL_SENDING
//   - FEATURE_PAYMENT_REMINDERS
func LoadFlags() Flags {
	return Flags{
		PdfDownload:   boolFromEnv("FEATURE_PDF_DOWNLOAD", true),
		ExcelExport:   boolFromEnv("FEATURE_EXCEL_EXPORT", true),
		EmailSending:  boolFromEnv("FEATURE_EMAIL_SENDING", true),
		RemindersCron: boolFromEnv("FEATURE_PAYMENT_REMINDERS", true),
	}
}

func boolFromEnv(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
