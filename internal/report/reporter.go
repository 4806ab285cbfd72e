package report

import (
	"runtime"
	"strings"

	"github.com/getsentry/sentry-go"
)

// Scope is the deployment context attached to every event: where the
// dataset comes from and how its timestamps are read.
type Scope struct {
	Env            string
	Version        string
	Timezone       string
	StationsSource string
	TripsSource    string
	LaneCities     []string
}

// ConfigureScope tags all later events with s.
func ConfigureScope(s Scope) {
	tz := s.Timezone
	if tz == "" {
		tz = "Local"
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("env", s.Env)
		scope.SetTag("app_version", s.Version)
		scope.SetTag("timezone", tz)
		scope.SetTag("go_version", runtime.Version())
		scope.SetContext("dataset", map[string]interface{}{
			"stations":    s.StationsSource,
			"trips":       s.TripsSource,
			"lane_cities": strings.Join(s.LaneCities, ","),
		})
	})
}

// Tags builds a tag map from alternating keys and values. A trailing key
// without a value maps to "".
func Tags(kv ...string) map[string]string {
	tags := make(map[string]string, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		tags[kv[i]] = value
	}
	return tags
}

// SentryReportOptions provides optional data for reporting.
type SentryReportOptions struct {
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
}

// ReportError reports err at the given level, sentry.LevelError by default.
func ReportError(err error, levels ...sentry.Level) {
	level := sentry.LevelError
	if len(levels) > 0 {
		level = levels[0]
	}
	ReportErrorWithSentryOptions(err, SentryReportOptions{Level: level})
}

// ReportErrorWithSentryOptions reports err with extra tags, context and level.
// Nil errors are ignored.
func ReportErrorWithSentryOptions(err error, opts SentryReportOptions) {
	if err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if opts.ExtraContext != nil {
			scope.SetContext("extra", opts.ExtraContext)
		}
		for k, v := range opts.Tags {
			scope.SetTag(k, v)
		}
		if opts.Level != "" {
			scope.SetLevel(opts.Level)
		}
		sentry.CaptureException(err)
	})
}
