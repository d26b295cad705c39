package logger

import (
	"regexp"

	"go.uber.org/zap/zapcore"
)

// maskReplacement is substituted for the secret part of a matched pattern
const maskReplacement = "***MASKED***"

// sensitivePatterns match credential material that must never reach log output.
// The replacement keeps the surrounding context (key name, separator) so log
// lines remain diagnosable.
var sensitivePatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9-]+`), "sk-ant-" + maskReplacement},
	{regexp.MustCompile(`(?i)(token\s*[:=]\s*)[a-zA-Z0-9_.\-]+`), "${1}" + maskReplacement},
	{regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)[a-zA-Z0-9_\-]+`), "${1}" + maskReplacement},
	{regexp.MustCompile(`(?i)(password\s*[:=]\s*)\S+`), "${1}" + maskReplacement},
}

// MaskString replaces credential material in s with a masked placeholder
func MaskString(s string) string {
	for _, p := range sensitivePatterns {
		s = p.re.ReplaceAllString(s, p.replacement)
	}
	return s
}

// maskCore wraps a zapcore.Core and masks sensitive data in log messages and
// string fields before they are written
type maskCore struct {
	zapcore.Core
}

// newMaskCore wraps core with sensitive-data masking
func newMaskCore(core zapcore.Core) zapcore.Core {
	return &maskCore{Core: core}
}

// With masks the attached fields before delegating to the wrapped core
func (c *maskCore) With(fields []zapcore.Field) zapcore.Core {
	return &maskCore{Core: c.Core.With(maskFields(fields))}
}

// Check registers this core (not the wrapped one) so Write sees every entry
func (c *maskCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write masks the message and fields before delegating to the wrapped core
func (c *maskCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = MaskString(ent.Message)
	return c.Core.Write(ent, maskFields(fields))
}

// maskFields returns a copy of fields with string and error values masked.
// Non-string field types cannot carry pattern-shaped secrets and pass through.
func maskFields(fields []zapcore.Field) []zapcore.Field {
	masked := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case zapcore.StringType:
			f.String = MaskString(f.String)
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok && err != nil {
				f = zapcore.Field{
					Key:    f.Key,
					Type:   zapcore.StringType,
					String: MaskString(err.Error()),
				}
			}
		}
		masked[i] = f
	}
	return masked
}
