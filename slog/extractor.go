package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ldblocks"
)

// Compile-time interface verification.
var (
	_ ldblocks.FAQExtractor   = (*LoggingFAQExtractor)(nil)
	_ ldblocks.HowToExtractor = (*LoggingHowToExtractor)(nil)
)

// LoggingFAQExtractor wraps a FAQExtractor with debug logging.
type LoggingFAQExtractor struct {
	next   ldblocks.FAQExtractor
	logger *slog.Logger
}

// NewLoggingFAQExtractor creates a new LoggingFAQExtractor.
func NewLoggingFAQExtractor(next ldblocks.FAQExtractor, logger *slog.Logger) *LoggingFAQExtractor {
	return &LoggingFAQExtractor{next: next, logger: logger}
}

// ExtractFAQ delegates to the wrapped extractor. A missing FAQ block is
// logged as found=false rather than as an error.
func (x *LoggingFAQExtractor) ExtractFAQ(text string) (questions []ldblocks.Question, err error) {
	defer func(begin time.Time) {
		x.logger.Debug("faq extraction",
			"bytes", len(text),
			"found", ldblocks.ErrorCode(err) != ldblocks.ENOTFOUND,
			"questions", len(questions),
			"duration", time.Since(begin),
			"err", unlessNotFound(err),
		)
	}(time.Now())
	return x.next.ExtractFAQ(text)
}

// LoggingHowToExtractor wraps a HowToExtractor with debug logging.
type LoggingHowToExtractor struct {
	next   ldblocks.HowToExtractor
	logger *slog.Logger
}

// NewLoggingHowToExtractor creates a new LoggingHowToExtractor.
func NewLoggingHowToExtractor(next ldblocks.HowToExtractor, logger *slog.Logger) *LoggingHowToExtractor {
	return &LoggingHowToExtractor{next: next, logger: logger}
}

// ExtractHowTo delegates to the wrapped extractor.
func (x *LoggingHowToExtractor) ExtractHowTo(text string) (result *ldblocks.HowToResult, err error) {
	defer func(begin time.Time) {
		valid, steps, cssBytes := false, 0, 0
		if result != nil {
			valid = result.HowTo != nil
			if valid {
				steps = len(result.HowTo.Step)
			}
			cssBytes = len(result.CSS)
		}
		x.logger.Debug("how-to extraction",
			"bytes", len(text),
			"found", ldblocks.ErrorCode(err) != ldblocks.ENOTFOUND,
			"valid", valid,
			"steps", steps,
			"css_bytes", cssBytes,
			"duration", time.Since(begin),
			"err", unlessNotFound(err),
		)
	}(time.Now())
	return x.next.ExtractHowTo(text)
}

func unlessNotFound(err error) error {
	if ldblocks.ErrorCode(err) == ldblocks.ENOTFOUND {
		return nil
	}
	return err
}
