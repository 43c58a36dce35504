// Package clip turns a downloaded video into a trimmed MP4 or MP3 clip.
//
// It parses the HH:MM:SS range the user asked for, exports that segment
// through a media.Codec, removes transient download files and ties the
// stages together in Pipeline.
package clip

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"clipcut/media"
)

var (
	// ErrInvalidTimeFormat is matched by every *TimeFormatError.
	ErrInvalidTimeFormat = errors.New("clip: invalid time format")
	// ErrRangeOrder is returned when the end time is not after the start time.
	ErrRangeOrder = errors.New("clip: end time must be after start time")
	// ErrRangeExceedsLength is matched by every *RangeExceedsLengthError.
	ErrRangeExceedsLength = errors.New("clip: end time exceeds video length")
)

var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2})$`)

// TimeFormatError reports a time string that is not a valid 24-hour HH:MM:SS value.
type TimeFormatError struct {
	Input string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: use HH:MM:SS (e.g., 00:01:30)", e.Input)
}

func (e *TimeFormatError) Is(target error) bool { return target == ErrInvalidTimeFormat }

// RangeExceedsLengthError reports an end time beyond the end of the source.
type RangeExceedsLengthError struct {
	End int
	// Duration is the source length in whole seconds.
	Duration int
}

func (e *RangeExceedsLengthError) Error() string {
	return fmt.Sprintf("end time %s exceeds video duration of %d seconds", FormatTime(e.End), e.Duration)
}

func (e *RangeExceedsLengthError) Is(target error) bool { return target == ErrRangeExceedsLength }

// ParseTime converts "HH:MM:SS" to seconds. Fields may be one or two digits;
// hours must be below 24, minutes and seconds below 60.
func ParseTime(s string) (int, error) {
	match := timePattern.FindStringSubmatch(s)
	if match == nil {
		return 0, &TimeFormatError{Input: s}
	}

	// The pattern guarantees at most two digits, so Atoi cannot fail.
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, &TimeFormatError{Input: s}
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// FormatTime renders seconds as zero-padded HH:MM:SS.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// TimeRange is a [Start, End) segment in whole seconds.
type TimeRange struct {
	Start int
	End   int
}

// ParseRange parses both ends of a range and checks their order.
func ParseRange(start, end string) (TimeRange, error) {
	s, err := ParseTime(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("parse start time: %w", err)
	}
	e, err := ParseTime(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("parse end time: %w", err)
	}

	r := TimeRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// Validate checks 0 <= Start < End.
func (r TimeRange) Validate() error {
	if r.Start < 0 || r.End <= r.Start {
		return fmt.Errorf("%w (start %s, end %s)", ErrRangeOrder, FormatTime(r.Start), FormatTime(r.End))
	}
	return nil
}

// CheckLength fails when End lies beyond a source of the given duration.
func (r TimeRange) CheckLength(duration time.Duration) error {
	if time.Duration(r.End)*time.Second > duration {
		return &RangeExceedsLengthError{End: r.End, Duration: int(duration / time.Second)}
	}
	return nil
}

// Segment converts the range for the codec.
func (r TimeRange) Segment() media.Segment {
	return media.Segment{
		Start: time.Duration(r.Start) * time.Second,
		End:   time.Duration(r.End) * time.Second,
	}
}

func (r TimeRange) String() string {
	return FormatTime(r.Start) + "-" + FormatTime(r.End)
}
