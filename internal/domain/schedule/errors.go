package schedule

import "errors"

var ErrInvalidWeekday = errors.New("weekday must be between 1 (Monday) and 7 (Sunday)")
