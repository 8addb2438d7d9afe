package domain

import "time"

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
