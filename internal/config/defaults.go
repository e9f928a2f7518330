// ABOUTME: Centralized configuration defaults for feedboard
// ABOUTME: Contains magic numbers and hardcoded values for HTTP, logging, and display

package config

import (
	"time"

	"github.com/harper/feedboard/internal/fetch"
	"github.com/harper/feedboard/internal/logging"
	"github.com/harper/feedboard/internal/models"
)

// HTTP settings
const (
	DefaultHTTPTimeout = fetch.DefaultTimeout
)

// Logging settings
const (
	DefaultLogLevel = logging.DefaultLevel
)

// Display settings
const (
	DisplayIDLength = 8
	SeparatorWidth  = 60
	TitleWidth      = 60
	DateFormatShort = "02 Jan 06 15:04 MST"
	DateFormatLong  = "Mon, 02 Jan 2006 15:04 MST"
)

// Storage settings
const (
	MinPrefixLength = models.MinPrefixLength
)

// Watch settings
const (
	MinRefreshInterval = time.Minute
)
