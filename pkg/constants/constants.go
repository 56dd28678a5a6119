// Package constants provides shared constants for the rent-vs-buy application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// PMIDownPaymentThreshold is the down payment percentage at or above which
	// PMI is never charged.
	PMIDownPaymentThreshold = 20.0

	// PMILoanToValueCutoff is the fraction of the original loan principal the
	// balance must fall to before PMI stops.
	PMILoanToValueCutoff = 0.8
)

// MilestoneYears are the horizon years summarized by the metrics.
var MilestoneYears = []int{5, 10, 15}

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ToleranceForComparison is the tolerance for financial comparisons
	ToleranceForComparison = 1.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultStorePath is the default SQLite scenario store location
	DefaultStorePath = "scenarios.db"

	// EnvPrefix prefixes environment overrides of configuration keys
	EnvPrefix = "RENTBUY"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// ShareQueryParam is the URL query parameter carrying a share code
	ShareQueryParam = "scenario"
)

// Cache constants
const (
	// CacheBackendMemory keeps projections in process memory
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps projections in Redis
	CacheBackendRedis = "redis"

	// CacheBackendNone disables projection caching
	CacheBackendNone = "none"

	// CacheKeyPrefix namespaces projection cache keys
	CacheKeyPrefix = "rentbuy:analysis:"
)
