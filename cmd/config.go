package cmd

// Config carries every externally supplied setting. Values come from the
// environment; see cmd/app for the variable names.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// PricingMode selects the active calculator: "landmark" or "state".
	PricingMode string

	// RiderPayoutRate is the flat amount credited per completed delivery,
	// as a decimal string.
	RiderPayoutRate string

	// RiderPayoutSchedule is the six-field cron expression for the weekly
	// payout batch. Empty selects the default Monday 00:05 schedule.
	RiderPayoutSchedule string
}
