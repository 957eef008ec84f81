package cmd

import "fmt"

// Config carries every setting the application reads from its environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PayDunyaBaseURL    string
	PayDunyaMasterKey  string
	PayDunyaPrivateKey string
	PayDunyaToken      string
	PayDunyaStoreName  string
	// PaymentCallbackURL is the public webhook endpoint handed to the
	// provider on invoice creation.
	PaymentCallbackURL string

	// PaymentPollSpec is the six-field cron expression of the payment
	// confirmation sweep; empty selects the job default.
	PaymentPollSpec string
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
