// Package notification contains the Notification record sent to customer
// devices and staff users on lifecycle events.
package notification
