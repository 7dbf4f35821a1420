// Package notification contains the Notification aggregate and the typed
// payloads attached to each event kind. Notifications are fan-out records
// written in the same transaction as the state change they report and
// deduplicated on (eventKey, recipientID).
package notification
