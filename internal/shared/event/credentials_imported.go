package event

const CredentialsImportedDestination string = "credentials_imported"
const CredentialsImportedConsumerNotification string = "credentials_imported_notification"

type CredentialsImportedMessage struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	FileName string `json:"file_name"`
}
