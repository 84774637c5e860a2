package inbound

import "time"

type CredentialItem struct {
	ID           int64      `json:"id,string"`
	SupplierName string     `json:"supplier_name"`
	OfficeID     string     `json:"office_id,omitempty"`
	LoginID      string     `json:"login_id,omitempty"`
	Password     string     `json:"password"`
	URL          string     `json:"url,omitempty"`
	DateCreated  time.Time  `json:"date_created"`
	LastReset    *time.Time `json:"last_reset,omitempty"`
}

type ListResponse struct {
	Credentials []CredentialItem `json:"credentials"`
}

type AddRequest struct {
	SupplierName string `json:"supplier_name"`
	OfficeID     string `json:"office_id"`
	LoginID      string `json:"login_id"`
	Password     string `json:"password"`
	URL          string `json:"url"`
}

type AddResponse struct {
	ID int64 `json:"id,string"`
}

func (AddResponse) Message() string {
	return "Credential saved."
}

type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (ImportResponse) Message() string {
	return "Import completed."
}

type ReminderItem struct {
	CredentialID int64     `json:"credential_id,string"`
	SupplierName string    `json:"supplier_name"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type RemindersResponse struct {
	Reminders []ReminderItem `json:"reminders"`
}

type ChallengeResponse struct{}

func (ChallengeResponse) Message() string {
	return "We have sent a verification code to your email."
}

type RevealRequestRequest struct {
	CredentialID int64 `json:"credential_id,string"`
}

type RevealConfirmRequest struct {
	CredentialID int64  `json:"credential_id,string"`
	Code         string `json:"code"`
}

type RevealConfirmResponse struct {
	SupplierName string `json:"supplier_name"`
	LoginID      string `json:"login_id,omitempty"`
	Password     string `json:"password"`
	URL          string `json:"url,omitempty"`
}

type ModifyRequestRequest struct {
	CredentialID int64 `json:"credential_id,string"`
}

type ModifyConfirmRequest struct {
	CredentialID int64  `json:"credential_id,string"`
	Field        string `json:"field"`
	Value        string `json:"value"`
	Code         string `json:"code"`
}

type ModifyConfirmResponse struct{}

func (ModifyConfirmResponse) Message() string {
	return "Credential updated."
}

type DeleteConfirmRequest struct {
	CredentialIDs []int64 `json:"credential_ids"`
	Code          string  `json:"code"`
}

type DeleteConfirmResponse struct {
	Deleted int64 `json:"deleted"`
}

func (DeleteConfirmResponse) Message() string {
	return "Credentials deleted."
}

type ExportConfirmRequest struct {
	Code string `json:"code"`
}

type ExportCredential struct {
	ID           int64  `json:"id,string"`
	SupplierName string `json:"supplier_name"`
	OfficeID     string `json:"office_id,omitempty"`
	LoginID      string `json:"login_id,omitempty"`
	Password     string `json:"password"`
	URL          string `json:"url,omitempty"`
}

type ExportConfirmResponse struct {
	Credentials []ExportCredential `json:"credentials"`
}
