package notifier

import "time"

type BatchPayload struct {
	BatchID   string    `json:"batch_id"`
	Reference string    `json:"reference"`
	MemberID  string    `json:"member_id"`
	Category  string    `json:"category"`
	Period    string    `json:"period"`
	Gross     string    `json:"gross"`
	Tax       string    `json:"tax"`
	Platform  string    `json:"platform_charge"`
	Net       string    `json:"net"`
	CreatedAt time.Time `json:"created_at"`
}
