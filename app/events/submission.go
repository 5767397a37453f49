package events

// SubmitRequestedPayloadV1 is the manual /submit command: the user names the
// tile and item themselves.
type SubmitRequestedPayloadV1 struct {
	GuildID     string `json:"guild_id"`
	ChannelID   string `json:"channel_id"`
	UserID      string `json:"user_id"`
	UserDisplay string `json:"user_display"`
	Tile        string `json:"tile"`
	Item        string `json:"item"`
	Amount      int    `json:"amount"`
	ImageURL    string `json:"image_url"`
}

// AutoSubmitRequestedPayloadV1 is /auto_submit: tile and item are detected
// from the screenshot.
type AutoSubmitRequestedPayloadV1 struct {
	GuildID     string `json:"guild_id"`
	ChannelID   string `json:"channel_id"`
	UserID      string `json:"user_id"`
	UserDisplay string `json:"user_display"`
	Amount      int    `json:"amount"`
	ImageURL    string `json:"image_url"`
}

// ImageOnlyRequestedPayloadV1 is the reduced /submit variant where the
// approver supplies item and amount during review.
type ImageOnlyRequestedPayloadV1 struct {
	GuildID     string `json:"guild_id"`
	ChannelID   string `json:"channel_id"`
	UserID      string `json:"user_id"`
	UserDisplay string `json:"user_display"`
	Tile        string `json:"tile"`
	ImageURL    string `json:"image_url"`
}

// ApprovalPostedPayloadV1 confirms that the gateway posted the approval embed
// and reports the resulting message ID, which becomes the submission key.
type ApprovalPostedPayloadV1 struct {
	SubmissionID string `json:"submission_id"`
	MessageID    string `json:"message_id"`
}

// ApproveClickedPayloadV1 is the Approve button on an approval message.
type ApproveClickedPayloadV1 struct {
	MessageID        string `json:"message_id"`
	ApproverID       string `json:"approver_id"`
	ApproverDisplay  string `json:"approver_display"`
	ApproverElevated bool   `json:"approver_elevated"`
}

// DenyClickedPayloadV1 is the Deny button on an approval message.
type DenyClickedPayloadV1 struct {
	MessageID        string `json:"message_id"`
	ApproverID       string `json:"approver_id"`
	ApproverDisplay  string `json:"approver_display"`
	ApproverElevated bool   `json:"approver_elevated"`
}

// ItemSelectedPayloadV1 is an item choice in the review select prompt.
type ItemSelectedPayloadV1 struct {
	MessageID        string `json:"message_id"`
	ApproverID       string `json:"approver_id"`
	ApproverElevated bool   `json:"approver_elevated"`
	Item             string `json:"item"`
}

// AmountEnteredPayloadV1 is the amount modal submission. RawAmount is
// validated server-side as a positive integer.
type AmountEnteredPayloadV1 struct {
	MessageID        string `json:"message_id"`
	ApproverID       string `json:"approver_id"`
	ApproverDisplay  string `json:"approver_display"`
	ApproverElevated bool   `json:"approver_elevated"`
	RawAmount        string `json:"raw_amount"`
}

// ReactionAddedPayloadV1 is the legacy reaction-based review path.
type ReactionAddedPayloadV1 struct {
	MessageID    string `json:"message_id"`
	ChannelID    string `json:"channel_id"`
	UserID       string `json:"user_id"`
	UserDisplay  string `json:"user_display"`
	UserElevated bool   `json:"user_elevated"`
	Emoji        string `json:"emoji"`
}
