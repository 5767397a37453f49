package events

// ReplyRequestedPayloadV1 asks the gateway to send a plain text reply.
type ReplyRequestedPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id,omitempty"`
	Content   string `json:"content"`
	Ephemeral bool   `json:"ephemeral"`
}

// EmbedField is one name/value pair on an approval embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// ApprovalPostRequestedPayloadV1 asks the gateway to post the approval embed
// for a submission. The gateway answers with ApprovalPostedPayloadV1 carrying
// the new message ID.
type ApprovalPostRequestedPayloadV1 struct {
	SubmissionID      string       `json:"submission_id"`
	ApprovalChannelID string       `json:"approval_channel_id"`
	Title             string       `json:"title"`
	Fields            []EmbedField `json:"fields"`
	ImageURL          string       `json:"image_url,omitempty"`
	Footer            string       `json:"footer"`
	WithAffordances   bool         `json:"with_affordances"`
}

// ForwardRequestedPayloadV1 asks the gateway to repost an approved
// submission's embed into the approved channel.
type ForwardRequestedPayloadV1 struct {
	ChannelID string       `json:"channel_id"`
	Title     string       `json:"title"`
	Fields    []EmbedField `json:"fields"`
	ImageURL  string       `json:"image_url,omitempty"`
	Footer    string       `json:"footer"`
}

// ArchiveRequestedPayloadV1 asks the gateway to strip affordances from a
// resolved approval message and annotate it with the outcome.
type ArchiveRequestedPayloadV1 struct {
	MessageID string `json:"message_id"`
	Outcome   string `json:"outcome"`
	Decider   string `json:"decider"`
}

// ItemPromptRequestedPayloadV1 asks the gateway to show the approver an item
// select for an image-only submission.
type ItemPromptRequestedPayloadV1 struct {
	MessageID  string   `json:"message_id"`
	ApproverID string   `json:"approver_id"`
	Items      []string `json:"items"`
}

// AmountPromptRequestedPayloadV1 asks the gateway to open the amount modal.
type AmountPromptRequestedPayloadV1 struct {
	MessageID  string `json:"message_id"`
	ApproverID string `json:"approver_id"`
	Item       string `json:"item"`
}

// ChartPostRequestedPayloadV1 asks the gateway to upload a rendered progress
// chart to a channel.
type ChartPostRequestedPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	Filename  string `json:"filename"`
	PNG       []byte `json:"png"`
}

// CommandSyncRequestedPayloadV1 asks the gateway to re-register its slash
// commands for a guild.
type CommandSyncRequestedPayloadV1 struct {
	GuildID string `json:"guild_id,omitempty"`
}
