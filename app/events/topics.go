// Package events defines the NATS subjects and payloads exchanged with the
// Discord gateway process. The gateway owns slash-command registration and
// message rendering; this service owns all decisions.
package events

// Stream names.
const (
	SubmissionStream = "pvmkingdom_submissions"
	DiscordStream    = "pvmkingdom_discord"
)

// Inbound interaction events published by the gateway.
const (
	SubmissionSubmitRequestedV1     = "submission.submit.requested.v1"
	SubmissionAutoSubmitRequestedV1 = "submission.autosubmit.requested.v1"
	SubmissionImageOnlyRequestedV1  = "submission.imageonly.requested.v1"
	SubmissionApprovalPostedV1      = "submission.approval.posted.v1"
	SubmissionApproveClickedV1      = "submission.approve.clicked.v1"
	SubmissionDenyClickedV1         = "submission.deny.clicked.v1"
	SubmissionItemSelectedV1        = "submission.item.selected.v1"
	SubmissionAmountEnteredV1       = "submission.amount.entered.v1"
	SubmissionReactionAddedV1       = "submission.reaction.added.v1"

	ProgressRequestedV1 = "progress.requested.v1"

	OpsHealthRequestedV1 = "ops.health.requested.v1"
	OpsResyncRequestedV1 = "ops.resync.requested.v1"
	OpsTaxonomyRefreshV1 = "ops.taxonomy.refresh.requested.v1"
)

// Outbound command events consumed by the gateway.
const (
	DiscordReplyRequestedV1        = "discord.reply.requested.v1"
	DiscordApprovalPostRequestedV1 = "discord.approval.post.requested.v1"
	DiscordForwardRequestedV1      = "discord.forward.requested.v1"
	DiscordArchiveRequestedV1      = "discord.archive.requested.v1"
	DiscordItemPromptRequestedV1   = "discord.itemprompt.requested.v1"
	DiscordAmountPromptRequestedV1 = "discord.amountprompt.requested.v1"
	DiscordChartPostRequestedV1    = "discord.chart.post.requested.v1"
	DiscordCommandSyncRequestedV1  = "discord.command.sync.requested.v1"
)

// SubmissionSubjects lists every inbound subject, for stream provisioning.
func SubmissionSubjects() []string {
	return []string{
		SubmissionSubmitRequestedV1,
		SubmissionAutoSubmitRequestedV1,
		SubmissionImageOnlyRequestedV1,
		SubmissionApprovalPostedV1,
		SubmissionApproveClickedV1,
		SubmissionDenyClickedV1,
		SubmissionItemSelectedV1,
		SubmissionAmountEnteredV1,
		SubmissionReactionAddedV1,
		ProgressRequestedV1,
		OpsHealthRequestedV1,
		OpsResyncRequestedV1,
		OpsTaxonomyRefreshV1,
	}
}

// DiscordSubjects lists every outbound subject, for stream provisioning.
func DiscordSubjects() []string {
	return []string{
		DiscordReplyRequestedV1,
		DiscordApprovalPostRequestedV1,
		DiscordForwardRequestedV1,
		DiscordArchiveRequestedV1,
		DiscordItemPromptRequestedV1,
		DiscordAmountPromptRequestedV1,
		DiscordChartPostRequestedV1,
		DiscordCommandSyncRequestedV1,
	}
}
