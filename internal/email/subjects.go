package email

const (
	subjectPasswordReset   = "Reset your password"
	subjectWelcome         = "Your Sales CRM account is ready"
	subjectFollowUpDueFmt  = "Follow-up due: %s"
	subjectLeadAssignedFmt = "New lead assigned: %s"
)
