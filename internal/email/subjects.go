package email

const (
	subjectProposalAcceptedFmt  = "Proposta aceita: %s"
	subjectGuideLeadCapturedFmt = "Novo lead da landing: %s"
)
