package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskGuideBuildPDF = "marketing.guide.buildpdf"

type GuideBuildPDFPayload struct {
	OrganizationID string `json:"organizationId"`
	LandingHash    string `json:"landingHash"`
	GuideSlug      string `json:"guideSlug"`
}

func NewGuideBuildPDFTask(payload GuideBuildPDFPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGuideBuildPDF, data), nil
}

func ParseGuideBuildPDFPayload(task *asynq.Task) (GuideBuildPDFPayload, error) {
	var payload GuideBuildPDFPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GuideBuildPDFPayload{}, err
	}
	return payload, nil
}
